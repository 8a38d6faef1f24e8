package main

import "github.com/bayoubonanza/bayou-bonanza-go/internal/cli"

func main() {
	cli.Execute()
}
