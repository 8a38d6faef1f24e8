package testutil

import (
	"strings"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/cards"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/piece"
)

// PieceDefsJSON is a compact piece set used across service tests: one piece
// per movement behaviour plus two victory pieces.
const PieceDefsJSON = `{
  "pieces": [
    {
      "typeName": "grunt",
      "symbol": "g",
      "baseAttack": 2,
      "baseHealth": 3,
      "movement": [
        {"offsets": [[0,-1],[0,1],[-1,0],[1,0],[-1,-1],[1,-1],[-1,1],[1,1]], "maxRange": 1}
      ]
    },
    {
      "typeName": "slider",
      "symbol": "s",
      "baseAttack": 4,
      "baseHealth": 6,
      "movement": [
        {"offsets": [[0,-1],[0,1],[-1,0],[1,0]], "maxRange": 7}
      ]
    },
    {
      "typeName": "jumper",
      "symbol": "j",
      "baseAttack": 3,
      "baseHealth": 4,
      "movement": [
        {"offsets": [[1,2],[2,1],[2,-1],[1,-2],[-1,-2],[-2,-1],[-2,1],[-1,2]], "maxRange": 1, "canJump": true}
      ]
    },
    {
      "typeName": "pusher",
      "symbol": "p",
      "baseAttack": 2,
      "baseHealth": 3,
      "movement": [
        {"offsets": [[0,-1]], "maxRange": 1, "pawnForward": true},
        {"offsets": [[-1,-1],[1,-1]], "maxRange": 1, "pawnCapture": true}
      ]
    },
    {
      "typeName": "archer",
      "symbol": "a",
      "baseAttack": 3,
      "baseHealth": 4,
      "rangedAttack": true,
      "movement": [
        {"offsets": [[0,-1],[0,1],[-1,0],[1,0],[-1,-1],[1,-1],[-1,1],[1,1]], "maxRange": 2}
      ]
    },
    {
      "typeName": "totem",
      "symbol": "T",
      "baseAttack": 1,
      "baseHealth": 8,
      "isVictoryPiece": true,
      "movement": [
        {"offsets": [[0,-1],[0,1],[-1,0],[1,0],[-1,-1],[1,-1],[-1,1],[1,1]], "maxRange": 1}
      ]
    },
    {
      "typeName": "colossus",
      "symbol": "C",
      "baseAttack": 3,
      "baseHealth": 9,
      "isVictoryPiece": true,
      "movement": [
        {"offsets": [[0,-1],[0,1],[-1,0],[1,0]], "maxRange": 1}
      ]
    }
  ]
}`

// CardDefsJSON pairs with PieceDefsJSON: piece cards, one effect card per
// implemented behaviour, and four victory cards.
const CardDefsJSON = `{
  "cards": [
    {"id": 1, "name": "Grunt", "description": "place a grunt", "steamCost": 2, "rarity": "common", "pieceType": "grunt"},
    {"id": 2, "name": "Slider", "description": "place a slider", "steamCost": 5, "rarity": "rare", "pieceType": "slider"},
    {"id": 3, "name": "Jumper", "description": "place a jumper", "steamCost": 3, "rarity": "common", "pieceType": "jumper"},
    {"id": 4, "name": "Mend", "description": "heal 3", "steamCost": 2, "rarity": "common",
     "effect": {"kind": "heal", "magnitude": 3, "duration": 0, "target": "single_piece"}},
    {"id": 5, "name": "Zap", "description": "damage 2", "steamCost": 2, "rarity": "common",
     "effect": {"kind": "damage", "magnitude": 2, "duration": 0, "target": "single_piece"}},
    {"id": 6, "name": "Purge", "description": "damage all enemies 1", "steamCost": 5, "rarity": "rare",
     "effect": {"kind": "damage", "magnitude": 1, "duration": 0, "target": "all_enemy"}},
    {"id": 7, "name": "Plating", "description": "buff health 2", "steamCost": 3, "rarity": "uncommon",
     "effect": {"kind": "buff_health", "magnitude": 2, "duration": -1, "target": "single_piece"}},
    {"id": 8, "name": "Vent", "description": "gain 3 steam", "steamCost": 1, "rarity": "common",
     "effect": {"kind": "heal", "magnitude": 3, "duration": 0, "target": "self_player"}},
    {"id": 9, "name": "Leech", "description": "drain 2 enemy steam", "steamCost": 2, "rarity": "uncommon",
     "effect": {"kind": "damage", "magnitude": 2, "duration": 0, "target": "enemy_player"}},
    {"id": 10, "name": "Ward", "description": "shield for two turns", "steamCost": 2, "rarity": "common",
     "effect": {"kind": "shield", "magnitude": 1, "duration": 2, "target": "single_piece"}},
    {"id": 11, "name": "Barrage", "description": "area damage 1", "steamCost": 4, "rarity": "rare",
     "effect": {"kind": "damage", "magnitude": 1, "duration": 0, "target": "board_area"}},
    {"id": 101, "name": "North Totem", "description": "victory piece", "steamCost": 0, "rarity": "legendary", "pieceType": "totem"},
    {"id": 102, "name": "South Totem", "description": "victory piece", "steamCost": 0, "rarity": "legendary", "pieceType": "totem"},
    {"id": 103, "name": "East Colossus", "description": "victory piece", "steamCost": 0, "rarity": "legendary", "pieceType": "colossus"},
    {"id": 104, "name": "West Colossus", "description": "victory piece", "steamCost": 0, "rarity": "legendary", "pieceType": "colossus"}
  ],
  "starterDeck": {
    "main": [1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10],
    "victory": [101, 102, 103, 104]
  }
}`

// LoadRegistries builds the fixture piece and card registries.
func LoadRegistries() (*piece.Registry, *cards.Registry, error) {
	pieceReg, err := piece.LoadRegistryFromReader(strings.NewReader(PieceDefsJSON), NopLogger())
	if err != nil {
		return nil, nil, err
	}
	cardReg, err := cards.LoadRegistryFromReader(strings.NewReader(CardDefsJSON), pieceReg, NopLogger())
	if err != nil {
		return nil, nil, err
	}
	return pieceReg, cardReg, nil
}
