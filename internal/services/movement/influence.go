package movement

import "github.com/bayoubonanza/bayou-bonanza-go/internal/model"

// AnchorInfluence is the contribution every piece makes to its own square.
// It dwarfs adjacency so occupancy always dominates control contests.
const AnchorInfluence = 999

// RecomputeInfluence rebuilds both per-square influence counters from scratch
// and then applies the sticky controller update to every square. Controllers
// are never reset here; only UpdateControllerFromInfluence may change them.
func (r *Resolver) RecomputeInfluence(board *model.GameBoard) {
	board.ForEachSquare(func(_ model.Position, sq *model.Square) {
		sq.ResetInfluence()
	})

	for _, p := range board.Pieces() {
		board.AtPos(p.Position).AddInfluence(p.Side, AnchorInfluence)
		for _, rule := range p.Stats.Influence {
			for _, o := range rule.Offsets {
				target := p.Position.Add(o, 1)
				if !target.InBounds() {
					continue
				}
				board.AtPos(target).AddInfluence(p.Side, rule.Amount)
			}
		}
	}

	board.ForEachSquare(func(_ model.Position, sq *model.Square) {
		sq.UpdateControllerFromInfluence()
	})
}
