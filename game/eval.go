package game

// Evaluate scores a board between 0 and 1, higher being more promising.
type Evaluate func(*Board) float64

// EvaluateEmptiness rewards free cells, the main resource of the game.
func EvaluateEmptiness(b *Board) float64 {
	return 1 - float64(b.OccupiedCount())/float64(b.MaxCells())
}

// EvaluateProgress measures how close the largest tile is to the goal.
func EvaluateProgress(b *Board) float64 {
	return min(1, float64(b.MaxExponent())/float64(b.Goal()))
}

// EvaluateSmoothness is the fraction of neighbouring tile pairs that hold
// equal values and could therefore merge.
func EvaluateSmoothness(b *Board) float64 {
	pairs, equal := 0, 0
	// East, SouthEast and SouthWest visit every neighbouring pair once
	for _, t := range b.Tiles() {
		for _, dir := range []Direction{East, SouthEast, SouthWest} {
			next, ok := b.Tile(Step(t.pos, dir))
			if !ok {
				continue
			}
			pairs++
			if next.exponent == t.exponent {
				equal++
			}
		}
	}
	if pairs == 0 {
		return 0
	}
	return float64(equal) / float64(pairs)
}

// EvaluateBlend averages the other heuristics.
func EvaluateBlend(b *Board) float64 {
	return (EvaluateEmptiness(b) + EvaluateProgress(b) + EvaluateSmoothness(b)) / 3.0
}

// Evaluations names the heuristics for configuration files.
var Evaluations = map[string]Evaluate{
	"emptiness":  EvaluateEmptiness,
	"progress":   EvaluateProgress,
	"smoothness": EvaluateSmoothness,
	"blend":      EvaluateBlend,
}
