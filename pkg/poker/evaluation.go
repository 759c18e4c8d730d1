package poker

import (
	"fmt"

	"clubsocial-server/pkg/deck"
)

// Evaluation is the ranked value of a five-card hand.
// Two evaluations compare by Category first, then element-wise on the
// tie-break vector. Equal category and vector is a genuine tie.
type Evaluation struct {
	Category Category  `json:"category"`
	TieBreak []int     `json:"tieBreak"`
	Cards    deck.Hand `json:"cards"`
}

func (e *Evaluation) String() string {
	return fmt.Sprintf("%s (%s)", e.Category, e.Cards)
}

// Compare returns 1 if a beats b, -1 if b beats a, and 0 on a tie.
// Tie-break vectors of different lengths compare with the missing positions
// treated as the lowest possible rank.
func Compare(a, b *Evaluation) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}

		return -1
	}

	n := len(a.TieBreak)
	if len(b.TieBreak) > n {
		n = len(b.TieBreak)
	}

	for i := 0; i < n; i++ {
		av, bv := -1, -1
		if i < len(a.TieBreak) {
			av = a.TieBreak[i]
		}
		if i < len(b.TieBreak) {
			bv = b.TieBreak[i]
		}

		if av != bv {
			if av > bv {
				return 1
			}

			return -1
		}
	}

	return 0
}
