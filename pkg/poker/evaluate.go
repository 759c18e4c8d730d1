package poker

import (
	"fmt"
	"sort"

	"clubsocial-server/pkg/deck"
)

type sortByRank []*deck.Card

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// rankGroup is a run of cards sharing a rank
type rankGroup struct {
	rank  int
	count int
}

// Evaluate5 ranks exactly five cards
func Evaluate5(cards []*deck.Card) (*Evaluation, error) {
	if len(cards) != 5 {
		return nil, fmt.Errorf("expected 5 cards, got %d", len(cards))
	}

	hand := make(deck.Hand, 5)
	copy(hand, cards)
	sort.Sort(sort.Reverse(sortByRank(hand)))

	ranks := make([]int, 5)
	isFlush := true
	for i, card := range hand {
		ranks[i] = card.Rank
		if card.Suit != hand[0].Suit {
			isFlush = false
		}
	}

	if isFlush {
		// a straight flush requires the straight to hold within the suited
		// cards themselves, not merely flush and straight on different cards.
		// With five cards the suited subset is the whole hand; the check stays
		// on the subset so the rule holds for larger inputs too.
		suited := make([]int, 0, 5)
		for _, card := range hand {
			if card.Suit == hand[0].Suit {
				suited = append(suited, card.Rank)
			}
		}

		if top, ok := straightTop(suited); ok {
			return &Evaluation{Category: StraightFlush, TieBreak: []int{top}, Cards: hand}, nil
		}
	}

	groups := rankGroups(ranks)

	if groups[0].count == 4 {
		return &Evaluation{
			Category: FourOfAKind,
			TieBreak: []int{groups[0].rank, groups[1].rank},
			Cards:    hand,
		}, nil
	}

	if groups[0].count == 3 && groups[1].count == 2 {
		return &Evaluation{
			Category: FullHouse,
			TieBreak: []int{groups[0].rank, groups[1].rank},
			Cards:    hand,
		}, nil
	}

	if isFlush {
		return &Evaluation{Category: Flush, TieBreak: ranks, Cards: hand}, nil
	}

	if top, ok := straightTop(ranks); ok {
		return &Evaluation{Category: Straight, TieBreak: []int{top}, Cards: hand}, nil
	}

	if groups[0].count == 3 {
		return &Evaluation{
			Category: ThreeOfAKind,
			TieBreak: []int{groups[0].rank, groups[1].rank, groups[2].rank},
			Cards:    hand,
		}, nil
	}

	if groups[0].count == 2 && groups[1].count == 2 {
		return &Evaluation{
			Category: TwoPair,
			TieBreak: []int{groups[0].rank, groups[1].rank, groups[2].rank},
			Cards:    hand,
		}, nil
	}

	if groups[0].count == 2 {
		return &Evaluation{
			Category: OnePair,
			TieBreak: []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank},
			Cards:    hand,
		}, nil
	}

	return &Evaluation{Category: HighCard, TieBreak: ranks, Cards: hand}, nil
}

// BestOf7 ranks the best five-card hand out of seven cards.
// All C(7,5)=21 subsets are evaluated. The exhaustive enumeration is
// intentional: 21 evaluations are cheap and the result is provably the max.
func BestOf7(cards []*deck.Card) (*Evaluation, error) {
	if len(cards) != 7 {
		return nil, fmt.Errorf("expected 7 cards, got %d", len(cards))
	}

	var best *Evaluation

	// choose the two cards to leave out
	for i := 0; i < len(cards)-1; i++ {
		for j := i + 1; j < len(cards); j++ {
			subset := make([]*deck.Card, 0, 5)
			for k, card := range cards {
				if k != i && k != j {
					subset = append(subset, card)
				}
			}

			eval, err := Evaluate5(subset)
			if err != nil {
				return nil, err
			}

			if best == nil || Compare(eval, best) > 0 {
				best = eval
			}
		}
	}

	return best, nil
}

// straightTop returns the top rank of the best straight found in the
// descending rank list. The ace-low wheel counts as a five-high straight.
func straightTop(ranksDesc []int) (int, bool) {
	uniq := make([]int, 0, len(ranksDesc))
	for _, rank := range ranksDesc {
		if len(uniq) == 0 || uniq[len(uniq)-1] != rank {
			uniq = append(uniq, rank)
		}
	}

	for i := 0; i+5 <= len(uniq); i++ {
		if uniq[i]-uniq[i+4] == 4 {
			return uniq[i], true
		}
	}

	// wheel: A-2-3-4-5 ranks as five-high, strictly below the 6-high straight
	has := func(rank int) bool {
		for _, r := range uniq {
			if r == rank {
				return true
			}
		}
		return false
	}

	if has(deck.Ace) && has(5) && has(4) && has(3) && has(2) {
		return 5, true
	}

	return 0, false
}

// rankGroups buckets the ranks by count, ordered by count descending and then
// rank descending, so ties among equal counts resolve to the higher rank.
func rankGroups(ranksDesc []int) []rankGroup {
	groups := make([]rankGroup, 0, len(ranksDesc))
	for _, rank := range ranksDesc {
		if n := len(groups); n > 0 && groups[n-1].rank == rank {
			groups[n-1].count++
			continue
		}

		groups = append(groups, rankGroup{rank: rank, count: 1})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	return groups
}
