// Package menace implements the bead-bag learner: one Bag of weighted move
// tokens per observed game state, rewarded or punished after each game.
package menace

import "slices"

const (
	// InitialCount is the token count every move starts with.
	InitialCount = 50
	// Reward is added to each move of the winning side.
	Reward = 3
	// Punishment is removed from each move of the losing side.
	Punishment = 1
)

// NoMove is returned by Choose when a bag holds no tokens.
const NoMove = -1

// Bag is an immutable multiset of move tokens indexed by move-id.
type Bag struct {
	counts []int
}

// NewBag returns a bag of size moves, each holding InitialCount tokens.
func NewBag(size int) Bag {
	counts := make([]int, size)
	for i := range counts {
		counts[i] = InitialCount
	}
	return Bag{counts: counts}
}

// BagOf returns a bag with the given counts. The slice is copied.
func BagOf(counts ...int) Bag {
	return Bag{counts: slices.Clone(counts)}
}

// Len is the number of move-ids in the bag.
func (b Bag) Len() int {
	return len(b.counts)
}

// Count returns the tokens held for one move-id.
func (b Bag) Count(i int) int {
	return b.counts[i]
}

// Counts returns a copy of all token counts.
func (b Bag) Counts() []int {
	return slices.Clone(b.counts)
}

// Total is the number of tokens across all moves.
func (b Bag) Total() int {
	total := 0
	for _, c := range b.counts {
		total += c
	}
	return total
}

// Choose draws a move-id with probability proportional to its token count.
// sample must be in [0,1). The same counts and sample always give the same
// move.
func (b Bag) Choose(sample float64) int {
	total := b.Total()
	if total == 0 {
		return NoMove
	}

	ticket := int(sample*float64(total)) + 1
	curr := 0
	for i, c := range b.counts {
		if curr+1 <= ticket && ticket <= curr+c {
			return i
		}
		curr += c
	}
	return NoMove
}

// Increase returns a bag with amount tokens added to move i.
func (b Bag) Increase(i, amount int) Bag {
	counts := slices.Clone(b.counts)
	counts[i] += amount
	return Bag{counts: counts}
}

// Decrease returns a bag with up to amount tokens removed from move i. A bag
// that would be left empty starts over with InitialCount tokens per move.
func (b Bag) Decrease(i, amount int) Bag {
	counts := slices.Clone(b.counts)
	counts[i] = max(0, counts[i]-amount)

	next := Bag{counts: counts}
	if next.Total() == 0 {
		return NewBag(len(counts))
	}
	return next
}

// Probabilities returns the chance of drawing each move-id.
func (b Bag) Probabilities() []float64 {
	probs := make([]float64, len(b.counts))
	total := b.Total()
	if total == 0 {
		return probs
	}
	for i, c := range b.counts {
		probs[i] = float64(c) / float64(total)
	}
	return probs
}
