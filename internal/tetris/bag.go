package tetris

import "math/rand"

// Bag is the 7-bag randomizer: every refill holds one of each kind in a
// uniformly shuffled order and draws take from the end.
type Bag struct {
	rng   *rand.Rand
	items []Kind
}

// NewBag creates an empty bag drawing randomness from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{
		rng:   rng,
		items: make([]Kind, 0, KindCount),
	}
}

// Next returns the next kind, refilling the bag first if it is empty.
func (b *Bag) Next() Kind {
	if len(b.items) == 0 {
		b.refill()
	}
	last := len(b.items) - 1
	k := b.items[last]
	b.items = b.items[:last]
	return k
}

// Remaining returns how many kinds are left before the next refill.
func (b *Bag) Remaining() int {
	return len(b.items)
}

func (b *Bag) refill() {
	all := AllKinds()
	b.items = append(b.items[:0], all[:]...)
	b.rng.Shuffle(len(b.items), func(i, j int) {
		b.items[i], b.items[j] = b.items[j], b.items[i]
	})
}

// Queue is the lookahead of upcoming kinds, kept at depth+1 entries
// after every pop.
type Queue struct {
	bag   *Bag
	items []Kind
	depth int
}

// NewQueue creates a queue that previews depth kinds and fills it.
func NewQueue(bag *Bag, depth int) *Queue {
	q := &Queue{
		bag:   bag,
		depth: max(depth, 0),
	}
	q.fill()
	return q
}

func (q *Queue) fill() {
	for len(q.items) < q.depth+1 {
		q.items = append(q.items, q.bag.Next())
	}
}

// Pop removes and returns the front kind, then refills.
func (q *Queue) Pop() Kind {
	q.fill()
	k := q.items[0]
	q.items = q.items[1:]
	q.fill()
	return k
}

// Peek returns up to n upcoming kinds without consuming them.
func (q *Queue) Peek(n int) []Kind {
	n = min(max(n, 0), len(q.items))
	out := make([]Kind, n)
	copy(out, q.items[:n])
	return out
}

// Len returns the number of queued kinds.
func (q *Queue) Len() int {
	return len(q.items)
}
