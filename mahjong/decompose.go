package mahjong

import "sort"

// Decomposition is an unordered multiset of Blocks whose tile contents
// sum to the CountArray it was enumerated from. Decomposition values are
// always stored with their Blocks in canonical (Block.Less) order, so two
// Decompositions are structurally equal iff their Blocks slices are
// equal element-wise.
type Decomposition struct {
	Blocks []Block
}

// canonicalize sorts d's blocks into the fixed total order and returns d.
func (d Decomposition) canonicalize() Decomposition {
	sort.Slice(d.Blocks, func(i, j int) bool { return d.Blocks[i].Less(d.Blocks[j]) })
	return d
}

// key returns a string uniquely identifying d's canonical block
// multiset, used to deduplicate decompositions discovered via different
// recursion paths (the "overlapping sequences" aliasing problem).
func (d Decomposition) key() string {
	b := make([]byte, 0, len(d.Blocks)*6)
	for _, blk := range d.Blocks {
		b = append(b, byte(blk.Kind), byte(blk.Id))
		for _, c := range blk.Completion {
			b = append(b, byte(c))
		}
		b = append(b, 0xff)
	}
	return string(b)
}

// CompleteBlocks returns the number of Triplet/Sequence blocks in d.
func (d Decomposition) CompleteBlocks() int {
	n := 0
	for _, b := range d.Blocks {
		if b.IsComplete() {
			n++
		}
	}
	return n
}

// PartialBlocks returns the number of two-tile partial blocks in d.
func (d Decomposition) PartialBlocks() int {
	n := 0
	for _, b := range d.Blocks {
		if b.IsPartial() {
			n++
		}
	}
	return n
}

// HasPair reports whether d designates a Pair as its head.
func (d Decomposition) HasPair() bool {
	for _, b := range d.Blocks {
		if b.Kind == BlockPair {
			return true
		}
	}
	return false
}

// decomposeBudget bounds how many meld slots (complete + partial,
// combined) and pair slots a Decomposition may use. For winning-shape
// recognition on 14 tiles this is (pair:1, melds:4); shanten search on
// fewer tiles uses the same ceiling, since an admissible decomposition
// for a 13-tile hand never needs more than 4 meld slots either.
type decomposeBudget struct {
	allowPair bool
	maxMelds  int
}

// EnumerateDecompositions produces every distinct canonical Decomposition
// of c consistent with budget: at most one Pair (if allowPair), at most
// maxMelds complete-or-partial blocks, and every tile accounted for
// exactly once (tiles left over once budgets are exhausted become
// Isolated blocks, never silently dropped). Branching happens at the
// lowest-populated id each step, trying every admissible block rooted
// there, so the same decomposition is never emitted twice under a
// permuted block order.
func EnumerateDecompositions(c CountArray, allowPair bool, maxMelds int) []Decomposition {
	seen := make(map[string]Decomposition)
	var cur []Block
	work := c
	enumerateFrom(&work, decomposeBudget{allowPair: allowPair, maxMelds: maxMelds}, 0, cur, seen)

	out := make([]Decomposition, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	return out
}

func lowestNonZero(c *CountArray, from TileId) TileId {
	for id := from; id < NumTileIds; id++ {
		if c[id] > 0 {
			return id
		}
	}
	return -1
}

func enumerateFrom(c *CountArray, budget decomposeBudget, from TileId, cur []Block, seen map[string]Decomposition) {
	id := lowestNonZero(c, from)
	if id == -1 {
		d := Decomposition{Blocks: append([]Block(nil), cur...)}.canonicalize()
		seen[d.key()] = d
		return
	}

	meldsUsed, pairUsed := budgetUsage(cur)
	meldBudgetLeft := budget.maxMelds - meldsUsed
	pairAvailable := budget.allowPair && !pairUsed

	tryBlock := func(b Block, consumesMeld bool) {
		tiles := b.Tiles()
		if !canRemove(c, tiles) {
			return
		}
		removeAll(c, tiles)
		enumerateFrom(c, budget, id, append(cur, b), seen)
		addAll(c, tiles)
		_ = consumesMeld
	}

	// (a) Pair
	if pairAvailable && c[id] >= 2 {
		tryBlock(NewPair(id), false)
	}
	// (b) Triplet
	if meldBudgetLeft > 0 && c[id] >= 3 {
		tryBlock(NewTriplet(id), true)
	}
	// (c) Sequence
	if meldBudgetLeft > 0 && id.IsNumeric() && id.Rank() <= 7 && c[id+1] >= 1 && c[id+2] >= 1 {
		tryBlock(NewSequence(id), true)
	}
	// (d) Partial-Pair
	if meldBudgetLeft > 0 && c[id] >= 2 {
		tryBlock(NewPartialPair(id), true)
	}
	// (e) Partial-Ryanmen / Kanchan / Penchan
	if meldBudgetLeft > 0 && id.IsNumeric() {
		r := id.Rank()
		if r <= 8 && c[id+1] >= 1 {
			if r == 1 || r == 8 {
				tryBlock(NewPartialPenchan(id), true)
			} else {
				tryBlock(NewPartialRyanmen(id), true)
			}
		}
		if r <= 7 && c[id+2] >= 1 {
			tryBlock(NewPartialKanchan(id), true)
		}
	}
	// (f) Isolated: always admissible, never consumes meld budget.
	tryBlock(NewIsolated(id), false)
}

func budgetUsage(blocks []Block) (meldsUsed int, pairUsed bool) {
	for _, b := range blocks {
		switch {
		case b.Kind == BlockPair:
			pairUsed = true
		case b.IsComplete() || b.IsPartial():
			meldsUsed++
		}
	}
	return
}

func canRemove(c *CountArray, tiles []TileId) bool {
	need := map[TileId]int{}
	for _, t := range tiles {
		need[t]++
	}
	for id, n := range need {
		if int(c[id]) < n {
			return false
		}
	}
	return true
}

func removeAll(c *CountArray, tiles []TileId) {
	for _, t := range tiles {
		c[t]--
	}
}

func addAll(c *CountArray, tiles []TileId) {
	for _, t := range tiles {
		c[t]++
	}
}
