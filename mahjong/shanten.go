package mahjong

// ShantenBreakdown reports shanten under each of the three winning
// patterns plus the overall minimum, so callers that want a specific
// pattern's arithmetic (for example a discard analyser deciding whether
// to keep chasing kokushi) don't have to recompute it.
type ShantenBreakdown struct {
	Standard int
	Chiitoi  int
	Kokushi  int
}

// Best returns the minimum shanten across all three patterns: -1 denotes
// a winning hand, 0 denotes tenpai.
func (s ShantenBreakdown) Best() int {
	best := s.Standard
	if s.Chiitoi < best {
		best = s.Chiitoi
	}
	if s.Kokushi < best {
		best = s.Kokushi
	}
	return best
}

// BestPattern names which pattern(s) realize Best(); when two patterns
// tie, callers that need a single answer break the tie themselves
// (larger ukiere wins by default), since only they have a reason to
// prefer one over the other.
func (s ShantenBreakdown) BestPattern() (standard, chiitoi, kokushi bool) {
	best := s.Best()
	return s.Standard == best, s.Chiitoi == best, s.Kokushi == best
}

// Shanten computes the per-pattern shanten breakdown for c. fixedMelds is
// the count of already-declared open melds (chi/pon/kan); a hand with
// fixedMelds > 0 cannot pursue chiitoi or kokushi, both of which require
// an entirely concealed hand, so those two fields are set to 99, a
// sentinel that never becomes the minimum.
//
// The function is defined uniformly for any tile count: it never assumes
// 13 or 14 tiles, since the same "8 - 2C - P - H" arithmetic identifies
// a won hand (value -1) as cleanly as it identifies any other distance.
// Callers that need to enforce the 13/14 convention call
// CheckHandSize themselves.
func Shanten(c CountArray, fixedMelds int) (ShantenBreakdown, error) {
	if err := c.CheckInvariants(); err != nil {
		return ShantenBreakdown{}, err
	}
	if fixedMelds < 0 {
		return ShantenBreakdown{}, errMalformedf("negative fixedMelds %d", fixedMelds)
	}

	standard := standardShanten(c, fixedMelds)
	breakdown := ShantenBreakdown{Standard: standard, Chiitoi: 99, Kokushi: 99}
	if fixedMelds == 0 {
		breakdown.Chiitoi = chiitoiShanten(c)
		breakdown.Kokushi = kokushiShanten(c)
	}
	return breakdown, nil
}

// IsWinningShape reports whether a 14-tile CountArray is a complete hand
// under any of the three patterns.
func IsWinningShape(c CountArray) (bool, error) {
	if err := c.CheckHandSize(14); err != nil {
		return false, err
	}
	b, err := Shanten(c, 0)
	if err != nil {
		return false, err
	}
	return b.Best() == -1, nil
}

// chiitoiShanten computes seven-pairs shanten as 6 minus the number of
// pairs held. Each id contributes at most one pair: seven pairs means
// seven *distinct* ids at count >= 2, so a quad is one pair-candidate,
// never two. Seven distinct pairs yields -1, a won hand.
func chiitoiShanten(c CountArray) int {
	pairs := 0
	for _, v := range c {
		if v >= 2 {
			pairs++
		}
	}
	if pairs > 7 {
		pairs = 7
	}
	return 6 - pairs
}

var kokushiIds = [13]TileId{
	Man1, Man9, Pin1, Pin9, Sou1, Sou9,
	East, South, West, North, White, Green, Red,
}

// kokushiShanten computes thirteen-orphans shanten: 13 minus the
// distinct target ids present, minus one more when any target id pairs.
func kokushiShanten(c CountArray) int {
	unique := 0
	hasPair := false
	for _, id := range kokushiIds {
		if c[id] > 0 {
			unique++
			if c[id] >= 2 {
				hasPair = true
			}
		}
	}
	sh := 13 - unique
	if hasPair {
		sh--
	}
	return sh
}

// standardShanten minimizes "8 - 2C - P - H" over admissible
// decompositions, using the same lowest-id-first DFS as decompose.go but
// tracking only the counts the formula needs (melds, pair flag, taatsu
// count) rather than materializing every Block, since shanten doesn't
// need to know *which* decomposition realizes the minimum, only the
// minimum itself. fixedMelds reduces the available meld budget, the way
// an open hand's already-called melds do.
func standardShanten(c CountArray, fixedMelds int) int {
	best := 8
	work := c
	remaining := 0
	for _, v := range work {
		remaining += int(v)
	}
	dfsStandardShanten(&work, remaining, fixedMelds, 0, 0, &best)
	return best
}

// dfsOptimistic is the best shanten still reachable from a node with
// remaining unassigned tiles: fill meld slots greedily (a meld reduces
// shanten by 2 per 3 tiles, always at least as good per slot as a
// taatsu's 1 per 2), spend leftovers on taatsu up to the shared slot
// cap, and grant the pair whenever two tiles could still form one. The
// relaxation ignores tile identities entirely, so it never exceeds what
// the exact search below can achieve.
func dfsOptimistic(remaining, melds, pair, taatsu int) int {
	meldsAdd := 4 - melds
	if byTiles := remaining / 3; byTiles < meldsAdd {
		meldsAdd = byTiles
	}
	optTaatsu := taatsu + (remaining-3*meldsAdd)/2
	if limit := 4 - melds - meldsAdd; optTaatsu > limit {
		optTaatsu = limit
	}
	optPair := pair
	if optPair == 0 && remaining >= 2 {
		optPair = 1
	}
	return 8 - 2*(melds+meldsAdd) - optTaatsu - optPair
}

func dfsStandardShanten(c *CountArray, remaining, melds, pair, taatsu int, best *int) {
	if melds > 4 {
		return
	}

	cappedTaatsu := taatsu
	if limit := 4 - melds; cappedTaatsu > limit {
		cappedTaatsu = limit
	}
	sh := 8 - 2*melds - cappedTaatsu - pair
	if sh < *best {
		*best = sh
	}
	if dfsOptimistic(remaining, melds, pair, taatsu) >= *best {
		return
	}

	id := lowestNonZero(c, 0)
	if id == -1 {
		return
	}

	if id.IsNumeric() {
		if c[id] >= 3 {
			c[id] -= 3
			dfsStandardShanten(c, remaining-3, melds+1, pair, taatsu, best)
			c[id] += 3
		}
		if id.Rank() <= 7 && c[id+1] > 0 && c[id+2] > 0 {
			c[id]--
			c[id+1]--
			c[id+2]--
			dfsStandardShanten(c, remaining-3, melds+1, pair, taatsu, best)
			c[id]++
			c[id+1]++
			c[id+2]++
		}
		if pair == 0 && c[id] >= 2 {
			c[id] -= 2
			dfsStandardShanten(c, remaining-2, melds, 1, taatsu, best)
			c[id] += 2
		}
		if c[id] >= 2 {
			// Two identical tiles also stand as a taatsu awaiting the
			// third copy (the shanpon shape), independent of the head.
			c[id] -= 2
			dfsStandardShanten(c, remaining-2, melds, pair, taatsu+1, best)
			c[id] += 2
		}
		if id.Rank() <= 8 && c[id+1] > 0 {
			c[id]--
			c[id+1]--
			dfsStandardShanten(c, remaining-2, melds, pair, taatsu+1, best)
			c[id]++
			c[id+1]++
		}
		if id.Rank() <= 7 && c[id+2] > 0 {
			c[id]--
			c[id+2]--
			dfsStandardShanten(c, remaining-2, melds, pair, taatsu+1, best)
			c[id]++
			c[id+2]++
		}
		c[id]--
		dfsStandardShanten(c, remaining-1, melds, pair, taatsu, best)
		c[id]++
		return
	}

	// Honor tiles never form sequences or neighbour taatsu; they admit a
	// Triplet, the head Pair, or a same-tile pair standing as a taatsu
	// awaiting its third copy.
	if c[id] >= 3 {
		c[id] -= 3
		dfsStandardShanten(c, remaining-3, melds+1, pair, taatsu, best)
		c[id] += 3
	}
	if pair == 0 && c[id] >= 2 {
		c[id] -= 2
		dfsStandardShanten(c, remaining-2, melds, 1, taatsu, best)
		c[id] += 2
	}
	if c[id] >= 2 {
		c[id] -= 2
		dfsStandardShanten(c, remaining-2, melds, pair, taatsu+1, best)
		c[id] += 2
	}
	c[id]--
	dfsStandardShanten(c, remaining-1, melds, pair, taatsu, best)
	c[id]++
}

// Ukiere returns the set of tiles whose addition to c strictly decreases
// the overall (minimum-across-patterns) shanten, alongside the shanten
// value c itself sits at. A candidate id already at 4 copies within c is
// never offered (a fifth physical copy cannot exist); filtering ids that
// are unavailable in the wider visible universe is the tenpai
// resolver's job (see wait.go), not this function's.
func Ukiere(c CountArray, fixedMelds int) ([]TileId, int, error) {
	base, err := Shanten(c, fixedMelds)
	if err != nil {
		return nil, 0, err
	}
	baseShanten := base.Best()

	var advancing []TileId
	for id := TileId(0); id < NumTileIds; id++ {
		if c[id] >= 4 {
			continue
		}
		candidate := c.Add(id)
		next, err := Shanten(candidate, fixedMelds)
		if err != nil {
			return nil, 0, err
		}
		if next.Best() < baseShanten {
			advancing = append(advancing, id)
		}
	}
	return advancing, baseShanten, nil
}
