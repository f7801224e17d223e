package mahjong

// WaitTile is one tile in a WaitSet, annotated with whether it is a dead
// wait: all four physical copies already accounted for in the visible
// universe, so riichi-ing on it can never actually win, though the hand
// remains formally in tenpai.
type WaitTile struct {
	Id   TileId
	Dead bool
}

// WaitResult is the output of ResolveWaits.
type WaitResult struct {
	Waits   []WaitTile
	Furiten bool
}

// TileIds returns the plain TileId list of w.Waits, dropping the dead
// flag, in ascending order.
func (w WaitResult) TileIds() []TileId {
	out := make([]TileId, len(w.Waits))
	for i, t := range w.Waits {
		out[i] = t.Id
	}
	return out
}

// ResolveWaits computes the wait set for a 13-tile hand: the tiles
// whose single draw would complete the hand under any pattern currently
// at shanten 0. If the hand is not at shanten 0 under any pattern, the
// returned WaitSet is empty (the normal "not tenpai" case, not an
// error).
//
// discardPool is the caller's own discards (for furiten); visible is the
// global visible-tile CountArray (own hand plus own discards plus
// opponents' discards plus dora indicators). visible must already
// include hand's own tiles; this function does not add them implicitly,
// since some
// callers maintain visible incrementally across a whole game and it is
// cheaper for them to keep hand folded in than to have every call here
// re-derive it.
func ResolveWaits(hand CountArray, discardPool []TileId, visible CountArray) (WaitResult, error) {
	if err := hand.CheckHandSize(13); err != nil {
		return WaitResult{}, err
	}
	if err := visible.CheckInvariants(); err != nil {
		return WaitResult{}, err
	}

	completions := map[TileId]struct{}{}
	standardWaitTiles(hand, completions)
	chiitoiWaitTiles(hand, completions)
	kokushiWaitTiles(hand, completions)

	discarded := map[TileId]struct{}{}
	for _, d := range discardPool {
		discarded[d] = struct{}{}
	}

	var result WaitResult
	for id := TileId(0); id < NumTileIds; id++ {
		if _, ok := completions[id]; !ok {
			continue
		}
		if hand.Get(id) >= 4 {
			// All four copies already in hand; a fifth cannot be drawn.
			continue
		}
		if _, tainted := discarded[id]; tainted {
			result.Furiten = true
		}
		result.Waits = append(result.Waits, WaitTile{
			Id:   id,
			Dead: visible.Get(id) >= 4,
		})
	}
	return result, nil
}

// standardWaitTiles finds every standard-pattern decomposition of hand
// that is exactly one tile from winning, either four complete blocks
// with one Isolated tile left over (a tanki wait on that tile) or three
// complete blocks, one partial, and a designated pair (the partial's own
// Completion tiles), and adds their completions to out.
//
// Only these two shapes qualify: a decomposition with three complete
// blocks, a pair, and a *different* partial never considers upgrading
// the pair into a triplet, because the pair is fixed as the head in
// that shape and the only candidate completions come from the partial
// block itself.
func standardWaitTiles(hand CountArray, out map[TileId]struct{}) {
	for _, d := range EnumerateDecompositions(hand, true, 4) {
		c, p, h := d.CompleteBlocks(), d.PartialBlocks(), d.HasPair()
		switch {
		case c == 4 && p == 0 && !h:
			// Tanki: one Isolated tile stands in for the missing pair.
			for _, b := range d.Blocks {
				if b.Kind == BlockIsolated {
					out[b.Id] = struct{}{}
				}
			}
		case c == 3 && p == 1 && h:
			for _, b := range d.Blocks {
				if b.IsPartial() {
					for _, comp := range b.Completion {
						out[comp] = struct{}{}
					}
				}
			}
		}
	}
}

// chiitoiWaitTiles adds the single unpaired tile's id when hand is one
// pair short of seven-pairs tenpai (six pairs plus exactly one single).
func chiitoiWaitTiles(hand CountArray, out map[TileId]struct{}) {
	if chiitoiShanten(hand) != 0 {
		return
	}
	for id, v := range hand {
		if v == 1 {
			out[TileId(id)] = struct{}{}
		}
	}
}

// kokushiWaitTiles adds the thirteen-orphans completion tile(s) when
// hand is one away from kokushi: either all 13 target ids are present
// with no pair yet (a thirteen-sided wait on any of them), or 12 of the
// 13 are present with one of those paired (a single-tile wait on the
// missing id).
func kokushiWaitTiles(hand CountArray, out map[TileId]struct{}) {
	unique := 0
	hasPair := false
	var missing TileId = -1
	for _, id := range kokushiIds {
		if hand.Get(id) > 0 {
			unique++
			if hand.Get(id) >= 2 {
				hasPair = true
			}
		} else {
			missing = id
		}
	}
	switch {
	case unique == 13 && !hasPair:
		for _, id := range kokushiIds {
			out[id] = struct{}{}
		}
	case unique == 12 && hasPair && missing >= 0:
		out[missing] = struct{}{}
	}
}
