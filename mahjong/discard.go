package mahjong

import "sort"

// DiscardOption is the post-discard analysis for one candidate discard
// tile: the shanten the remaining 13 tiles sit at, and the ukiere that
// follow from there.
type DiscardOption struct {
	Discard      TileId
	Shanten      int
	Ukiere       []TileId
	UkiereCount  int // total remaining physical copies across Ukiere, accounting for visible tiles
}

// UpgradeOption records one "upgrade tile": a tile whose draw does not
// reduce shanten past the hand's current best, but whose best responding
// discard leaves a strictly larger ukiere count than discarding straight
// into the current best option would.
type UpgradeOption struct {
	Trigger              TileId
	NextDiscard          TileId
	ResultingUkiere      []TileId
	ResultingUkiereCount int
}

// DiscardAnalysis is the full ranked output of AnalyzeDiscards.
type DiscardAnalysis struct {
	Options    []DiscardOption
	MinShanten int
	Upgrades   []UpgradeOption
}

// AnalyzeDiscards ranks every legal discard from a post-draw hand by
// post-discard shanten (ascending) and, within a shanten class, by
// ukiere count (descending), then enumerates upgrade tiles for the
// top-ranked discard (Options[0]) only; other discards at the minimum
// shanten get no upgrade analysis here (UpgradesForDiscard runs it for
// any single discard). A concealed hand
// holds 14 tiles; each declared meld in fixedMelds removes three, so an
// open hand with one pon analyses 11 concealed tiles. visible, if
// non-nil, counts tiles seen *outside* the hand (opponents' discards,
// dora indicators); it must not double-count the hand's own tiles,
// which discardOptionFor already accounts for separately.
func AnalyzeDiscards(hand CountArray, fixedMelds int, visible *CountArray) (DiscardAnalysis, error) {
	if fixedMelds < 0 || fixedMelds > 4 {
		return DiscardAnalysis{}, errMalformedf("fixedMelds %d out of range", fixedMelds)
	}
	if err := hand.CheckHandSize(14 - 3*fixedMelds); err != nil {
		return DiscardAnalysis{}, err
	}

	var options []DiscardOption
	for id := TileId(0); id < NumTileIds; id++ {
		if hand.Get(id) == 0 {
			continue
		}
		opt, err := discardOptionFor(hand, id, fixedMelds, visible)
		if err != nil {
			return DiscardAnalysis{}, err
		}
		options = append(options, opt)
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].Shanten != options[j].Shanten {
			return options[i].Shanten < options[j].Shanten
		}
		if options[i].UkiereCount != options[j].UkiereCount {
			return options[i].UkiereCount > options[j].UkiereCount
		}
		return options[i].Discard < options[j].Discard
	})

	analysis := DiscardAnalysis{Options: options}
	if len(options) == 0 {
		return analysis, nil
	}
	analysis.MinShanten = options[0].Shanten

	best := options[0]
	upgrades, err := findUpgrades(hand, best, fixedMelds, visible)
	if err != nil {
		return DiscardAnalysis{}, err
	}
	analysis.Upgrades = upgrades
	return analysis, nil
}

func discardOptionFor(hand CountArray, discard TileId, fixedMelds int, visible *CountArray) (DiscardOption, error) {
	after := hand.Remove(discard)
	ukiere, shanten, err := Ukiere(after, fixedMelds)
	if err != nil {
		return DiscardOption{}, err
	}
	return DiscardOption{
		Discard:     discard,
		Shanten:     shanten,
		Ukiere:      ukiere,
		UkiereCount: remainingCopies(after, ukiere, visible),
	}, nil
}

// UpgradesForDiscard enumerates upgrade tiles for one specific discard
// rather than only for the globally best one, so a discard policy that
// is tie-breaking between equal-shanten, equal-ukiere candidates can
// compare their aggregate upgrade potential.
func UpgradesForDiscard(hand14 CountArray, discard TileId, fixedMelds int, visible *CountArray) ([]UpgradeOption, error) {
	if hand14.Get(discard) == 0 {
		return nil, errMalformedf("discard %s not in hand", discard)
	}
	opt, err := discardOptionFor(hand14, discard, fixedMelds, visible)
	if err != nil {
		return nil, err
	}
	return findUpgrades(hand14, opt, fixedMelds, visible)
}

// findUpgrades enumerates tiles whose draw, following best's discard,
// does not reduce shanten further but whose own best responding discard
// beats best's ukiere count.
func findUpgrades(hand14 CountArray, best DiscardOption, fixedMelds int, visible *CountArray) ([]UpgradeOption, error) {
	hand13 := hand14.Remove(best.Discard)

	var upgrades []UpgradeOption
	for trigger := TileId(0); trigger < NumTileIds; trigger++ {
		if hand13.Get(trigger) >= 4 {
			continue
		}
		candidate14 := hand13.Add(trigger)
		breakdown, err := Shanten(candidate14, fixedMelds)
		if err != nil {
			return nil, err
		}
		if breakdown.Best() < best.Shanten {
			continue // this tile is ordinary ukiere, not an upgrade
		}

		nextDiscard, nextUkiere, nextCount, found, err := bestDiscardAtShanten(candidate14, best.Shanten, fixedMelds, visible)
		if err != nil {
			return nil, err
		}
		if !found || nextCount <= best.UkiereCount {
			continue
		}
		upgrades = append(upgrades, UpgradeOption{
			Trigger:              trigger,
			NextDiscard:          nextDiscard,
			ResultingUkiere:      nextUkiere,
			ResultingUkiereCount: nextCount,
		})
	}
	return upgrades, nil
}

// bestDiscardAtShanten finds, among hand14's legal discards that keep
// shanten at targetShanten, the one with the largest ukiere count.
func bestDiscardAtShanten(hand14 CountArray, targetShanten, fixedMelds int, visible *CountArray) (discard TileId, ukiere []TileId, count int, found bool, err error) {
	bestCount := -1
	for id := TileId(0); id < NumTileIds; id++ {
		if hand14.Get(id) == 0 {
			continue
		}
		after := hand14.Remove(id)
		ids, sh, uerr := Ukiere(after, fixedMelds)
		if uerr != nil {
			return 0, nil, 0, false, uerr
		}
		if sh != targetShanten {
			continue
		}
		c := remainingCopies(after, ids, visible)
		if c > bestCount {
			bestCount, discard, ukiere, found = c, id, ids, true
		}
	}
	return discard, ukiere, bestCount, found, nil
}

// remainingCopies sums, across ids, the physical copies of each tile
// still obtainable: four minus however many are already in hand or
// visible elsewhere.
func remainingCopies(hand CountArray, ids []TileId, visible *CountArray) int {
	total := 0
	for _, id := range ids {
		remaining := 4 - hand.Get(id)
		if visible != nil {
			remaining -= visible.Get(id)
		}
		if remaining > 0 {
			total += remaining
		}
	}
	return total
}
