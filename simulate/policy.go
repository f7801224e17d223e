package simulate

import (
	"sync"

	"github.com/alexander-jiang/riichi-bot/mahjong"
)

// DiscardPolicy chooses which tile to discard from a post-draw hand.
// Implementations must be deterministic (the simulator's reproducibility
// guarantee rests on the RNG being the only source of variation) and
// safe for concurrent use from multiple shards.
type DiscardPolicy interface {
	ChooseDiscard(hand14 mahjong.CountArray, visible *mahjong.CountArray) (mahjong.TileId, error)
}

// MaxUkierePolicy is the default policy: prefer the discard producing
// the lowest shanten; within that, the largest ukiere count; within
// that, the largest aggregate upgrade ukiere; within that, the lowest
// tile id. Decisions are cached keyed by the 14-tile hand fingerprint,
// which keeps the per-draw cost near a map lookup once the early turns'
// hand space has been explored.
type MaxUkierePolicy struct {
	cache sync.Map // hand fingerprint -> mahjong.TileId
}

// NewMaxUkierePolicy returns a fresh policy with an empty decision
// cache. A policy is safe to share across shards, but a shared cache
// makes each decision depend on which shard reached that hand first, so
// Run builds one policy per shard when Options.Policy is nil.
func NewMaxUkierePolicy() *MaxUkierePolicy {
	return &MaxUkierePolicy{}
}

func handFingerprint(c mahjong.CountArray) string {
	var b [mahjong.NumTileIds]byte
	for i, v := range c {
		b[i] = v
	}
	return string(b[:])
}

func (p *MaxUkierePolicy) ChooseDiscard(hand14 mahjong.CountArray, visible *mahjong.CountArray) (mahjong.TileId, error) {
	key := handFingerprint(hand14)
	if v, ok := p.cache.Load(key); ok {
		return v.(mahjong.TileId), nil
	}

	analysis, err := mahjong.AnalyzeDiscards(hand14, 0, visible)
	if err != nil {
		return 0, err
	}

	// Options arrive sorted by (shanten asc, ukiere desc, id asc); the
	// upgrade tiebreak only matters among options tied with the head.
	best := analysis.Options[0]
	choice := best.Discard
	bestUpgrade := -1
	for _, opt := range analysis.Options {
		if opt.Shanten != best.Shanten || opt.UkiereCount != best.UkiereCount {
			break
		}
		upgrades, err := mahjong.UpgradesForDiscard(hand14, opt.Discard, 0, visible)
		if err != nil {
			return 0, err
		}
		total := 0
		for _, u := range upgrades {
			total += u.ResultingUkiereCount
		}
		if total > bestUpgrade {
			bestUpgrade = total
			choice = opt.Discard
		}
	}

	p.cache.Store(key, choice)
	return choice, nil
}
