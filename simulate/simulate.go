package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/alexander-jiang/riichi-bot/log"
	"github.com/alexander-jiang/riichi-bot/mahjong"
)

// Options configures one Monte-Carlo batch. Hand is the 13-tile
// starting hand; Visible counts tiles visible *outside* the hand
// (opponents' discards, dora indicators, own prior discards). Zero
// values for Shards, Policy, and Notifier select the defaults.
type Options struct {
	Hand     mahjong.CountArray
	Visible  mahjong.CountArray
	MaxDraws int
	Trials   int
	Seed     int64
	Shards   int // 0 = one shard per logical CPU
	Policy   DiscardPolicy
	Notifier Notifier

	// DiscardPool is the player's own discards, used only to flag
	// furiten on the starting hand's waits; it never changes shanten
	// arithmetic mid-trial.
	DiscardPool []mahjong.TileId
}

// Result summarizes a batch. TenpaiByTurn[t] counts trials that first
// reached tenpai on turn t (index 0 = dealt already tenpai); its length
// is MaxDraws+1.
type Result struct {
	RunID             string
	Trials            int
	TenpaiByTurn      []int
	TenpaiTrials      int
	WinOnDraw         int
	EmptyPoolTrials   int
	AvgTurnsToTenpai  float64 // among trials that reached tenpai
	AvgUkiereAtTenpai float64 // remaining wait copies at the moment tenpai was reached
	Elapsed           time.Duration
}

// TenpaiRate returns the fraction of trials that reached tenpai within
// the draw horizon.
func (r Result) TenpaiRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.TenpaiTrials) / float64(r.Trials)
}

type trialOutcome struct {
	tenpaiTurn     int // -1 when the horizon was exhausted first
	winOnDraw      bool
	emptyPool      bool
	ukiereAtTenpai int
}

// defaultShards sizes the worker pool from live host telemetry rather
// than a compiled-in constant, falling back to runtime.NumCPU when the
// probe fails (some containers deny the proc reads gopsutil wants).
func defaultShards() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// Run executes opts.Trials independent trials and aggregates their
// outcomes. Trials are partitioned across shards, each shard owning a
// disjoint RNG stream seeded from Seed plus the shard index, so a
// (Seed, Shards) pair fully determines the result. ctx is the
// cooperative stop flag: it is consulted between trials only, and a
// cancelled run returns the partial Result alongside ctx's error.
func Run(ctx context.Context, opts Options) (Result, error) {
	if err := opts.Hand.CheckHandSize(13); err != nil {
		return Result{}, err
	}
	if opts.Trials <= 0 || opts.MaxDraws <= 0 {
		return Result{}, fmt.Errorf("%w: trials %d and maxDraws %d must be positive", mahjong.ErrMalformedInput, opts.Trials, opts.MaxDraws)
	}
	basePool, err := NewPool(opts.Hand, opts.Visible)
	if err != nil {
		return Result{}, err
	}

	// A nil Policy gives each shard its own MaxUkierePolicy: its decision
	// cache is keyed by hand only, so sharing it across concurrent shards
	// would let scheduling order decide which shard's choice is reused.
	policy := opts.Policy
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	shards := opts.Shards
	if shards <= 0 {
		shards = defaultShards()
	}
	if shards > opts.Trials {
		shards = opts.Trials
	}

	runID := uuid.New().String()
	start := time.Now()
	batchLog := log.With("run", runID)
	batchLog.Info("simulate batch start", "trials", opts.Trials, "shards", shards, "maxDraws", opts.MaxDraws)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		remaining = int64(opts.Trials)
	)
	result := Result{
		RunID:        runID,
		TenpaiByTurn: make([]int, opts.MaxDraws+1),
	}
	var turnSum, ukiereSum int64

	per := opts.Trials / shards
	extra := opts.Trials % shards
	for shard := 0; shard < shards; shard++ {
		n := per
		if shard < extra {
			n++
		}
		wg.Add(1)
		go func(shard, trials int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(opts.Seed + int64(shard)))
			shardPolicy := policy
			if shardPolicy == nil {
				shardPolicy = NewMaxUkierePolicy()
			}
			local := Result{TenpaiByTurn: make([]int, opts.MaxDraws+1)}
			var localTurns, localUkiere int64
			done := 0
			for i := 0; i < trials; i++ {
				if ctx.Err() != nil {
					break
				}
				out, err := runTrial(opts, basePool, shardPolicy, rng)
				if err != nil {
					batchLog.Warn("simulate trial failed", "shard", shard, "err", err)
					continue
				}
				done++
				if out.emptyPool {
					local.EmptyPoolTrials++
					batchLog.Warn("simulate trial ended with empty pool", "shard", shard)
				}
				if out.winOnDraw {
					local.WinOnDraw++
				}
				if out.tenpaiTurn >= 0 {
					local.TenpaiTrials++
					local.TenpaiByTurn[out.tenpaiTurn]++
					localTurns += int64(out.tenpaiTurn)
					localUkiere += int64(out.ukiereAtTenpai)
				}
			}

			mu.Lock()
			result.Trials += done
			result.TenpaiTrials += local.TenpaiTrials
			result.WinOnDraw += local.WinOnDraw
			result.EmptyPoolTrials += local.EmptyPoolTrials
			for t, c := range local.TenpaiByTurn {
				result.TenpaiByTurn[t] += c
			}
			turnSum += localTurns
			ukiereSum += localUkiere
			mu.Unlock()

			left := atomic.AddInt64(&remaining, -int64(done))
			if err := notifier.Notify(Progress{RunID: runID, Shard: shard, Completed: done, Remaining: int(left)}); err != nil {
				batchLog.Warn("simulate progress notify failed", "shard", shard, "err", err)
			}
			batchLog.Debug("simulate shard done", "shard", shard, "trials", done)
		}(shard, n)
	}
	wg.Wait()

	if result.TenpaiTrials > 0 {
		result.AvgTurnsToTenpai = float64(turnSum) / float64(result.TenpaiTrials)
		result.AvgUkiereAtTenpai = float64(ukiereSum) / float64(result.TenpaiTrials)
	}
	result.Elapsed = time.Since(start)

	if err := notifier.Notify(Progress{RunID: runID, Shard: -1, Completed: result.Trials, Remaining: 0}); err != nil {
		batchLog.Warn("simulate completion notify failed", "err", err)
	}
	batchLog.Info("simulate batch end", "elapsed", result.Elapsed, "tenpaiRate", result.TenpaiRate())

	return result, ctx.Err()
}

// runTrial plays one self-draw sequence. A hand that *reaches* tenpai
// through a discard terminates the trial there (that transition is what
// the turns-to-tenpai histogram measures). A hand dealt already in
// tenpai instead chases win-on-draw across the full horizon: each draw
// is checked against the current wait set, and a hit is a tsumo win
// regardless of furiten, which only ever disables ron.
func runTrial(opts Options, pool Pool, policy DiscardPolicy, rng *rand.Rand) (trialOutcome, error) {
	hand := opts.Hand
	visible := opts.Visible

	breakdown, err := mahjong.Shanten(hand, 0)
	if err != nil {
		return trialOutcome{}, err
	}
	startTenpai := breakdown.Best() == 0
	out := trialOutcome{tenpaiTurn: -1}
	if startTenpai {
		out.tenpaiTurn = 0
		out.ukiereAtTenpai, err = waitCopiesRemaining(hand, visible, pool)
		if err != nil {
			return trialOutcome{}, err
		}
	}

	tenpai := startTenpai
	for t := 1; t <= opts.MaxDraws; t++ {
		var inWait [mahjong.NumTileIds]bool
		if tenpai {
			waits, err := resolveWaitsOutside(hand, opts.DiscardPool, visible)
			if err != nil {
				return trialOutcome{}, err
			}
			for _, w := range waits.Waits {
				inWait[w.Id] = true
			}
		}

		drawn, err := pool.Draw(rng)
		if err != nil {
			out.emptyPool = true
			return out, nil
		}
		if tenpai && inWait[drawn] {
			out.winOnDraw = true
			return out, nil
		}

		hand14 := hand.Add(drawn)
		discard, err := policy.ChooseDiscard(hand14, &visible)
		if err != nil {
			return trialOutcome{}, err
		}
		hand = hand14.Remove(discard)
		visible = visible.Add(discard)

		breakdown, err = mahjong.Shanten(hand, 0)
		if err != nil {
			return trialOutcome{}, err
		}
		if breakdown.Best() == 0 {
			if out.tenpaiTurn < 0 {
				out.tenpaiTurn = t
				out.ukiereAtTenpai, err = waitCopiesRemaining(hand, visible, pool)
				if err != nil {
					return trialOutcome{}, err
				}
			}
			if !startTenpai {
				return out, nil
			}
			tenpai = true
		} else {
			tenpai = false
		}
	}
	return out, nil
}

// resolveWaitsOutside adapts the analyser's visible-universe convention
// (hand folded in) to the simulator's outside-the-hand bookkeeping.
func resolveWaitsOutside(hand mahjong.CountArray, discardPool []mahjong.TileId, visibleOutside mahjong.CountArray) (mahjong.WaitResult, error) {
	universe := visibleOutside
	for id := mahjong.TileId(0); id < mahjong.NumTileIds; id++ {
		universe[id] += uint8(hand.Get(id))
	}
	return mahjong.ResolveWaits(hand, discardPool, universe)
}

func waitCopiesRemaining(hand, visibleOutside mahjong.CountArray, pool Pool) (int, error) {
	waits, err := resolveWaitsOutside(hand, nil, visibleOutside)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, w := range waits.Waits {
		total += pool.Count(w.Id)
	}
	return total, nil
}
