package simulate

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexander-jiang/riichi-bot/mahjong"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Progress
}

func (n *recordingNotifier) Notify(p Progress) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, p)
	return nil
}

func TestRun_DeterministicForASeed(t *testing.T) {
	opts := Options{
		Hand:     mustParse(t, "123456789m11p29s"),
		MaxDraws: 8,
		Trials:   200,
		Seed:     42,
		Shards:   2,
	}
	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	second, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Equal(t, first.Trials, second.Trials)
	require.Equal(t, first.TenpaiTrials, second.TenpaiTrials)
	require.Equal(t, first.TenpaiByTurn, second.TenpaiByTurn)
	require.NotEqual(t, first.RunID, second.RunID)
}

func TestRun_DealtTenpaiRecordsTurnZero(t *testing.T) {
	opts := Options{
		Hand:     mustParse(t, "22s111234p34789m"),
		MaxDraws: 5,
		Trials:   50,
		Seed:     7,
		Shards:   1,
	}
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, 50, result.Trials)
	require.Equal(t, 50, result.TenpaiTrials)
	require.Equal(t, 50, result.TenpaiByTurn[0])
	require.Equal(t, float64(0), result.AvgTurnsToTenpai)
	// Waiting on 2m/5m with no copies visible: eight live tiles.
	require.Equal(t, float64(8), result.AvgUkiereAtTenpai)
}

func TestRun_DealtTenpaiHandChasesWinOnDraw(t *testing.T) {
	// 345m plus 1156466778s is dealt in tenpai waiting on 5s/8s (six
	// live copies), so every trial records turn-0 tenpai and then plays
	// the horizon out for a self-drawn win.
	opts := Options{
		Hand:     mustParse(t, "345m1156466778s"),
		MaxDraws: 12,
		Trials:   500,
		Seed:     11,
		Shards:   4,
	}
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, 500, result.Trials)
	require.Equal(t, 500, result.TenpaiByTurn[0])
	require.Equal(t, float64(6), result.AvgUkiereAtTenpai)
	// Six live winning tiles over twelve weighted draws from a
	// 123-tile pool: well over a quarter of trials should win even
	// before the policy widens the wait.
	require.Greater(t, result.WinOnDraw, 150)
}

func TestRun_OneShantenHandUsuallyReachesTenpai(t *testing.T) {
	opts := Options{
		Hand:     mustParse(t, "123456789m11p29s"),
		MaxDraws: 10,
		Trials:   300,
		Seed:     13,
		Shards:   3,
	}
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, 300, result.Trials)
	require.Greater(t, result.TenpaiRate(), 0.6)
	require.Greater(t, result.AvgTurnsToTenpai, 0.0)
	require.Zero(t, result.TenpaiByTurn[0])
}

func TestRun_NotifierSeesShardAndBatchBoundaries(t *testing.T) {
	notifier := &recordingNotifier{}
	opts := Options{
		Hand:     mustParse(t, "123456789m11p29s"),
		MaxDraws: 4,
		Trials:   10,
		Seed:     3,
		Shards:   2,
		Notifier: notifier,
	}
	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, notifier.events, 3)
	final := notifier.events[len(notifier.events)-1]
	require.Equal(t, -1, final.Shard)
	require.Equal(t, 10, final.Completed)
	require.Equal(t, 0, final.Remaining)
}

func TestRun_CancelledContextReturnsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := Options{
		Hand:     mustParse(t, "123456789m11p29s"),
		MaxDraws: 4,
		Trials:   100,
		Seed:     5,
		Shards:   2,
	}
	result, err := Run(ctx, opts)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, result.Trials)
}

func TestRun_RejectsMalformedInputs(t *testing.T) {
	_, err := Run(context.Background(), Options{Hand: mustParse(t, "123m"), MaxDraws: 4, Trials: 10})
	require.ErrorIs(t, err, mahjong.ErrMalformedInput)

	_, err = Run(context.Background(), Options{Hand: mustParse(t, "123456789m11p29s"), MaxDraws: 0, Trials: 10})
	require.ErrorIs(t, err, mahjong.ErrMalformedInput)
}
