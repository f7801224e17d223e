package simulate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexander-jiang/riichi-bot/mahjong"
)

func mustParse(t *testing.T, s string) mahjong.CountArray {
	t.Helper()
	c, err := mahjong.ParseMSPZ(s)
	require.NoError(t, err)
	return c
}

func TestNewPool_ComplementOfHandAndVisible(t *testing.T) {
	hand := mustParse(t, "123456789m11p23s")
	pool, err := NewPool(hand, mahjong.CountArray{})
	require.NoError(t, err)
	require.Equal(t, 136-13, pool.Remaining())
	require.Equal(t, 3, pool.Count(mahjong.Man1))
	require.Equal(t, 2, pool.Count(mahjong.Pin1))
	require.Equal(t, 4, pool.Count(mahjong.East))
}

func TestNewPool_RejectsOverSeenTile(t *testing.T) {
	hand := mustParse(t, "123456789m11p23s")
	var visible mahjong.CountArray
	visible[mahjong.Man1] = 4 // plus the one in hand = 5 seen
	_, err := NewPool(hand, visible)
	require.ErrorIs(t, err, mahjong.ErrInvariantViolation)
}

func TestPool_DrawWithoutReplacementThenEmpty(t *testing.T) {
	// Leave exactly two copies of 9s drawable.
	var visible mahjong.CountArray
	for id := mahjong.TileId(0); id < mahjong.NumTileIds; id++ {
		visible[id] = 4
	}
	visible[mahjong.Sou9] = 2

	pool, err := NewPool(mahjong.CountArray{}, visible)
	require.NoError(t, err)
	require.Equal(t, 2, pool.Remaining())

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2; i++ {
		id, err := pool.Draw(rng)
		require.NoError(t, err)
		require.Equal(t, mahjong.Sou9, id)
	}
	_, err = pool.Draw(rng)
	require.ErrorIs(t, err, ErrEmptyPool)
}

func TestPool_DrawIsDeterministicForASeed(t *testing.T) {
	hand := mustParse(t, "123456789m11p23s")
	a, err := NewPool(hand, mahjong.CountArray{})
	require.NoError(t, err)
	b, err := NewPool(hand, mahjong.CountArray{})
	require.NoError(t, err)

	rngA := rand.New(rand.NewSource(99))
	rngB := rand.New(rand.NewSource(99))
	for i := 0; i < 30; i++ {
		idA, errA := a.Draw(rngA)
		idB, errB := b.Draw(rngB)
		require.NoError(t, errA)
		require.NoError(t, errB)
		require.Equal(t, idA, idB)
	}
}
