package simulate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexander-jiang/riichi-bot/mahjong"
)

func TestMaxUkierePolicy_DiscardsTheFloatingHonor(t *testing.T) {
	// Three complete manzu runs, a pinzu pair, a souzu ryanmen, and one
	// floating dragon: shedding the dragon reaches tenpai, any other
	// discard does not.
	hand := mustParse(t, "123456789m11p23s7z")
	require.Equal(t, 14, hand.Total())

	policy := NewMaxUkierePolicy()
	discard, err := policy.ChooseDiscard(hand, nil)
	require.NoError(t, err)
	require.Equal(t, mahjong.Red, discard)
}

func TestMaxUkierePolicy_CachedDecisionIsStable(t *testing.T) {
	hand := mustParse(t, "123456789m11p23s7z")
	policy := NewMaxUkierePolicy()

	first, err := policy.ChooseDiscard(hand, nil)
	require.NoError(t, err)
	second, err := policy.ChooseDiscard(hand, nil)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMaxUkierePolicy_RejectsWrongHandSize(t *testing.T) {
	hand := mustParse(t, "123m")
	policy := NewMaxUkierePolicy()
	_, err := policy.ChooseDiscard(hand, nil)
	require.ErrorIs(t, err, mahjong.ErrMalformedInput)
}
