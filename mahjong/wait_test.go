package mahjong

import "testing"

func TestResolveWaits_FuritenWhenWaitTileWasDiscarded(t *testing.T) {
	hand := mustParse(t, "22s111234p34789m")
	result, err := ResolveWaits(hand, []TileId{Man2}, hand)
	if err != nil {
		t.Fatalf("ResolveWaits failed: %v", err)
	}
	if !result.Furiten {
		t.Fatalf("expected furiten since 2m is both a wait and a prior discard")
	}
	if len(result.Waits) != 2 {
		t.Fatalf("furiten taints legality, not the reported wait set: expected 2 waits, got %d", len(result.Waits))
	}
}

func TestResolveWaits_DeadWaitWhenAllFourCopiesVisible(t *testing.T) {
	hand := mustParse(t, "22s111234p34789m")
	visible := hand
	visible[Man2] += 4 // the hand holds no 2m; all four copies are visible elsewhere
	result, err := ResolveWaits(hand, nil, visible)
	if err != nil {
		t.Fatalf("ResolveWaits failed: %v", err)
	}
	foundDead := false
	for _, w := range result.Waits {
		if w.Id == Man2 {
			if !w.Dead {
				t.Fatalf("expected 2m to be flagged as a dead wait")
			}
			foundDead = true
		}
	}
	if !foundDead {
		t.Fatalf("expected 2m to still appear in the wait set despite being dead")
	}
}

func TestResolveWaits_EmptyWhenNotTenpai(t *testing.T) {
	hand := mustParse(t, "13579m13579p123z")
	result, err := ResolveWaits(hand, nil, hand)
	if err != nil {
		t.Fatalf("ResolveWaits failed: %v", err)
	}
	b, err := Shanten(hand, 0)
	if err != nil {
		t.Fatalf("Shanten failed: %v", err)
	}
	if b.Best() == 0 && len(result.Waits) == 0 {
		t.Fatalf("invariant violated: tenpai hand reported an empty wait set")
	}
	if b.Best() != 0 && len(result.Waits) != 0 {
		t.Fatalf("invariant violated: non-tenpai hand reported a non-empty wait set")
	}
}

func TestResolveWaits_RejectsWrongHandSize(t *testing.T) {
	hand := mustParse(t, "123m")
	if _, err := ResolveWaits(hand, nil, hand); err == nil {
		t.Fatalf("expected MalformedInput for a non-13-tile hand")
	}
}
