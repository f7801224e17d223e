package mahjong

import "testing"

type countingMemoStore struct {
	inner MemoStore
	gets  int
	sets  int
}

func (c *countingMemoStore) GetShanten(key string) (ShantenBreakdown, bool) {
	c.gets++
	return c.inner.GetShanten(key)
}

func (c *countingMemoStore) SetShanten(key string, v ShantenBreakdown) {
	c.sets++
	c.inner.SetShanten(key, v)
}

func TestEngine_CachesRepeatedShantenQueries(t *testing.T) {
	backing, err := NewRistrettoMemoStore()
	if err != nil {
		t.Fatalf("NewRistrettoMemoStore failed: %v", err)
	}
	counting := &countingMemoStore{inner: backing}
	engine := NewEngine(counting)

	hand := mustParse(t, "22s111234p34789m")

	first, err := engine.Shanten(hand, 0)
	if err != nil {
		t.Fatalf("Shanten failed: %v", err)
	}
	second, err := engine.Shanten(hand, 0)
	if err != nil {
		t.Fatalf("Shanten failed: %v", err)
	}
	if first != second {
		t.Fatalf("cached result differs from fresh computation: %+v vs %+v", first, second)
	}
	if counting.sets != 1 {
		t.Fatalf("expected exactly one cache population, got %d", counting.sets)
	}
}

func TestCacheKey_DistinguishesFixedMelds(t *testing.T) {
	hand := mustParse(t, "22s111234p34789m")
	if cacheKey(hand, 0) == cacheKey(hand, 1) {
		t.Fatalf("cache key must distinguish fixedMelds")
	}
}
