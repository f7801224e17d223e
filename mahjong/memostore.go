package mahjong

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/redis/go-redis/v9"
)

// cacheKey packs a CountArray plus fixedMelds into the byte-string key
// shanten caching uses: 34 raw count bytes followed by one byte for
// fixedMelds.
func cacheKey(c CountArray, fixedMelds int) string {
	var b [NumTileIds + 1]byte
	for i, v := range c {
		b[i] = v
	}
	b[NumTileIds] = byte(fixedMelds)
	return string(b[:])
}

// MemoStore is the pluggable cache behind Engine. Implementations must be
// safe for concurrent Get/Set from multiple goroutines; the analyser's
// hot path takes no lock of its own.
type MemoStore interface {
	GetShanten(key string) (ShantenBreakdown, bool)
	SetShanten(key string, v ShantenBreakdown)
}

// ristrettoMemoStore is the default in-process MemoStore, backed by
// github.com/dgraph-io/ristretto. Every entry is admitted at cost 1, so
// MaxCost bounds the number of cached (hand, fixedMelds) keys rather
// than their size in bytes.
type ristrettoMemoStore struct {
	cache *ristretto.Cache
}

// NewRistrettoMemoStore builds the default in-process MemoStore sized
// for a few hundred thousand distinct (hand, fixedMelds) keys, matching
// the Monte-Carlo simulator's per-run working set.
func NewRistrettoMemoStore() (MemoStore, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 26, // entries, at cost 1 each
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &ristrettoMemoStore{cache: cache}, nil
}

func (s *ristrettoMemoStore) GetShanten(key string) (ShantenBreakdown, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return ShantenBreakdown{}, false
	}
	breakdown, ok := v.(ShantenBreakdown)
	return breakdown, ok
}

func (s *ristrettoMemoStore) SetShanten(key string, v ShantenBreakdown) {
	s.cache.Set(key, v, 1)
	// Set is buffered; Wait makes the entry visible to the next Get.
	s.cache.Wait()
}

// redisMemoStore shares the shanten table across multiple analyser
// processes that see overlapping opening-hand distributions (for
// instance, a fleet of Monte-Carlo workers all seeded from the same
// early-game corpus). It is entirely optional: nothing in this package
// constructs one implicitly, and a caller who never calls
// NewRedisMemoStore never dials a socket.
type redisMemoStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMemoStore wraps an existing *redis.Client as a MemoStore. The
// caller owns the client's lifecycle (creation, auth, Close).
func NewRedisMemoStore(client *redis.Client, ttl time.Duration) MemoStore {
	return &redisMemoStore{client: client, ttl: ttl}
}

func (s *redisMemoStore) GetShanten(key string) (ShantenBreakdown, bool) {
	raw, err := s.client.Get(context.Background(), redisShantenKey(key)).Bytes()
	if err != nil {
		return ShantenBreakdown{}, false
	}
	var v ShantenBreakdown
	if err := json.Unmarshal(raw, &v); err != nil {
		return ShantenBreakdown{}, false
	}
	return v, true
}

func (s *redisMemoStore) SetShanten(key string, v ShantenBreakdown) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.client.Set(context.Background(), redisShantenKey(key), raw, s.ttl)
}

func redisShantenKey(key string) string {
	return "mahjong:shanten:" + asciiHex(key)
}

// asciiHex renders an arbitrary byte-string key as hex so it is safe as
// a Redis key (the raw key can contain any byte, including ':' or
// control characters).
func asciiHex(s string) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(s)*2)
	for i := 0; i < len(s); i++ {
		out[2*i] = hexDigits[s[i]>>4]
		out[2*i+1] = hexDigits[s[i]&0xf]
	}
	return string(out)
}

// Engine wraps the pure Shanten computation with a MemoStore. The cache
// is swappable and Engine needs no mutex of its own, since MemoStore
// implementations are responsible for their own concurrency.
type Engine struct {
	store MemoStore
}

// NewEngine builds an Engine around an explicit MemoStore.
func NewEngine(store MemoStore) *Engine {
	return &Engine{store: store}
}

// NewDefaultEngine builds an Engine using the default in-process
// ristretto-backed MemoStore.
func NewDefaultEngine() (*Engine, error) {
	store, err := NewRistrettoMemoStore()
	if err != nil {
		return nil, err
	}
	return NewEngine(store), nil
}

// Shanten is a cached wrapper around the package-level Shanten function.
func (e *Engine) Shanten(c CountArray, fixedMelds int) (ShantenBreakdown, error) {
	key := cacheKey(c, fixedMelds)
	if v, ok := e.store.GetShanten(key); ok {
		return v, nil
	}
	v, err := Shanten(c, fixedMelds)
	if err != nil {
		return ShantenBreakdown{}, err
	}
	e.store.SetShanten(key, v)
	return v, nil
}
