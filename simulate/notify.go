package simulate

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Progress is the message a Notifier receives at shard boundaries and
// batch completion. It is never emitted per trial or per draw.
type Progress struct {
	RunID     string `json:"run_id"`
	Shard     int    `json:"shard"` // -1 for the batch-completion message
	Completed int    `json:"completed"`
	Remaining int    `json:"remaining"`
}

// Notifier lets an external dashboard watch a long-running batch
// without the simulator knowing anything about dashboards. Notify is
// called off the hot path, only at shard and batch boundaries.
type Notifier interface {
	Notify(p Progress) error
}

// NoopNotifier is the default: progress goes nowhere.
type NoopNotifier struct{}

func (NoopNotifier) Notify(Progress) error { return nil }

// NatsNotifier publishes Progress as JSON to a NATS subject. The caller
// owns the connection's lifecycle (dial, auth, Close), the same way the
// redis-backed MemoStore borrows its client. Publishes are rate-bounded
// to one per minInterval, except the batch-completion message
// (Remaining == 0), which always goes out.
type NatsNotifier struct {
	conn        *nats.Conn
	subject     string
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewNatsNotifier wraps an existing *nats.Conn. minInterval <= 0
// disables rate bounding.
func NewNatsNotifier(conn *nats.Conn, subject string, minInterval time.Duration) *NatsNotifier {
	return &NatsNotifier{conn: conn, subject: subject, minInterval: minInterval}
}

func (n *NatsNotifier) Notify(p Progress) error {
	if n.minInterval > 0 && p.Remaining != 0 {
		n.mu.Lock()
		if time.Since(n.last) < n.minInterval {
			n.mu.Unlock()
			return nil
		}
		n.last = time.Now()
		n.mu.Unlock()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return n.conn.Publish(n.subject, data)
}
