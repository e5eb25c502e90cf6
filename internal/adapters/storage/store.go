// Package storage persists small bits of local state as one JSON blob.
//
// The blob is read-modify-written whole on every mutation. There is only
// one writer, so no transaction discipline is needed beyond "read latest
// before write". Corrupt or missing data degrades to empty state; no
// failure here ever propagates to the pipeline.
package storage

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/ruanlop/placarlive/internal/domain/score"
	"github.com/ruanlop/placarlive/pkg/logger"
	"github.com/ruanlop/placarlive/pkg/metrics"
)

// Blob keys.
const (
	keySeen  = "seen_events"
	keyScore = "score"
)

const fileMode = 0o644

// Store is a file-backed JSON blob for the ledger and the score state.
type Store struct {
	mu     sync.Mutex
	path   string
	logger logger.Logger
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store writing to path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: logger.Get().Named("storage"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSeen restores the persisted seen-event map. Any failure yields an
// empty map.
func (s *Store) LoadSeen() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]time.Time)
	blob := s.read("load_seen")
	gjson.GetBytes(blob, keySeen).ForEach(func(key, value gjson.Result) bool {
		t, err := time.Parse(time.RFC3339, value.String())
		if err == nil {
			seen[key.String()] = t
		}
		return true
	})
	return seen
}

// SaveSeen writes the seen-event map into the blob. Best-effort.
func (s *Store) SaveSeen(seen map[string]time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded := make(map[string]string, len(seen))
	for id, firstSeen := range seen {
		encoded[id] = firstSeen.Format(time.RFC3339)
	}

	blob := s.read("save_seen")
	blob, err := sjson.SetBytes(blob, keySeen, encoded)
	if err != nil {
		s.fail("save_seen", err)
		return
	}
	s.write("save_seen", blob)
}

// LoadScore restores the persisted score baseline. Returns false on any
// failure or when no baseline was ever written.
func (s *Store) LoadScore() (score.Baseline, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob := s.read("load_score")
	node := gjson.GetBytes(blob, keyScore)
	if !node.Exists() || node.Get("match_id").String() == "" {
		return score.Baseline{}, false
	}

	b := score.Baseline{
		MatchID: node.Get("match_id").String(),
		Home:    int(node.Get("home").Int()),
		Away:    int(node.Get("away").Int()),
	}
	if raw := node.Get("last_trigger").String(); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			b.LastTrigger = t
		}
	}
	return b, true
}

// SaveScore writes the score baseline into the blob. Best-effort.
func (s *Store) SaveScore(b score.Baseline) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded := map[string]any{
		"match_id": b.MatchID,
		"home":     b.Home,
		"away":     b.Away,
	}
	if !b.LastTrigger.IsZero() {
		encoded["last_trigger"] = b.LastTrigger.Format(time.RFC3339)
	}

	blob := s.read("save_score")
	blob, err := sjson.SetBytes(blob, keyScore, encoded)
	if err != nil {
		s.fail("save_score", err)
		return
	}
	s.write("save_score", blob)
}

// read returns the latest blob, or an empty object on any failure.
func (s *Store) read(op string) []byte {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.fail(op, err)
		}
		return []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		s.logger.Warn(context.Background(), "state file is corrupt, starting empty",
			logger.String("path", s.path))
		metrics.RecordStorageError(op)
		return []byte("{}")
	}
	return data
}

func (s *Store) write(op string, blob []byte) {
	if err := os.WriteFile(s.path, blob, fileMode); err != nil {
		s.fail(op, err)
	}
}

func (s *Store) fail(op string, err error) {
	metrics.RecordStorageError(op)
	s.logger.Warn(context.Background(), "state persistence failed",
		logger.String("op", op), logger.Error(err))
}
