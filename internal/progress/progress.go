package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/masumhasan/eduplay/internal/store"
)

// Key is the kv key the progress record is persisted under.
const Key = "progress"

// Progress is the persisted leveling and score record for the learner.
type Progress struct {
	Stars             int `json:"stars"`
	QuizzesCompleted  int `json:"quizzesCompleted"`
	ObjectsDiscovered int `json:"objectsDiscovered"`
	LearningStreak    int `json:"learningStreak"`
	QuizLevel         int `json:"quizLevel"`
}

// Defaults returns the record for a brand-new learner.
func Defaults() Progress {
	return Progress{QuizLevel: 1}
}

// Delta is a partial update. Nil fields are left untouched; set fields
// overwrite with the given absolute value (callers compute new totals).
type Delta struct {
	Stars             *int
	QuizzesCompleted  *int
	ObjectsDiscovered *int
	LearningStreak    *int
	QuizLevel         *int
}

// Int is a convenience for building Delta literals.
func Int(v int) *int { return &v }

// Store owns the progress record: load-merge-defaults on open, then
// write-through persistence on every update. Update is serialized so
// read-modify-write stays atomic for concurrent callers.
type Store struct {
	mu      sync.Mutex
	kv      store.KV
	current Progress
}

// Load reads the persisted record, merging it over defaults so missing
// fields (older data formats) fall back cleanly. A corrupt or absent
// record yields defaults; Load never fails the caller.
func Load(ctx context.Context, kv store.KV) *Store {
	s := &Store{kv: kv, current: Defaults()}

	raw, err := kv.Get(ctx, Key)
	if err != nil || raw == nil {
		return s
	}

	merged := Defaults()
	if err := json.Unmarshal(raw, &merged); err != nil {
		// Corrupt record: treat as absent.
		return s
	}
	s.current = merged
	return s
}

// Current returns a snapshot of the in-memory record.
func (s *Store) Current() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies the delta field-wise, persists synchronously, and
// returns the new snapshot. A persistence error is reported but the
// in-memory record still advances; progress must keep working even if
// the disk does not.
func (s *Store) Update(ctx context.Context, d Delta) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if d.Stars != nil {
		next.Stars = *d.Stars
	}
	if d.QuizzesCompleted != nil {
		next.QuizzesCompleted = *d.QuizzesCompleted
	}
	if d.ObjectsDiscovered != nil {
		next.ObjectsDiscovered = *d.ObjectsDiscovered
	}
	if d.LearningStreak != nil {
		next.LearningStreak = *d.LearningStreak
	}
	if d.QuizLevel != nil {
		next.QuizLevel = *d.QuizLevel
	}
	s.current = next

	raw, err := json.Marshal(next)
	if err != nil {
		return next, fmt.Errorf("marshal progress: %w", err)
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return next, fmt.Errorf("persist progress: %w", err)
	}
	return next, nil
}

// Reset restores defaults and persists them.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Defaults()
	raw, err := json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}
