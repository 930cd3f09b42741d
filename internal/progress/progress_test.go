package progress

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// memKV is an in-memory store.KV for tests.
type memKV struct {
	data map[string]json.RawMessage
	err  error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]json.RawMessage)}
}

func (m *memKV) Get(_ context.Context, key string) (json.RawMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value json.RawMessage) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = append(json.RawMessage(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestLoadDefaults(t *testing.T) {
	s := Load(context.Background(), newMemKV())

	got := s.Current()
	want := Progress{QuizLevel: 1}
	if got != want {
		t.Errorf("expected defaults %+v, got %+v", want, got)
	}
}

func TestLoadMergesPartialRecordOverDefaults(t *testing.T) {
	kv := newMemKV()
	// Older persisted format without quizLevel.
	kv.data[Key] = json.RawMessage(`{"stars":7,"quizzesCompleted":2}`)

	got := Load(context.Background(), kv).Current()

	if got.Stars != 7 || got.QuizzesCompleted != 2 {
		t.Errorf("persisted fields not loaded: %+v", got)
	}
	if got.QuizLevel != 1 {
		t.Errorf("missing quizLevel should default to 1, got %d", got.QuizLevel)
	}
}

func TestLoadCorruptRecordFallsBackToDefaults(t *testing.T) {
	kv := newMemKV()
	kv.data[Key] = json.RawMessage(`{not json`)

	got := Load(context.Background(), kv).Current()

	if got != Defaults() {
		t.Errorf("corrupt record should yield defaults, got %+v", got)
	}
}

func TestUpdateIsWriteThrough(t *testing.T) {
	kv := newMemKV()
	s := Load(context.Background(), kv)

	deltas := []Delta{
		{Stars: Int(1)},
		{Stars: Int(3), QuizzesCompleted: Int(1)},
		{QuizLevel: Int(2)},
	}

	for _, d := range deltas {
		snap, err := s.Update(context.Background(), d)
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		var persisted Progress
		if err := json.Unmarshal(kv.data[Key], &persisted); err != nil {
			t.Fatalf("unmarshal persisted: %v", err)
		}
		if persisted != snap {
			t.Errorf("persisted %+v != in-memory %+v", persisted, snap)
		}
	}
}

func TestUpdateOverwritesOnlySetFields(t *testing.T) {
	s := Load(context.Background(), newMemKV())
	s.Update(context.Background(), Delta{Stars: Int(5), ObjectsDiscovered: Int(2)})

	got, err := s.Update(context.Background(), Delta{QuizLevel: Int(3)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if got.Stars != 5 || got.ObjectsDiscovered != 2 || got.QuizLevel != 3 {
		t.Errorf("unexpected merge result: %+v", got)
	}
}

func TestUpdateAdvancesMemoryOnPersistError(t *testing.T) {
	kv := newMemKV()
	s := Load(context.Background(), kv)
	kv.err = errors.New("disk full")

	got, err := s.Update(context.Background(), Delta{Stars: Int(1)})
	if err == nil {
		t.Fatal("expected persist error")
	}
	if got.Stars != 1 || s.Current().Stars != 1 {
		t.Error("in-memory record should still advance on persist error")
	}
}

func TestReset(t *testing.T) {
	kv := newMemKV()
	s := Load(context.Background(), kv)
	s.Update(context.Background(), Delta{Stars: Int(9), QuizLevel: Int(4)})

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.Current() != Defaults() {
		t.Errorf("expected defaults after reset, got %+v", s.Current())
	}
}
