package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/infra/sqlite/repository"
)

func newTestStore(repo *fakeStateRepo, th *fakeTheme) *ProgressStore {
	return NewProgressStore(repo, th, zap.NewNop())
}

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		getErr  error
	}{
		{name: "absent"},
		{name: "empty", payload: []byte{}},
		{name: "corrupt", payload: []byte(`{"progress": [`)},
		{name: "wrong shape", payload: []byte(`{"progress": {"1": {"status": "Done"}}}`)},
		{name: "negative count", payload: []byte(`{"progress": {"1": {"status": "Pending", "timesReviewed": -1}}}`)},
		{name: "read error", getErr: errDiskFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeStateRepo()
			repo.getErr = tt.getErr
			if tt.payload != nil {
				repo.data[repository.AppStateKey] = tt.payload
			}

			th := &fakeTheme{}
			state := newTestStore(repo, th).Load(context.Background())

			if len(state.Progress) != 0 || state.DarkMode || state.TextSize != 100 {
				t.Errorf("Load = %+v, want default state", state)
			}
			if len(th.applied) != 1 || th.applied[0] {
				t.Errorf("theme applied %v, want [false]", th.applied)
			}
		})
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	repo := newFakeStateRepo()
	repo.data[repository.AppStateKey] = []byte(`{"darkMode": true, "progress": {"3": {"status": "Mastered", "timesReviewed": 2}}}`)

	th := &fakeTheme{}
	state := newTestStore(repo, th).Load(context.Background())

	if !state.DarkMode {
		t.Error("DarkMode = false, want true")
	}
	if state.TextSize != entities.DefaultTextSize {
		t.Errorf("TextSize = %d, want default", state.TextSize)
	}
	rec := state.Progress[3]
	if rec.TopicID != 3 || rec.Status != entities.StatusMastered || rec.TimesReviewed != 2 {
		t.Errorf("record = %+v", rec)
	}
	if len(th.applied) != 1 || !th.applied[0] {
		t.Errorf("theme applied %v, want [true]", th.applied)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newFakeStateRepo()
	ctx := context.Background()
	studied := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

	state := entities.DefaultAppState()
	state.DarkMode = true
	state.TextSize = 130
	state.Progress[7] = entities.ProgressRecord{TopicID: 7, Status: entities.StatusInReview, LastStudied: &studied, TimesReviewed: 4}

	if err := newTestStore(repo, &fakeTheme{}).Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := newTestStore(repo, &fakeTheme{}).Load(ctx)
	if !got.DarkMode || got.TextSize != 130 {
		t.Errorf("settings = %v/%d", got.DarkMode, got.TextSize)
	}
	rec := got.Progress[7]
	if rec.Status != entities.StatusInReview || rec.TimesReviewed != 4 || !rec.LastStudied.Equal(studied) {
		t.Errorf("record = %+v", rec)
	}
}

func TestSavePersistsStatusStrings(t *testing.T) {
	repo := newFakeStateRepo()
	store := newTestStore(repo, &fakeTheme{})

	if _, err := store.SetStatus(context.Background(), 1, entities.StatusMastered); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	var raw struct {
		Progress map[string]map[string]any `json:"progress"`
	}
	if err := json.Unmarshal(repo.data[repository.AppStateKey], &raw); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if raw.Progress["1"]["status"] != "Mastered" {
		t.Errorf("persisted status = %v, want Mastered", raw.Progress["1"]["status"])
	}
}

func TestSetStatus(t *testing.T) {
	repo := newFakeStateRepo()
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	store := newTestStore(repo, &fakeTheme{}).WithClock(func() time.Time { return now })
	ctx := context.Background()

	rec, err := store.SetStatus(ctx, 5, entities.StatusInReview)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if rec.TimesReviewed != 1 || rec.Status != entities.StatusInReview || !rec.LastStudied.Equal(now) {
		t.Errorf("record = %+v", rec)
	}

	rec, err = store.SetStatus(ctx, 5, entities.StatusInReview)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if rec.TimesReviewed != 2 {
		t.Errorf("TimesReviewed = %d, want 2", rec.TimesReviewed)
	}
	if repo.puts != 2 {
		t.Errorf("puts = %d, want 2", repo.puts)
	}

	if got := store.Get(5); got.TimesReviewed != 2 {
		t.Errorf("Get(5) = %+v", got)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	repo := newFakeStateRepo()
	store := newTestStore(repo, &fakeTheme{})

	_, err := store.SetStatus(context.Background(), 1, entities.Status(9))
	if !errors.Is(err, entities.ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}
	if repo.puts != 0 {
		t.Errorf("puts = %d, want 0", repo.puts)
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	repo := newFakeStateRepo()
	th := &fakeTheme{}
	store := newTestStore(repo, th)
	ctx := context.Background()

	if _, err := store.SetStatus(ctx, 1, entities.StatusMastered); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	applied := len(th.applied)

	repo.putErr = errDiskFull
	if _, err := store.SetStatus(ctx, 1, entities.StatusPending); !errors.Is(err, errDiskFull) {
		t.Fatalf("error = %v, want errDiskFull", err)
	}
	if _, err := store.Update(ctx, func(s *entities.AppState) { s.DarkMode = true }); err == nil {
		t.Fatal("Update should fail")
	}

	if got := store.Get(1); got.Status != entities.StatusMastered || got.TimesReviewed != 1 {
		t.Errorf("Get(1) = %+v, want previous record", got)
	}
	if store.Snapshot().DarkMode {
		t.Error("DarkMode changed despite failed save")
	}
	if len(th.applied) != applied {
		t.Error("theme applied after a failed save")
	}
}

func TestGetImplicitRecord(t *testing.T) {
	store := newTestStore(newFakeStateRepo(), &fakeTheme{})
	rec := store.Get(42)
	if rec.TopicID != 42 || rec.Status != entities.StatusPending || rec.TimesReviewed != 0 || rec.LastStudied != nil {
		t.Errorf("Get(42) = %+v", rec)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	store := newTestStore(newFakeStateRepo(), &fakeTheme{})
	if _, err := store.SetStatus(context.Background(), 1, entities.StatusInReview); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	snap := store.Snapshot()
	snap.Progress[1] = entities.NewProgressRecord(1)
	snap.TextSize = 80

	if store.Get(1).Status != entities.StatusInReview || store.Snapshot().TextSize != 100 {
		t.Error("mutating a snapshot changed the store")
	}
}

func TestSaveAppliesTheme(t *testing.T) {
	th := &fakeTheme{}
	store := newTestStore(newFakeStateRepo(), th)

	state := entities.DefaultAppState()
	state.DarkMode = true
	if err := store.Save(context.Background(), state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(th.applied) != 1 || !th.applied[0] {
		t.Errorf("theme applied %v, want [true]", th.applied)
	}
}
