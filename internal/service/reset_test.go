package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

func TestResetProgress(t *testing.T) {
	store := newTestStore(newFakeStateRepo(), &fakeTheme{})
	ctx := context.Background()

	_, _ = store.SetStatus(ctx, 1, entities.StatusMastered)
	_, _ = store.SetStatus(ctx, 2, entities.StatusInReview)
	_, _ = store.Update(ctx, func(s *entities.AppState) {
		s.DarkMode = true
		s.TextSize = 120
	})

	dropped, err := NewResetService(store, zap.NewNop()).ResetProgress(ctx)
	if err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}

	state := store.Snapshot()
	if len(state.Progress) != 0 {
		t.Errorf("Progress = %v, want empty", state.Progress)
	}
	if !state.DarkMode || state.TextSize != 120 {
		t.Errorf("settings lost: %+v", state)
	}
}

func TestResetProgressSaveFailure(t *testing.T) {
	repo := newFakeStateRepo()
	store := newTestStore(repo, &fakeTheme{})
	ctx := context.Background()
	_, _ = store.SetStatus(ctx, 1, entities.StatusMastered)

	repo.putErr = errDiskFull
	if _, err := NewResetService(store, zap.NewNop()).ResetProgress(ctx); err == nil {
		t.Fatal("ResetProgress should fail")
	}
	if store.Get(1).Status != entities.StatusMastered {
		t.Error("progress dropped despite failed save")
	}
}
