package entities

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestStatusJSON(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, `"Pending"`},
		{StatusInReview, `"InReview"`},
		{StatusMastered, `"Mastered"`},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			data, err := json.Marshal(tt.status)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}

			var got Status
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got != tt.status {
				t.Errorf("Unmarshal = %v, want %v", got, tt.status)
			}
		})
	}
}

func TestStatusJSONRejectsUnknown(t *testing.T) {
	var s Status
	err := json.Unmarshal([]byte(`"Done"`), &s)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Unmarshal error = %v, want ErrInvalidStatus", err)
	}

	if _, err := json.Marshal(Status(7)); err == nil {
		t.Error("Marshal of out-of-range status should fail")
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(s.String())
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %v", s, got)
		}
	}

	if _, err := ParseStatus("pending"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ParseStatus is case sensitive, got err %v", err)
	}
}

func TestNewProgressRecord(t *testing.T) {
	r := NewProgressRecord(4)
	if r.TopicID != 4 {
		t.Errorf("TopicID = %d, want 4", r.TopicID)
	}
	if r.Status != StatusPending {
		t.Errorf("Status = %v, want Pending", r.Status)
	}
	if r.LastStudied != nil {
		t.Errorf("LastStudied = %v, want nil", r.LastStudied)
	}
	if r.TimesReviewed != 0 {
		t.Errorf("TimesReviewed = %d, want 0", r.TimesReviewed)
	}
}

func TestWithStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	r := NewProgressRecord(2).WithStatus(StatusInReview, now)
	if r.TimesReviewed != 1 {
		t.Errorf("TimesReviewed = %d, want 1", r.TimesReviewed)
	}
	if r.LastStudied == nil || !r.LastStudied.Equal(now) {
		t.Errorf("LastStudied = %v, want %v", r.LastStudied, now)
	}

	// Same status again still counts.
	later := now.Add(time.Hour)
	r2 := r.WithStatus(StatusInReview, later)
	if r2.TimesReviewed != 2 {
		t.Errorf("TimesReviewed = %d, want 2", r2.TimesReviewed)
	}
	if !r.LastStudied.Equal(now) {
		t.Error("WithStatus modified the original record")
	}
}

func TestProgressRecordJSONOmitsLastStudied(t *testing.T) {
	data, err := json.Marshal(NewProgressRecord(1))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"topicId":1,"status":"Pending","timesReviewed":0}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
