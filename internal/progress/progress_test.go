package progress

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cybercop-labs/cybercop/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Store) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewStore(db, log.New(io.Discard)), db
}

func TestRecordStepCompletion(t *testing.T) {
	s, _ := newTestStore(t)

	rec, wasNew, err := s.RecordStepCompletion(1, 1, 75, 25)
	if err != nil {
		t.Fatalf("RecordStepCompletion() failed: %v", err)
	}
	if !wasNew {
		t.Error("First completion should report wasNew")
	}
	if rec.TotalScore != 75 {
		t.Errorf("TotalScore = %d, want 75", rec.TotalScore)
	}
	if !rec.HasStep(1) {
		t.Error("Step 1 not in completed set")
	}

	rec, wasNew, err = s.RecordStepCompletion(1, 2, 75, 25)
	if err != nil {
		t.Fatal(err)
	}
	if !wasNew || rec.TotalScore != 150 {
		t.Errorf("Second step: wasNew=%v score=%d, want true/150", wasNew, rec.TotalScore)
	}
}

func TestRecordStepCompletionIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	if _, _, err := s.RecordStepCompletion(1, 1, 75, 25); err != nil {
		t.Fatal(err)
	}
	rec, wasNew, err := s.RecordStepCompletion(1, 1, 75, 25)
	if err != nil {
		t.Fatal(err)
	}
	if wasNew {
		t.Error("Repeat completion must not report wasNew")
	}
	if rec.TotalScore != 75 {
		t.Errorf("Repeat completion double-counted: score %d", rec.TotalScore)
	}
	if len(rec.CompletedChallenges) != 1 {
		t.Errorf("Completed set grew on repeat: %v", rec.CompletedChallenges)
	}
}

func TestGetAbsentMission(t *testing.T) {
	s, _ := newTestStore(t)
	if s.Get(42) != nil {
		t.Error("Expected nil for mission without progress")
	}
}

func TestTotalScoreAcrossMissions(t *testing.T) {
	s, _ := newTestStore(t)

	s.RecordStepCompletion(1, 1, 75, 25)
	s.RecordStepCompletion(1, 2, 75, 25)
	s.RecordStepCompletion(2, 3, 50, 25)

	if got := s.TotalScore(); got != 200 {
		t.Errorf("TotalScore() = %d, want 200", got)
	}
}

func TestReset(t *testing.T) {
	s, _ := newTestStore(t)

	s.RecordStepCompletion(1, 1, 75, 25)
	s.RecordStepCompletion(2, 3, 50, 25)

	if err := s.Reset(1); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if s.Get(1) != nil {
		t.Error("Record survived reset")
	}
	if s.Get(2) == nil {
		t.Error("Reset removed the wrong mission")
	}
	if got := s.TotalScore(); got != 50 {
		t.Errorf("TotalScore() after reset = %d, want 50", got)
	}

	// Resetting an absent mission is a no-op
	if err := s.Reset(99); err != nil {
		t.Errorf("Reset() of absent mission failed: %v", err)
	}
}

func TestMarkCompleted(t *testing.T) {
	s, _ := newTestStore(t)

	s.RecordStepCompletion(1, 1, 75, 25)

	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	if err := s.MarkCompleted(1, at); err != nil {
		t.Fatal(err)
	}
	rec := s.Get(1)
	if rec.CompletedAt == nil || !rec.CompletedAt.Equal(at) {
		t.Errorf("CompletedAt = %v, want %v", rec.CompletedAt, at)
	}

	// Second stamp keeps the first timestamp
	later := at.Add(time.Hour)
	if err := s.MarkCompleted(1, later); err != nil {
		t.Fatal(err)
	}
	if !s.Get(1).CompletedAt.Equal(at) {
		t.Error("CompletedAt overwritten by later stamp")
	}
}

func TestProgressSurvivesReload(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	logger := log.New(io.Discard)
	s := NewStore(db, logger)
	s.RecordStepCompletion(1, 1, 75, 25)
	s.RecordStepCompletion(1, 2, 75, 25)

	reloaded := NewStore(db, logger)
	rec := reloaded.Get(1)
	if rec == nil {
		t.Fatal("Progress lost across reload")
	}
	if rec.TotalScore != 150 || len(rec.CompletedChallenges) != 2 {
		t.Errorf("Reloaded record wrong: %+v", rec)
	}
}

func TestMalformedBlobStartsEmpty(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.PutBlob(storage.KeyMissionProgress, []byte("not json at all")); err != nil {
		t.Fatal(err)
	}

	s := NewStore(db, log.New(io.Discard))
	if len(s.All()) != 0 {
		t.Error("Expected empty progress after malformed blob")
	}
	if s.TotalScore() != 0 {
		t.Error("Expected zero score after malformed blob")
	}
}

func TestCompletionLedgerFed(t *testing.T) {
	s, db := newTestStore(t)

	s.RecordStepCompletion(1, 1, 75, 25)
	s.RecordStepCompletion(1, 1, 75, 25) // repeat must not re-log

	entries, err := db.RecentCompletions(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("Ledger has %d entries, want 1", len(entries))
	}
	if entries[0].Points != 75 || entries[0].Shards != 25 {
		t.Errorf("Ledger entry wrong: %+v", entries[0])
	}
}
