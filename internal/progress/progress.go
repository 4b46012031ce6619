// Package progress owns the durable per-mission completion ledger. It is
// independent of the profile repository; the two are cross-referenced only by
// mission id.
package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cybercop-labs/cybercop/internal/storage"
)

// Record is the durable completion state for one mission. Step membership is
// what matters in CompletedChallenges; order is incidental.
type Record struct {
	MissionID           int        `json:"missionId"`
	CompletedChallenges []int      `json:"completedChallenges"`
	TotalScore          int        `json:"totalScore"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
}

// HasStep reports whether a step id is in the record's completed set.
func (r Record) HasStep(stepID int) bool {
	for _, id := range r.CompletedChallenges {
		if id == stepID {
			return true
		}
	}
	return false
}

// BlobStore is the persistence surface the progress store needs, plus the
// completions ledger it feeds.
type BlobStore interface {
	GetBlob(key string) ([]byte, error)
	PutBlob(key string, value []byte) error
	LogCompletion(missionID, stepID, points, shards int) (int64, error)
}

// Store is the mission-progress repository. Records are kept in memory and
// the whole collection is persisted after every mutation, matching the
// single-writer model.
type Store struct {
	blobs   BlobStore
	logger  *log.Logger
	records []Record
}

// NewStore loads progress from the blob store. Absent or malformed state is
// non-fatal: the store warns and starts empty. It must never fail startup.
func NewStore(blobs BlobStore, logger *log.Logger) *Store {
	s := &Store{blobs: blobs, logger: logger}

	data, err := blobs.GetBlob(storage.KeyMissionProgress)
	if err != nil {
		s.logger.Warn("could not load mission progress, starting empty", "error", err)
		return s
	}
	if data == nil {
		return s
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("mission progress blob is malformed, starting empty", "error", err)
		return s
	}
	s.records = records
	return s
}

// Get returns the record for a mission, or nil when the mission has never
// had a step completed.
func (s *Store) Get(missionID int) *Record {
	for i := range s.records {
		if s.records[i].MissionID == missionID {
			r := s.records[i]
			r.CompletedChallenges = append([]int(nil), r.CompletedChallenges...)
			return &r
		}
	}
	return nil
}

// All returns a copy of every record.
func (s *Store) All() []Record {
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		r.CompletedChallenges = append([]int(nil), r.CompletedChallenges...)
		out[i] = r
	}
	return out
}

// RecordStepCompletion marks a step complete and accumulates its points.
// Idempotent: a step already in the completed set reports wasNew=false and
// leaves the score untouched. The reward shard amount is recorded in the
// completions ledger for reporting; granting the shards themselves is the
// caller's concern.
func (s *Store) RecordStepCompletion(missionID, stepID, points, shards int) (Record, bool, error) {
	idx := -1
	for i := range s.records {
		if s.records[i].MissionID == missionID {
			idx = i
			break
		}
	}

	if idx >= 0 && s.records[idx].HasStep(stepID) {
		return *s.Get(missionID), false, nil
	}

	if idx < 0 {
		s.records = append(s.records, Record{MissionID: missionID})
		idx = len(s.records) - 1
	}
	r := &s.records[idx]
	r.CompletedChallenges = append(r.CompletedChallenges, stepID)
	r.TotalScore += points

	if err := s.persist(); err != nil {
		return Record{}, false, err
	}

	// Ledger write is best-effort reporting, not part of the progress
	// invariants.
	if _, err := s.blobs.LogCompletion(missionID, stepID, points, shards); err != nil {
		s.logger.Warn("could not log completion", "mission", missionID, "step", stepID, "error", err)
	}

	return *s.Get(missionID), true, nil
}

// MarkCompleted stamps the record's completion time. No-op when the mission
// has no record or is already stamped.
func (s *Store) MarkCompleted(missionID int, at time.Time) error {
	for i := range s.records {
		if s.records[i].MissionID == missionID {
			if s.records[i].CompletedAt != nil {
				return nil
			}
			s.records[i].CompletedAt = &at
			return s.persist()
		}
	}
	return nil
}

// Reset deletes a mission's record entirely, returning it to "not started".
func (s *Store) Reset(missionID int) error {
	for i := range s.records {
		if s.records[i].MissionID == missionID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// TotalScore sums the accumulated score across all missions.
func (s *Store) TotalScore() int {
	total := 0
	for _, r := range s.records {
		total += r.TotalScore
	}
	return total
}

func (s *Store) persist() error {
	records := s.records
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("progress: cannot encode progress: %w", err)
	}
	if err := s.blobs.PutBlob(storage.KeyMissionProgress, data); err != nil {
		return fmt.Errorf("progress: cannot persist progress: %w", err)
	}
	return nil
}
