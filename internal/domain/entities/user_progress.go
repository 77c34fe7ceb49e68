package entities

import "time"

const (
	// DefaultLearnerID is used when a request does not name a learner.
	DefaultLearnerID int64 = 1
	// DefaultMasteryThreshold is the correct-answer count at which a fact counts as mastered.
	DefaultMasteryThreshold = 3
)

// ProgressRecord holds a learner's history with one fact.
type ProgressRecord struct {
	LearnerID    int64      `json:"learner_id" db:"user_id"`
	Multiplicand int        `json:"multiplicand" db:"multiplicand"`
	Multiplier   int        `json:"multiplier" db:"multiplier"`
	Attempts     int        `json:"attempts" db:"attempts"`
	Correct      int        `json:"correct" db:"correct"`
	LastAttempt  *time.Time `json:"last_attempt" db:"last_attempt"` // nullable
}

// Key returns the fact the record belongs to.
func (p *ProgressRecord) Key() FactKey {
	return FactKey{Multiplicand: p.Multiplicand, Multiplier: p.Multiplier}
}

// IsMastered reports whether the record reaches the given threshold.
func (p *ProgressRecord) IsMastered(threshold int) bool {
	return p.Correct >= threshold
}

// RecordAttempt applies one attempt to the record.
func (p *ProgressRecord) RecordAttempt(wasCorrect bool, at time.Time) {
	p.Attempts++
	if wasCorrect {
		p.Correct++
	}
	p.LastAttempt = &at
}

// ProgressSummary is the aggregate view of a learner's records.
type ProgressSummary struct {
	TotalAttempts int `json:"total_attempts"`
	TotalCorrect  int `json:"total_correct"`
	MasteredCount int `json:"mastered_count"`
}

// Summarize folds records into a summary using the given mastery threshold.
func Summarize(records []*ProgressRecord, threshold int) ProgressSummary {
	var s ProgressSummary
	for _, r := range records {
		if r == nil {
			continue
		}
		s.TotalAttempts += r.Attempts
		s.TotalCorrect += r.Correct
		if r.IsMastered(threshold) {
			s.MasteredCount++
		}
	}
	return s
}

// ProgressIndex is a History backed by a learner's records.
type ProgressIndex map[FactKey]int

// NewProgressIndex indexes correct counts by fact.
func NewProgressIndex(records []*ProgressRecord) ProgressIndex {
	idx := make(ProgressIndex, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		idx[r.Key()] = r.Correct
	}
	return idx
}

// CorrectCount implements History.
func (idx ProgressIndex) CorrectCount(key FactKey) (int, bool) {
	c, ok := idx[key]
	return c, ok
}
