package domain

import (
	"strings"
	"time"
)

// MemoFilter is a partial predicate over the memo collection. Zero-valued
// fields are not applied. The same predicate runs server-side in SQL and
// client-side as the gateway's correction pass.
type MemoFilter struct {
	Category     string
	Status       Status
	Priority     Priority
	Tag          string
	Search       string
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
}

// IsZero reports whether no predicate field is set.
func (f MemoFilter) IsZero() bool {
	return f.Category == "" &&
		f.Status == "" &&
		f.Priority == "" &&
		f.Tag == "" &&
		f.Search == "" &&
		f.DeadlineFrom == nil &&
		f.DeadlineTo == nil
}

// Matches evaluates the predicate against a single memo.
func (f MemoFilter) Matches(m Memo) bool {
	if f.Category != "" && m.Category != f.Category {
		return false
	}

	if f.Status != "" && m.Status != f.Status {
		return false
	}

	if f.Priority != "" && m.Priority != f.Priority {
		return false
	}

	if f.Tag != "" && !m.HasTag(f.Tag) {
		return false
	}

	if f.Search != "" && !f.matchesSearch(m) {
		return false
	}

	if f.DeadlineFrom != nil {
		if m.Deadline == nil || m.Deadline.Before(*f.DeadlineFrom) {
			return false
		}
	}

	if f.DeadlineTo != nil {
		if m.Deadline == nil || m.Deadline.After(*f.DeadlineTo) {
			return false
		}
	}

	return true
}

func (f MemoFilter) matchesSearch(m Memo) bool {
	term := strings.ToLower(f.Search)

	if strings.Contains(strings.ToLower(m.Title), term) {
		return true
	}

	if strings.Contains(strings.ToLower(m.Content), term) {
		return true
	}

	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}

	return false
}
