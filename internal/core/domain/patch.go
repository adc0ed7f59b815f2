package domain

import "strings"

// MemoPatch carries a partial update. Nil fields are left untouched.
type MemoPatch struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *[]string
	Priority *Priority
	Status   *Status
}

// Apply merges the patch into the memo in place.
func (p MemoPatch) Apply(m *Memo) {
	if p.Title != nil {
		m.Title = strings.TrimSpace(*p.Title)
	}

	if p.Content != nil {
		m.Content = strings.TrimSpace(*p.Content)
	}

	if p.Category != nil {
		m.Category = strings.TrimSpace(*p.Category)
	}

	if p.Tags != nil {
		m.Tags = *p.Tags
	}

	if p.Priority != nil {
		m.Priority = *p.Priority
	}

	if p.Status != nil {
		m.Status = *p.Status
	}
}

func (p MemoPatch) IsZero() bool {
	return p.Title == nil &&
		p.Content == nil &&
		p.Category == nil &&
		p.Tags == nil &&
		p.Priority == nil &&
		p.Status == nil
}
