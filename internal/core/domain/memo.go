package domain

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func ParsePriority(s string) (Priority, error) {
	switch s {
	case "", "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority: %s", s)
	}
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "", "active":
		return StatusActive, nil
	case "archived":
		return StatusArchived, nil
	default:
		return "", fmt.Errorf("invalid status: %s", s)
	}
}

type Memo struct {
	ID          int
	Title       string `validate:"required,max=200"`
	Content     string `validate:"required"`
	Category    string `validate:"max=50"`
	Tags        []string
	Priority    Priority `validate:"oneof=low medium high"`
	Status      Status   `validate:"oneof=active archived"`
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	UserID      int
}

// Normalize trims text fields and fills zero-valued enums with defaults.
func (m *Memo) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Content = strings.TrimSpace(m.Content)
	m.Category = strings.TrimSpace(m.Category)

	if m.Priority == "" {
		m.Priority = PriorityMedium
	}

	if m.Status == "" {
		m.Status = StatusActive
	}

	if m.Tags == nil {
		m.Tags = []string{}
	}
}

func (m *Memo) IsArchived() bool {
	return m.Status == StatusArchived
}

func (m *Memo) BelongsToUser(userID int) bool {
	return m.UserID == userID
}

func (m *Memo) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}

	return false
}

func (m *Memo) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":         m.ID,
		"title":      m.Title,
		"content":    m.Content,
		"category":   m.Category,
		"tags":       m.Tags,
		"priority":   m.Priority,
		"status":     m.Status,
		"deadline":   m.Deadline,
		"created_at": m.CreatedAt,
		"updated_at": m.UpdatedAt,
		"user_id":    m.UserID,
	}
}
