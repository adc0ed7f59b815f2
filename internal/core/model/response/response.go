package response

import (
	"time"

	"memoapp/internal/core/domain"
)

type MemoResponse struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	Priority    domain.Priority `json:"priority"`
	Status      domain.Status   `json:"status"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	UserID      int             `json:"user_id"`
}

func NewMemoResponse(m domain.Memo) MemoResponse {
	tags := m.Tags

	if tags == nil {
		tags = []string{}
	}

	return MemoResponse{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		Category:    m.Category,
		Tags:        tags,
		Priority:    m.Priority,
		Status:      m.Status,
		Deadline:    m.Deadline,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CompletedAt: m.CompletedAt,
		UserID:      m.UserID,
	}
}

type MemoListResponse struct {
	Memos      []MemoResponse `json:"memos"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type AuthData struct {
	User         domain.PublicUser `json:"user"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	ExpiresIn    int               `json:"expires_in"`
}

type AuthResponse struct {
	Data AuthData `json:"data"`
}

type ProfileResponse struct {
	Data domain.PublicUser `json:"data"`
}

// ErrorResponse is the fixed wire shape for every failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
