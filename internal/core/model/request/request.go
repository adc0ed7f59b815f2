package request

type SignUpRequest struct {
	Name     string `json:"name,omitempty" validate:"max=100"`
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateMemoRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"max=50"`
	Tags     []string `json:"tags"`
	Priority string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Deadline string   `json:"deadline,omitempty"`
}

type UpdateMemoRequest struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  *string   `json:"content,omitempty" validate:"omitempty,min=1"`
	Category *string   `json:"category,omitempty" validate:"omitempty,max=50"`
	Tags     *[]string `json:"tags,omitempty"`
	Priority *string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Status   *string   `json:"status,omitempty" validate:"omitempty,oneof=active archived"`
}

// SearchParams mirrors the query string accepted by the list and search
// endpoints. The canonical default limit is 30.
type SearchParams struct {
	Category     string `form:"category"`
	Status       string `form:"status" validate:"omitempty,oneof=active archived"`
	Priority     string `form:"priority" validate:"omitempty,oneof=low medium high"`
	Tag          string `form:"tags"`
	Search       string `form:"search"`
	DeadlineFrom string `form:"deadline_from"`
	DeadlineTo   string `form:"deadline_to"`
	Page         int    `form:"page" validate:"omitempty,min=1"`
	Limit        int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

const DefaultLimit = 30
