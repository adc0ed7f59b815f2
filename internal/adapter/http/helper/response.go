package helper

import (
	"errors"
	"net/http"
	"strings"

	. "memoapp/internal/adapter/http/validation"
	"memoapp/internal/core/domain"
	"memoapp/internal/core/model/response"

	"github.com/gin-gonic/gin"
)

// SendError writes the flat error envelope every failure uses.
func SendError(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, response.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := FormatValidationErrors(err)

	messages := make([]string, 0, len(validationErrors))
	for _, ve := range validationErrors {
		messages = append(messages, ve.Message)
	}

	SendError(c, http.StatusBadRequest, "validation_error", strings.Join(messages, "; "))
}

func SendBadRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, "bad_request", message)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, "unauthorized", message)
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, "not_found", message)
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, "internal_error", message)
}

// SendDomainError maps the service error taxonomy onto wire statuses.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, "Memo not found")
	case errors.Is(err, domain.ErrMemoNotArchived):
		SendError(c, http.StatusBadRequest, "memo_not_archived", "Memo must be archived before permanent deletion")
	case errors.Is(err, domain.ErrUnauthorized):
		SendUnauthorizedError(c, "Invalid credentials")
	case errors.Is(err, domain.ErrEmailTaken):
		SendError(c, http.StatusConflict, "email_taken", "Email is already registered")
	case errors.Is(err, domain.ErrValidation):
		SendBadRequestError(c, err.Error())
	default:
		SendInternalError(c, "Internal server error")
	}
}
