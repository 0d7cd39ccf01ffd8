package dto

import (
	"time"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

// SupportMessageRequest is the payload for submitting a support message.
type SupportMessageRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// SupportReplyRequest carries an admin reply to a support message.
type SupportReplyRequest struct {
	Reply string `json:"reply" validate:"required,min=3,max=2000"`
}

// SupportMessageResponse is the serialized representation of a support
// message and its reply state.
type SupportMessageResponse struct {
	ID          uint       `json:"id"`
	ReferenceID string     `json:"reference_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Subject     string     `json:"subject"`
	Message     string     `json:"message"`
	AdminReply  *string    `json:"admin_reply,omitempty"`
	RepliedAt   *time.Time `json:"replied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SupportMessageListResponse wraps a page of the support inbox.
type SupportMessageListResponse struct {
	Items      []SupportMessageResponse `json:"items"`
	Pagination PaginationMeta           `json:"pagination"`
}

// NewSupportMessageResponse converts a support message model into a DTO.
func NewSupportMessageResponse(model models.SupportMessage) SupportMessageResponse {
	return SupportMessageResponse{
		ID:          model.ID,
		ReferenceID: model.ReferenceID,
		Name:        model.Name,
		Email:       model.Email,
		Subject:     model.Subject,
		Message:     model.Message,
		AdminReply:  model.AdminReply,
		RepliedAt:   model.RepliedAt,
		CreatedAt:   model.CreatedAt,
	}
}

// NewSupportMessageResponseSlice converts a slice of support messages.
func NewSupportMessageResponseSlice(messages []models.SupportMessage) []SupportMessageResponse {
	responses := make([]SupportMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, NewSupportMessageResponse(message))
	}
	return responses
}
