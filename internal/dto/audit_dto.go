package dto

import (
	"time"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

// AuditLogListRequest carries audit trail query parameters.
type AuditLogListRequest struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	ActorID  *uint  `query:"actor_id"`
	Action   string `query:"action"`
	EntityID *uint  `query:"entity_id"`
}

// AuditLogResponse is the serialized representation of one trail entry.
type AuditLogResponse struct {
	ID        uint           `json:"id"`
	ActorID   uint           `json:"actor_id"`
	Action    string         `json:"action"`
	Details   string         `json:"details"`
	EntityID  *uint          `json:"entity_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditLogListResponse wraps a page of the audit trail.
type AuditLogListResponse struct {
	Items      []AuditLogResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewAuditLogResponse converts an audit log model into a DTO.
func NewAuditLogResponse(model models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        model.ID,
		ActorID:   model.ActorID,
		Action:    string(model.Action),
		Details:   model.Details,
		EntityID:  model.EntityID,
		Metadata:  model.Metadata,
		IPAddress: model.IPAddress,
		CreatedAt: model.CreatedAt,
	}
}

// NewAuditLogResponseSlice converts a slice of audit log models.
func NewAuditLogResponseSlice(entries []models.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewAuditLogResponse(entry))
	}
	return responses
}
