package dto

import (
	"time"

	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/utils"
)

// TaggedUserDTO is a tagged user id with its display name ("Unknown" when the
// id does not resolve)
type TaggedUserDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RequestDTO represents a request in API responses
type RequestDTO struct {
	ID          string               `json:"id"`
	ProjectName string               `json:"projectName"`
	Description string               `json:"description"`
	RequestedBy string               `json:"requestedBy"`
	Team        models.Team          `json:"team"`
	Priority    models.Priority      `json:"priority"`
	Status      models.RequestStatus `json:"status"`
	Progress    int                  `json:"progress"`
	Deadline    string               `json:"deadline,omitempty"`
	FileName    string               `json:"fileName,omitempty"`
	HasDocument bool                 `json:"hasDocument"`
	TaggedUsers []TaggedUserDTO      `json:"taggedUsers"`
	AssignedTo  *models.Assignee     `json:"assignedTo,omitempty"`
	CreatedAt   *time.Time           `json:"createdAt,omitempty"`
}

// RequestListResponse represents a filtered, paginated board
type RequestListResponse struct {
	Requests   []RequestDTO             `json:"requests"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// NameResolver resolves a user id to a display name
type NameResolver interface {
	ResolveName(id string) string
}

// ToRequestDTO converts a Request model to RequestDTO
func ToRequestDTO(req models.Request, names NameResolver) RequestDTO {
	dto := RequestDTO{
		ID:          req.ID,
		ProjectName: req.ProjectName,
		Description: req.Description,
		RequestedBy: req.RequestedBy,
		Team:        req.Team,
		Priority:    req.Priority,
		Status:      req.Status,
		Progress:    req.Progress(),
		Deadline:    req.Deadline,
		FileName:    req.FileName,
		HasDocument: req.Document != "",
		AssignedTo:  req.AssignedTo,
		CreatedAt:   req.CreatedAt,
		TaggedUsers: make([]TaggedUserDTO, len(req.TaggedUsers)),
	}

	for i, id := range req.TaggedUsers {
		dto.TaggedUsers[i] = TaggedUserDTO{ID: id, Name: names.ResolveName(id)}
	}

	return dto
}

// ToRequestDTOs converts a slice of requests
func ToRequestDTOs(requests []models.Request, names NameResolver) []RequestDTO {
	out := make([]RequestDTO, len(requests))
	for i, r := range requests {
		out[i] = ToRequestDTO(r, names)
	}
	return out
}
