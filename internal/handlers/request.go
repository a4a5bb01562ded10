package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/request-board/internal/dto"
	apierrors "github.com/yukikurage/request-board/internal/errors"
	"github.com/yukikurage/request-board/internal/middleware"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/services"
	"github.com/yukikurage/request-board/internal/utils"
)

type RequestHandler struct {
	board *services.Board
}

func NewRequestHandler(board *services.Board) *RequestHandler {
	return &RequestHandler{
		board: board,
	}
}

// requestBody is the shape accepted by create and update.
type requestBody struct {
	ProjectName string               `json:"projectName"`
	Description string               `json:"description"`
	RequestedBy string               `json:"requestedBy"`
	Team        models.Team          `json:"team"`
	Priority    models.Priority      `json:"priority"`
	Status      models.RequestStatus `json:"status"`
	Deadline    string               `json:"deadline"`
	FileName    string               `json:"fileName"`
	Document    string               `json:"document"`
	TaggedUsers []string             `json:"taggedUsers"`
	AssignedTo  *models.Assignee     `json:"assignedTo"`
}

func (b requestBody) validateEnums() string {
	if b.Team != "" && !b.Team.Valid() {
		return "team must be one of Design Team, Dev Team, Marketing Team"
	}
	if b.Priority != "" && !b.Priority.Valid() {
		return "priority must be one of Low, Medium, High"
	}
	if b.Status != "" && !b.Status.Valid() {
		return "status must be one of New, Under Review, In Progress, Completed"
	}
	return ""
}

func (b requestBody) toModel() models.Request {
	return models.Request{
		ProjectName: b.ProjectName,
		Description: b.Description,
		RequestedBy: b.RequestedBy,
		Team:        b.Team,
		Priority:    b.Priority,
		Status:      b.Status,
		Deadline:    b.Deadline,
		FileName:    b.FileName,
		Document:    b.Document,
		TaggedUsers: b.TaggedUsers,
		AssignedTo:  b.AssignedTo,
	}
}

// ListRequests returns the board, filtered, sorted and paginated
func (h *RequestHandler) ListRequests(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	query := services.RequestQuery{
		Search:   c.Query("search"),
		Priority: models.Priority(c.Query("priority")),
		Status:   models.RequestStatus(c.Query("status")),
		SortKey:  c.Query("sort"),
	}
	if team := c.Query("team"); team != "" {
		if t, ok := parseTeam(team); ok {
			query.Team = t
		} else {
			apierrors.BadRequest(c, "Unknown team")
			return
		}
	}

	params := utils.GetPaginationParams(c)
	filtered := services.FilterRequests(h.board.Requests.List(), query)

	c.JSON(http.StatusOK, dto.RequestListResponse{
		Requests: dto.ToRequestDTOs(utils.Paginate(filtered, params), session.Users),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int64(len(filtered)),
		},
	})
}

// GetRequest returns the request loaded by RequireRequest
func (h *RequestHandler) GetRequest(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	req, ok := middleware.GetRequest(c)
	if !ok {
		apierrors.InternalError(c, "Request not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestDTO(req, session.Users))
}

// CreateRequest submits a new request on behalf of the session's user
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	var body requestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if msg := body.validateEnums(); msg != "" {
		apierrors.BadRequest(c, msg)
		return
	}

	req, err := h.board.Requests.Add(body.toModel(), session.Users)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Request submitted!",
		"request": dto.ToRequestDTO(req, session.Users),
	})
}

// UpdateRequest replaces every field of a request (admin edit)
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	current, ok := middleware.GetRequest(c)
	if !ok {
		apierrors.InternalError(c, "Request not found in context")
		return
	}

	var body requestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if msg := body.validateEnums(); msg != "" {
		apierrors.BadRequest(c, msg)
		return
	}

	replacement := body.toModel()
	replacement.ID = current.ID
	replacement.CreatedAt = current.CreatedAt

	req, err := h.board.Requests.Update(replacement)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request updated.",
		"request": dto.ToRequestDTO(req, session.Users),
	})
}

// AdvanceStatus moves a request to its next status
func (h *RequestHandler) AdvanceStatus(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	req, err := h.board.Requests.AdvanceStatus(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project status updated!",
		"request": dto.ToRequestDTO(req, session.Users),
	})
}

// DraftRequests suggests requests extracted from free text
func (h *RequestHandler) DraftRequests(c *gin.Context) {
	type DraftRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.board.DraftRequests(c.Request.Context(), req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drafts": drafts,
	})
}

func parseTeam(value string) (models.Team, bool) {
	if t := models.Team(value); t.Valid() {
		return t, true
	}
	return models.TeamFromSlug(value)
}
