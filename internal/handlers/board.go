package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/request-board/internal/errors"
	"github.com/yukikurage/request-board/internal/services"
)

// BoardHandler serves the read-only board views.
type BoardHandler struct {
	board *services.Board
}

func NewBoardHandler(board *services.Board) *BoardHandler {
	return &BoardHandler{
		board: board,
	}
}

// TagReport lists every (project, tagged user) pair
func (h *BoardHandler) TagReport(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": services.TagReport(h.board.Requests.List(), session.Users),
	})
}

// Analytics returns the admin summary
func (h *BoardHandler) Analytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Summary())
}

// TeamBreakdown returns one team's requests and status counts
func (h *BoardHandler) TeamBreakdown(c *gin.Context) {
	team, ok := parseTeam(c.Param("team"))
	if !ok {
		apierrors.NotFound(c, "Team not found")
		return
	}

	c.JSON(http.StatusOK, services.TeamBreakdown(h.board.Requests.List(), team))
}
