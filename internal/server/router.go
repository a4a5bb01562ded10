package server

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/handlers"
	"github.com/yukikurage/request-board/internal/middleware"
	"github.com/yukikurage/request-board/internal/services"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Board        *services.Board
	SessionStore sessions.Store
	Gatherer     prometheus.Gatherer
	Log          *logrus.Entry
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if deps.Log != nil {
		r.Use(middleware.Logger(deps.Log))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Request Board API is running",
		})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	authHandler := handlers.NewAuthHandler(deps.Board)
	requestHandler := handlers.NewRequestHandler(deps.Board)
	adminHandler := handlers.NewAdminHandler()
	boardHandler := handlers.NewBoardHandler(deps.Board)

	api := r.Group("/api")
	api.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))
	api.Use(middleware.BoardSession(deps.Board))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.GET("/remembered", authHandler.GetRememberedLogin)
		}

		api.GET("/users", authHandler.ListUsers)

		requests := api.Group("/requests")
		{
			requests.GET("", requestHandler.ListRequests)
			requests.POST("", requestHandler.CreateRequest)
			requests.POST("/draft", requestHandler.DraftRequests)
			requests.GET("/:id", middleware.RequireRequest(deps.Board.Requests), requestHandler.GetRequest)
			requests.PUT("/:id", middleware.RequireAdmin(), middleware.RequireRequest(deps.Board.Requests), requestHandler.UpdateRequest)
			requests.POST("/:id/advance", middleware.RequireAdmin(), requestHandler.AdvanceStatus)
		}

		api.GET("/tags", boardHandler.TagReport)

		analytics := api.Group("/analytics")
		{
			analytics.GET("", middleware.RequireAdmin(), boardHandler.Analytics)
			analytics.GET("/teams/:team", boardHandler.TeamBreakdown)
		}

		admin := api.Group("/admin")
		{
			admin.GET("", adminHandler.GetState)
			admin.POST("/elevate", adminHandler.RequestElevation)
			admin.POST("/password", adminHandler.SubmitPassword)
			admin.POST("/revoke", adminHandler.Revoke)
		}
	}

	return r
}
