package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every arena route under /api/v1
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.GET("/opponents", h.ListOpponents)

	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.EndSession)
		sessions.POST("/:id/opponent", h.ChooseOpponent)
		sessions.POST("/:id/start", h.StartBattle)
		sessions.POST("/:id/progress", h.ProgressBattle)
		sessions.POST("/:id/reset", h.ResetBattle)
		sessions.PUT("/:id/auto-progress", h.SetAutoProgress)
		sessions.PUT("/:id/speed", h.SetSpeed)
		sessions.POST("/:id/rewards", h.DeliverRewards)
		sessions.GET("/:id/events", h.WatchBattle)
	}

	return router
}
