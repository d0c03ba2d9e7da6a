// Package rest exposes the arena as a JSON API for the browser dashboard
package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// HandlerConfig holds dependencies for the REST handler
type HandlerConfig struct {
	ArenaService arena.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.ArenaService == nil {
		return errors.InvalidArgument("arena service is required")
	}
	return nil
}

// Handler serves the arena REST routes
type Handler struct {
	arenaService arena.Service
}

// NewHandler creates a new REST handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{arenaService: cfg.ArenaService}, nil
}

// CreateSessionPayload is the body of POST /sessions
type CreateSessionPayload struct {
	PlayerID   string `json:"player_id"`
	OpponentID string `json:"opponent_id"`
	Speed      string `json:"speed"`
}

// ChooseOpponentPayload is the body of POST /sessions/:id/opponent
type ChooseOpponentPayload struct {
	OpponentID string `json:"opponent_id"`
}

// AutoProgressPayload is the body of PUT /sessions/:id/auto-progress
type AutoProgressPayload struct {
	Enabled bool `json:"enabled"`
}

// SpeedPayload is the body of PUT /sessions/:id/speed
type SpeedPayload struct {
	Speed string `json:"speed"`
}

// ListOpponents handles GET /opponents
func (h *Handler) ListOpponents(c *gin.Context) {
	out, err := h.arenaService.ListOpponents(c.Request.Context(), &arena.ListOpponentsInput{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opponents": out.Opponents})
}

// CreateSession handles POST /sessions
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body"))
		return
	}

	out, err := h.arenaService.CreateSession(c.Request.Context(), &arena.CreateSessionInput{
		PlayerID:   req.PlayerID,
		OpponentID: req.OpponentID,
		Speed:      req.Speed,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": out.Session})
}

// GetSession handles GET /sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	out, err := h.arenaService.GetSession(c.Request.Context(), &arena.GetSessionInput{SessionID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session, "balance": out.Balance})
}

// EndSession handles DELETE /sessions/:id
func (h *Handler) EndSession(c *gin.Context) {
	if _, err := h.arenaService.EndSession(c.Request.Context(), &arena.EndSessionInput{SessionID: c.Param("id")}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChooseOpponent handles POST /sessions/:id/opponent
func (h *Handler) ChooseOpponent(c *gin.Context) {
	var req ChooseOpponentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body"))
		return
	}

	out, err := h.arenaService.ChooseOpponent(c.Request.Context(), &arena.ChooseOpponentInput{
		SessionID:  c.Param("id"),
		OpponentID: req.OpponentID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session})
}

// StartBattle handles POST /sessions/:id/start
func (h *Handler) StartBattle(c *gin.Context) {
	out, err := h.arenaService.StartBattle(c.Request.Context(), &arena.StartBattleInput{SessionID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session})
}

// ProgressBattle handles POST /sessions/:id/progress
func (h *Handler) ProgressBattle(c *gin.Context) {
	out, err := h.arenaService.ProgressBattle(c.Request.Context(), &arena.ProgressBattleInput{SessionID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session, "progressed": out.Progressed})
}

// ResetBattle handles POST /sessions/:id/reset
func (h *Handler) ResetBattle(c *gin.Context) {
	out, err := h.arenaService.ResetBattle(c.Request.Context(), &arena.ResetBattleInput{SessionID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session})
}

// SetAutoProgress handles PUT /sessions/:id/auto-progress
func (h *Handler) SetAutoProgress(c *gin.Context) {
	var req AutoProgressPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body"))
		return
	}

	out, err := h.arenaService.SetAutoProgress(c.Request.Context(), &arena.SetAutoProgressInput{
		SessionID: c.Param("id"),
		Enabled:   req.Enabled,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session})
}

// SetSpeed handles PUT /sessions/:id/speed
func (h *Handler) SetSpeed(c *gin.Context) {
	var req SpeedPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body"))
		return
	}

	out, err := h.arenaService.SetSpeed(c.Request.Context(), &arena.SetSpeedInput{
		SessionID: c.Param("id"),
		Speed:     req.Speed,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session})
}

// DeliverRewards handles POST /sessions/:id/rewards
func (h *Handler) DeliverRewards(c *gin.Context) {
	out, err := h.arenaService.DeliverRewards(c.Request.Context(), &arena.DeliverRewardsInput{SessionID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session, "balance": out.Balance})
}

// WatchBattle handles GET /sessions/:id/events as a server-sent event stream.
// Each log entry is an "entry" event, the result is a "result" event.
func (h *Handler) WatchBattle(c *gin.Context) {
	out, err := h.arenaService.Watch(c.Request.Context(), &arena.WatchInput{SessionID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-out.Updates:
			if !ok {
				return
			}
			if update.Entry != nil {
				c.SSEvent("entry", update.Entry)
			}
			if update.State != "" {
				c.SSEvent("result", gin.H{"state": update.State})
			}
			c.Writer.Flush()
		}
	}
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)

	if code == errors.CodeInternal {
		slog.Error("Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err)
	}

	body := gin.H{"code": code, "message": errors.GetMessage(err)}
	if fields, ok := errors.GetMeta(err)["validation_errors"]; ok {
		body["fields"] = fields
	}
	c.AbortWithStatusJSON(code.HTTPStatus(), gin.H{"error": body})
}

// requestLogger logs each request with slog once it completes
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
