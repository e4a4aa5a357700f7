package api

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/yourname/savecircle/internal/service"
)

func GetCompletedLessons(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := app.Ledger().CompletedLessons(c.Request.Context())
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to load lessons")
			return
		}
		HandleSuccess(c, app.Logger(), ids, nil)
	}
}

func PostCompleteLesson(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CompleteLessonRequest
		if !bindValid(c, app, &req, service.ValidateCompleteLessonRequest) {
			return
		}
		user, awarded, err := app.Ledger().CompleteLesson(c.Request.Context(), c.Param("id"), req.XP, req.Gems)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to complete lesson")
			return
		}
		HandleSuccess(c, app.Logger(), user, map[string]any{"awarded": awarded})
	}
}

func GetCachedUnit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := app.Ledger().CachedUnit(c.Request.Context(), c.Param("unit"))
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to load unit")
			return
		}
		HandleSuccess(c, app.Logger(), content, nil)
	}
}

func PutCachedUnit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Failed to read body")
			return
		}
		if err := app.Ledger().CacheUnit(c.Request.Context(), c.Param("unit"), json.RawMessage(body)); err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to cache unit")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"cached": c.Param("unit")})
	}
}

func GetHearts(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, err := app.Ledger().Hearts(c.Request.Context())
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to load hearts")
			return
		}
		HandleSuccess(c, app.Logger(), h, nil)
	}
}

func PostLoseHeart(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, err := app.Ledger().LoseHeart(c.Request.Context())
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to update hearts")
			return
		}
		HandleSuccess(c, app.Logger(), h, nil)
	}
}

func PostRefillHearts(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RefillHeartsRequest
		if !bindValid(c, app, &req, service.ValidateRefillHeartsRequest) {
			return
		}
		h, err := app.Ledger().RefillHearts(c.Request.Context(), req.GemCost)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to refill hearts")
			return
		}
		HandleSuccess(c, app.Logger(), h, nil)
	}
}
