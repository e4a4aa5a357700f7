package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/savecircle/internal/ledger"
	"github.com/yourname/savecircle/internal/service"
)

func GetUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := app.Ledger().GetUser(c.Request.Context())
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to load user")
			return
		}
		HandleSuccess(c, app.Logger(), user, nil)
	}
}

func PatchUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch ledger.UserPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		user, err := app.Ledger().UpdateUser(c.Request.Context(), patch)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to update user")
			return
		}
		HandleSuccess(c, app.Logger(), user, nil)
	}
}

// PostSavings is called by the payment screen after a successful deposit.
func PostSavings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AmountRequest
		if !bindValid(c, app, &req, service.ValidateAmountRequest) {
			return
		}
		user, err := app.Ledger().AddSavings(c.Request.Context(), req.Amount)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to add savings")
			return
		}
		HandleSuccess(c, app.Logger(), user, nil)
	}
}

func PostReset(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Ledger().ResetAll(c.Request.Context()); err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to reset data")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"reset": true})
	}
}
