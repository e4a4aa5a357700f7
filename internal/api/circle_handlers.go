package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/savecircle/internal/ledger"
	"github.com/yourname/savecircle/internal/service"
)

func GetCircles(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		circles, err := app.Ledger().GetCircles(c.Request.Context())
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to load circles")
			return
		}
		HandleSuccess(c, app.Logger(), circles, map[string]any{"count": len(circles)})
	}
}

func GetCircle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		circle, err := app.Ledger().GetCircle(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to load circle")
			return
		}
		HandleSuccess(c, app.Logger(), circle, nil)
	}
}

func PostCircle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateCircleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCreateCircleRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Circle validation failed")
			return
		}
		circle, err := service.CreateCircle(c.Request.Context(), app.Ledger(), &req)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to create circle")
			return
		}
		HandleSuccess(c, app.Logger(), circle, nil)
	}
}

func PatchCircle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch ledger.CirclePatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		circle, err := app.Ledger().UpdateCircle(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to update circle")
			return
		}
		HandleSuccess(c, app.Logger(), circle, nil)
	}
}

func DeleteCircle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		swept, err := app.Ledger().DeleteCircle(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to delete circle")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"sweptToVault": swept})
	}
}

func PostJoinCircle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		circle, err := app.Ledger().JoinCircle(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to join circle")
			return
		}
		HandleSuccess(c, app.Logger(), circle, nil)
	}
}

func PostDeposit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AmountRequest
		if !bindValid(c, app, &req, service.ValidateAmountRequest) {
			return
		}
		circle, err := app.Ledger().DepositToCircle(c.Request.Context(), c.Param("id"), req.Amount)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to deposit")
			return
		}
		HandleSuccess(c, app.Logger(), circle, nil)
	}
}

func PostWithdraw(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AmountRequest
		if !bindValid(c, app, &req, service.ValidateAmountRequest) {
			return
		}
		circle, err := app.Ledger().WithdrawFromCircle(c.Request.Context(), c.Param("id"), req.Amount)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to withdraw")
			return
		}
		HandleSuccess(c, app.Logger(), circle, nil)
	}
}

func PostInvest(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.InvestRequest
		if !bindValid(c, app, &req, service.ValidateInvestRequest) {
			return
		}
		circle, err := app.Ledger().InvestFunds(c.Request.Context(), c.Param("id"), req.Amount, req.PlanID)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to invest")
			return
		}
		HandleSuccess(c, app.Logger(), circle, nil)
	}
}

func PostWithdrawInvestment(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.WithdrawInvestmentRequest
		if !bindValid(c, app, &req, service.ValidateWithdrawInvestmentRequest) {
			return
		}
		circle, err := app.Ledger().WithdrawInvestment(c.Request.Context(), c.Param("id"), req.Amount, req.Full)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to withdraw investment")
			return
		}
		HandleSuccess(c, app.Logger(), circle, nil)
	}
}

func PostMessage(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.MessageRequest
		if !bindValid(c, app, &req, service.ValidateMessageRequest) {
			return
		}
		msg, err := app.Ledger().AddMessage(c.Request.Context(), c.Param("id"), req.Text)
		if err != nil {
			HandleLedgerError(c, app.Logger(), err, "Failed to send message")
			return
		}
		HandleSuccess(c, app.Logger(), msg, nil)
	}
}

// bindValid binds the JSON body into req and runs check on it, writing a 400
// and returning false on failure.
func bindValid[T any](c *gin.Context, app App, req *T, check func(*T) error) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleError(c, app.Logger(), err, 400, "Invalid JSON")
		return false
	}
	if err := check(req); err != nil {
		HandleError(c, app.Logger(), err, 400, "Validation failed")
		return false
	}
	return true
}
