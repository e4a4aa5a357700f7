package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 403:
		resp = response.Forbidden(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 409:
		resp = response.Conflict(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleLedgerError picks the status from the ledger error kind.
func HandleLedgerError(c *gin.Context, logger internal.Logger, err error, msg string) {
	HandleError(c, logger, err, statusFor(err), msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, internal.ErrInvalidAmount), errors.Is(err, internal.ErrInvalidInput):
		return 400
	case errors.Is(err, internal.ErrReservedCircle):
		return 403
	case errors.Is(err, internal.ErrNotFound):
		return 404
	case errors.Is(err, internal.ErrInsufficientBalance), errors.Is(err, internal.ErrDuplicateCircle):
		return 409
	default:
		return 500
	}
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}
