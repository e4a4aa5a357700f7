package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/savecircle/internal/auth"
)

// NewRouter wires every route onto a fresh gin engine. provider may be nil.
func NewRouter(app App, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), AccessLogMiddleware(app.Logger()))

	api := r.Group("/api")
	api.Use(auth.AuthMiddleware(provider))

	api.GET("/user", GetUser(app))
	api.PATCH("/user", PatchUser(app))
	api.POST("/user/savings", PostSavings(app))
	api.POST("/reset", PostReset(app))

	api.GET("/circles", GetCircles(app))
	api.POST("/circles", PostCircle(app))
	api.GET("/circles/:id", GetCircle(app))
	api.PATCH("/circles/:id", PatchCircle(app))
	api.DELETE("/circles/:id", DeleteCircle(app))
	api.POST("/circles/:id/join", PostJoinCircle(app))
	api.POST("/circles/:id/deposit", PostDeposit(app))
	api.POST("/circles/:id/withdraw", PostWithdraw(app))
	api.POST("/circles/:id/invest", PostInvest(app))
	api.POST("/circles/:id/investment/withdraw", PostWithdrawInvestment(app))
	api.POST("/circles/:id/messages", PostMessage(app))

	api.GET("/lessons", GetCompletedLessons(app))
	api.POST("/lessons/:id/complete", PostCompleteLesson(app))
	api.GET("/units/:unit", GetCachedUnit(app))
	api.PUT("/units/:unit", PutCachedUnit(app))

	api.GET("/hearts", GetHearts(app))
	api.POST("/hearts/lose", PostLoseHeart(app))
	api.POST("/hearts/refill", PostRefillHearts(app))

	return r
}
