package controller

import (
	"time"

	"code_arena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TimeController struct{}

func NewTimeController() *TimeController {
	return &TimeController{}
}

// @Summary 服务器时间
// @Description 前端计时器与服务器对时用
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /time [get]
func (c *TimeController) ServerTime(ctx *gin.Context) {
	now := time.Now().UTC()
	util.Success(ctx, gin.H{
		"serverTime": now.Format(time.RFC3339),
		"unixMillis": now.UnixMilli(),
	})
}
