package controller

import (
	"strconv"

	"code_arena_backend/internal/service"
	"code_arena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	Service *service.ChallengeService
}

func NewChallengeController(svc *service.ChallengeService) *ChallengeController {
	return &ChallengeController{Service: svc}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// @Summary 创建挑战
// @Tags 挑战管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChallengeRequest true "挑战信息"
// @Success 201 {object} util.Response
// @Router /api/admin/challenges [post]
func (c *ChallengeController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.Service.CreateChallenge(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, challenge)
}

// @Summary 挑战列表
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/challenges [get]
func (c *ChallengeController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	challenges, total, err := c.Service.ListChallenges(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: challenges, Total: total, Page: page, Limit: limit})
}

// @Summary 挑战详情（含题目）
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id} [get]
func (c *ChallengeController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	challenge, err := c.Service.GetChallenge(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, challenge)
}

// @Summary 更新挑战
// @Tags 挑战管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Param body body service.ChallengeRequest true "挑战信息"
// @Success 200 {object} util.Response
// @Router /api/admin/challenges/{id} [put]
func (c *ChallengeController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.Service.UpdateChallenge(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, challenge)
}

// @Summary 删除挑战
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/admin/challenges/{id} [delete]
func (c *ChallengeController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteChallenge(id); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary 向挑战添加题目
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/challenges/{id}/questions/{questionId} [post]
func (c *ChallengeController) AddQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.Service.AddQuestion(id, questionID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"added": true})
}

// @Summary 从挑战移除题目
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/challenges/{id}/questions/{questionId} [delete]
func (c *ChallengeController) RemoveQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.Service.RemoveQuestion(id, questionID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"removed": true})
}

type joinRequest struct {
	Key string `json:"key" binding:"required"`
}

// @Summary 凭邀请码加入挑战
// @Tags 挑战参与
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body joinRequest true "邀请码"
// @Success 200 {object} util.Response
// @Router /api/challenges/join [post]
func (c *ChallengeController) Join(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req joinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.JoinWithKey(user.UserID, req.Key)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 结束本人的挑战
// @Tags 挑战参与
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/end [post]
func (c *ChallengeController) End(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.Service.EndContest(ctx.Request.Context(), user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 本人的挑战进度
// @Tags 挑战参与
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/progress [get]
func (c *ChallengeController) Progress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.Service.GetProgress(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 挑战排行榜
// @Tags 挑战参与
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/leaderboard [get]
func (c *ChallengeController) Leaderboard(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	entries, err := c.Service.GetLeaderboard(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// @Summary 重算挑战排行榜
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/admin/challenges/{id}/leaderboard/rebuild [post]
func (c *ChallengeController) RebuildLeaderboard(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.RebuildLeaderboard(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"rebuilt": true})
}

// @Summary 记一次罚时
// @Tags 挑战参与
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/penalty [post]
func (c *ChallengeController) Penalty(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.Service.RecordPenalty(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 记一次提示使用
// @Tags 挑战参与
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/hint [post]
func (c *ChallengeController) Hint(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.Service.RecordHint(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
