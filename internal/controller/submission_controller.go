package controller

import (
	"strconv"

	"code_arena_backend/internal/service"
	"code_arena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Service *service.SubmissionService
}

func NewSubmissionController(svc *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Service: svc}
}

// @Summary 提交代码评测
// @Tags 代码提交
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmitSolutionRequest true "提交内容"
// @Success 201 {object} util.Response
// @Router /api/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitSolutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitSolution(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary 自测运行（只跑可见用例，不计分）
// @Tags 代码提交
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmitSolutionRequest true "提交内容"
// @Success 200 {object} util.Response
// @Router /api/submissions/run [post]
func (c *SubmissionController) Run(ctx *gin.Context) {
	var req service.SubmitSolutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.Service.RunSolution(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary 我的提交记录
// @Tags 代码提交
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/submissions [get]
func (c *SubmissionController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subs, err := c.Service.ListUserSubmissions(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, subs)
}

// @Summary 某题在某挑战下的提交记录
// @Tags 代码提交
// @Produce json
// @Security BearerAuth
// @Param challengeId query int true "挑战ID"
// @Param questionId query int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/submissions/question [get]
func (c *SubmissionController) ListForQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, err1 := strconv.Atoi(ctx.Query("challengeId"))
	questionID, err2 := strconv.Atoi(ctx.Query("questionId"))
	if err1 != nil || err2 != nil {
		util.BadRequest(ctx, "invalid challengeId or questionId")
		return
	}

	subs, err := c.Service.ListQuestionSubmissions(user.UserID, uint(challengeID), uint(questionID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, subs)
}

// @Summary 提交详情
// @Tags 代码提交
// @Produce json
// @Security BearerAuth
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response
// @Router /api/submissions/{id} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
	sub, err := c.Service.GetSubmission(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

// @Summary 删除提交
// @Tags 代码提交
// @Produce json
// @Security BearerAuth
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response
// @Router /api/admin/submissions/{id} [delete]
func (c *SubmissionController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteSubmission(ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
