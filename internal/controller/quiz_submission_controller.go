package controller

import (
	"code_arena_backend/internal/service"
	"code_arena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizSubmissionController struct {
	Service *service.QuizSubmissionService
}

func NewQuizSubmissionController(svc *service.QuizSubmissionService) *QuizSubmissionController {
	return &QuizSubmissionController{Service: svc}
}

// @Summary 开始答题（初始化提交记录）
// @Tags 测验答题
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 201 {object} util.Response
// @Router /api/quizzes/{id}/submissions [post]
func (c *QuizSubmissionController) Initialize(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sub, err := c.Service.InitializeSubmission(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, sub)
}

// @Summary 提交单题答案
// @Tags 测验答题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param body body service.QuizAnswerRequest true "答案"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/submissions/answer [post]
func (c *QuizSubmissionController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Service.SubmitQuestion(user.UserID, id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

type batchAnswersRequest struct {
	Answers []service.QuizAnswerRequest `json:"answers" binding:"required"`
}

// @Summary 批量提交答案
// @Tags 测验答题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param body body batchAnswersRequest true "答案列表"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/submissions/answers [post]
func (c *QuizSubmissionController) SubmitAnswers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req batchAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Service.SubmitQuestions(user.UserID, id, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

// @Summary 查看本人的答题记录
// @Tags 测验答题
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/submissions/me [get]
func (c *QuizSubmissionController) GetMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sub, err := c.Service.GetUserSubmission(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}
