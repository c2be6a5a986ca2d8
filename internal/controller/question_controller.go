package controller

import (
	"strconv"

	"code_arena_backend/internal/service"
	"code_arena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 创建编程题
// @Tags 题目管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionRequest true "题目信息"
// @Success 201 {object} util.Response
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary 题目列表
// @Tags 题目管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	qs, total, err := c.Service.ListQuestions(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: qs, Total: total, Page: page, Limit: limit})
}

// @Summary 题目详情（参赛者视角，只含非隐藏用例）
// @Tags 题目管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	q, err := c.Service.GetQuestionForParticipant(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary 题目详情（含全部用例）
// @Tags 题目管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) GetFull(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	q, err := c.Service.GetQuestionWithTestCases(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary 更新题目
// @Tags 题目管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param body body service.QuestionRequest true "题目信息"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary 删除题目
// @Tags 题目管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(id); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary 新增测试用例
// @Tags 题目管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param body body service.TestCaseRequest true "用例内容"
// @Success 201 {object} util.Response
// @Router /api/admin/questions/{id}/testcases [post]
func (c *QuestionController) AddTestCase(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.TestCaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tc, err := c.Service.AddTestCase(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, tc)
}

// @Summary 更新测试用例
// @Tags 题目管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tcId path int true "用例ID"
// @Param body body service.TestCaseRequest true "用例内容"
// @Success 200 {object} util.Response
// @Router /api/admin/testcases/{tcId} [put]
func (c *QuestionController) UpdateTestCase(ctx *gin.Context) {
	tcID, ok := parseIDParam(ctx, "tcId")
	if !ok {
		return
	}

	var req service.TestCaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tc, err := c.Service.UpdateTestCase(tcID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, tc)
}

// @Summary 删除测试用例
// @Tags 题目管理
// @Produce json
// @Security BearerAuth
// @Param tcId path int true "用例ID"
// @Success 200 {object} util.Response
// @Router /api/admin/testcases/{tcId} [delete]
func (c *QuestionController) DeleteTestCase(ctx *gin.Context) {
	tcID, ok := parseIDParam(ctx, "tcId")
	if !ok {
		return
	}

	if err := c.Service.DeleteTestCase(tcID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
