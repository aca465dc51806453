package controller

import (
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// CreateQuiz godoc
// @Summary 创建测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizReq true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/teacher/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// ListClassQuizzes godoc
// @Summary 班级测验列表
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/classes/{id}/quizzes [get]
func (c *QuizController) ListClassQuizzes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	classID := util.MustParseUint(ctx.Param("id"))

	quizzes, err := c.QuizService.ListClassQuizzes(classID, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// StartQuiz godoc
// @Summary 开始测验
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/teacher/quizzes/{id}/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.QuizService.Start(id, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// PauseQuiz godoc
// @Summary 暂停测验
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/teacher/quizzes/{id}/pause [post]
func (c *QuizController) PauseQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.QuizService.SetPaused(id, user.UserID, true)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// ResumeQuiz godoc
// @Summary 恢复测验
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/teacher/quizzes/{id}/resume [post]
func (c *QuizController) ResumeQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.QuizService.SetPaused(id, user.UserID, false)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// EndQuiz godoc
// @Summary 结束测验并关闭所有未完成的作答
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/teacher/quizzes/{id}/end [post]
func (c *QuizController) EndQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.QuizService.End(id, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// ListResults godoc
// @Summary 测验成绩列表
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id}/results [get]
func (c *QuizController) ListResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	results, err := c.QuizService.ListResults(id, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.QuizService.DeleteQuiz(id, user.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

type joinQuizRequest struct {
	Code string `json:"code" binding:"required"`
}

// JoinQuiz godoc
// @Summary 通过测验码加入测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body joinQuizRequest true "测验码"
// @Success 200 {object} util.Response
// @Router /api/quizzes/join [post]
func (c *QuizController) JoinQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req joinQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, result, err := c.QuizService.Join(req.Code, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"quiz": quiz, "result": result})
}

// GetQuizVocabularies godoc
// @Summary 测验词条列表（学生）
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.Vocabulary}
// @Router /api/quizzes/{id}/vocabularies [get]
func (c *QuizController) GetQuizVocabularies(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	vocabularies, err := c.QuizService.GetVocabularies(id, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, vocabularies)
}

// SubmitAnswer godoc
// @Summary 提交单题作答
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AnswerReq true "作答"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Router /api/quizzes/answers [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.AnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitAnswer(user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// FinishResult godoc
// @Summary 提前交卷
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param resultId path int true "作答ID"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Router /api/quizzes/results/{resultId}/finish [post]
func (c *QuizController) FinishResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	resultID := util.MustParseUint(ctx.Param("resultId"))

	result, err := c.QuizService.FinishResult(resultID, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetMyResult godoc
// @Summary 我的测验成绩
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/my-result [get]
func (c *QuizController) GetMyResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	result, details, err := c.QuizService.GetMyResult(id, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"result": result, "answers": details})
}
