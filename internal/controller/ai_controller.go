package controller

import (
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	AIService  *service.AIService
	TTSService *service.TTSService
}

func NewAIController(aiService *service.AIService, ttsService *service.TTSService) *AIController {
	return &AIController{
		AIService:  aiService,
		TTSService: ttsService,
	}
}

type translateRequest struct {
	Text       string `json:"text" binding:"required"`
	TargetLang string `json:"targetLang" binding:"required"`
}

// Translate godoc
// @Summary 翻译文本
// @Tags AI
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body translateRequest true "待翻译文本"
// @Success 200 {object} util.Response
// @Router /api/ai/translate [post]
func (c *AIController) Translate(ctx *gin.Context) {
	var req translateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	translation, err := c.AIService.Translate(req.Text, req.TargetLang)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"translation": translation})
}

type exampleRequest struct {
	Word    string `json:"word" binding:"required"`
	Meaning string `json:"meaning"`
}

// GenerateExample godoc
// @Summary 生成例句
// @Tags AI
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body exampleRequest true "词条"
// @Success 200 {object} util.Response
// @Router /api/ai/example [post]
func (c *AIController) GenerateExample(ctx *gin.Context) {
	var req exampleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	example, err := c.AIService.GenerateExample(req.Word, req.Meaning)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"example": example})
}

type synthesizeRequest struct {
	Text  string `json:"text" binding:"required,max=500"`
	Voice string `json:"voice"`
}

// Synthesize godoc
// @Summary 文本转语音
// @Description 命中缓存直接返回已有音频地址，否则调用 TTS 服务并上传到对象存储
// @Tags AI
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body synthesizeRequest true "朗读文本"
// @Success 200 {object} util.Response
// @Router /api/ai/tts [post]
func (c *AIController) Synthesize(ctx *gin.Context) {
	var req synthesizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	url, err := c.TTSService.Synthesize(ctx.Request.Context(), req.Text, req.Voice)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
