package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HomeworkController struct {
	HomeworkService *service.HomeworkService
	StorageService  *service.StorageService
}

func NewHomeworkController(homeworkService *service.HomeworkService, storageService *service.StorageService) *HomeworkController {
	return &HomeworkController{
		HomeworkService: homeworkService,
		StorageService:  storageService,
	}
}

// CreateHomework godoc
// @Summary 布置作业
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.HomeworkReq true "作业信息"
// @Success 201 {object} util.Response{data=model.Homework}
// @Router /api/teacher/homeworks [post]
func (c *HomeworkController) CreateHomework(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.HomeworkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	homework, err := c.HomeworkService.CreateHomework(user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, homework)
}

// UpdateHomework godoc
// @Summary 更新作业（延长截止时间会重新开放）
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param body body service.HomeworkReq true "作业信息"
// @Success 200 {object} util.Response{data=model.Homework}
// @Router /api/teacher/homeworks/{id} [put]
func (c *HomeworkController) UpdateHomework(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var req service.HomeworkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	homework, err := c.HomeworkService.UpdateHomework(id, user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, homework)
}

// DeleteHomework godoc
// @Summary 删除作业
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/homeworks/{id} [delete]
func (c *HomeworkController) DeleteHomework(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.HomeworkService.DeleteHomework(id, user.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// ListClassHomework godoc
// @Summary 班级作业列表
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 200 {object} util.Response{data=[]model.Homework}
// @Router /api/classes/{id}/homeworks [get]
func (c *HomeworkController) ListClassHomework(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	classID := util.MustParseUint(ctx.Param("id"))

	homeworks, err := c.HomeworkService.ListClassHomework(classID, user.UserID, user.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, homeworks)
}

// GetHomework godoc
// @Summary 作业详情
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response{data=model.Homework}
// @Router /api/homeworks/{id} [get]
func (c *HomeworkController) GetHomework(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	homework, err := c.HomeworkService.GetHomework(id, user.UserID, user.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, homework)
}

type progressRequest struct {
	DeltaSeconds int `json:"deltaSeconds" binding:"required,min=1"`
}

// ReportProgress godoc
// @Summary 上报作业用时
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param body body progressRequest true "本次增量秒数"
// @Success 200 {object} util.Response{data=model.HomeworkSubmission}
// @Router /api/homeworks/{id}/progress [post]
func (c *HomeworkController) ReportProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var req progressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.HomeworkService.Progress(id, user.UserID, req.DeltaSeconds)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

// RetryHomework godoc
// @Summary 重做作业，开启新的一次尝试
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 201 {object} util.Response{data=model.HomeworkSubmission}
// @Router /api/homeworks/{id}/retry [post]
func (c *HomeworkController) RetryHomework(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	submission, err := c.HomeworkService.Retry(id, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, submission)
}

// SubmitHomework godoc
// @Summary 提交作业
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param body body service.SubmitHomeworkReq true "作答内容"
// @Success 200 {object} util.Response{data=model.HomeworkSubmission}
// @Router /api/homeworks/{id}/submit [post]
func (c *HomeworkController) SubmitHomework(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var req service.SubmitHomeworkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.HomeworkService.Submit(id, user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

// ListMyAttempts godoc
// @Summary 我的作业尝试记录
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response{data=[]model.HomeworkSubmission}
// @Router /api/homeworks/{id}/attempts [get]
func (c *HomeworkController) ListMyAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	attempts, err := c.HomeworkService.ListMyAttempts(id, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// GetSubmission godoc
// @Summary 作业提交详情
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param submissionId path int true "提交ID"
// @Success 200 {object} util.Response{data=model.HomeworkSubmission}
// @Router /api/homeworks/submissions/{submissionId} [get]
func (c *HomeworkController) GetSubmission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	submissionID := util.MustParseUint(ctx.Param("submissionId"))

	submission, err := c.HomeworkService.GetSubmission(submissionID, user.UserID, user.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

// ListSubmissions godoc
// @Summary 作业提交列表（每人最新一次尝试）
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/teacher/homeworks/{id}/submissions [get]
func (c *HomeworkController) ListSubmissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))
	page, limit := pagination(ctx)

	submissions, total, err := c.HomeworkService.ListSubmissions(id, user.UserID, page, limit)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: submissions, Total: total, Page: page, Limit: limit})
}

// UploadAudio godoc
// @Summary 上传口语录音
// @Description 校验音频格式与时长后上传到对象存储，返回可提交的 audioUrl
// @Tags 作业
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "录音文件"
// @Success 200 {object} util.Response
// @Router /api/homeworks/audio/upload [post]
func (c *HomeworkController) UploadAudio(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedAudioExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported audio format: "+ext)
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeAudio, "video/webm", "application/ogg", util.MimeOctetStream})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := src.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// 先落到临时文件，ffprobe 需要本地路径
	tmp, err := os.CreateTemp("", "speaking-*"+ext)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := ctx.SaveUploadedFile(file, tmp.Name()); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	info, err := util.GetAudioInfo(tmp.Name())
	if err != nil {
		logger.Log.Warn("音频探测失败", zap.Error(err))
		util.BadRequest(ctx, "unreadable audio file")
		return
	}
	if info.Duration <= 0 {
		util.BadRequest(ctx, "empty recording")
		return
	}

	filename := fmt.Sprintf("speaking/%d/%s%s", user.UserID, uuid.New().String(), ext)
	url, err := c.StorageService.UploadFile(ctx.Request.Context(), filename, tmp.Name(), mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"url":      url,
		"duration": info.Duration,
	})
}
