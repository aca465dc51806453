package controller

import (
	"errors"
	"net/http"
	"strconv"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondServiceError 把业务错误映射为 HTTP 状态码，未知错误记日志返回 500
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrResultNotFound),
		errors.Is(err, util.ErrHomeworkNotFound),
		errors.Is(err, util.ErrSubmissionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrNotClassMember):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrQuizAlreadyStarted),
		errors.Is(err, util.ErrQuizNotStarted),
		errors.Is(err, util.ErrQuizAlreadyEnded),
		errors.Is(err, util.ErrQuizPaused),
		errors.Is(err, util.ErrQuizNotActive),
		errors.Is(err, util.ErrHomeworkLocked),
		errors.Is(err, util.ErrDeadlinePassed),
		errors.Is(err, util.ErrAlreadySubmitted):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// pagination 解析分页参数，page 从 1 开始，limit 上限 100
func pagination(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
