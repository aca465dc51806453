package controller

import (
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClazzController struct {
	ClazzService *service.ClazzService
}

func NewClazzController(clazzService *service.ClazzService) *ClazzController {
	return &ClazzController{ClazzService: clazzService}
}

// CreateClazz godoc
// @Summary 创建班级
// @Tags 班级
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ClazzReq true "班级信息"
// @Success 201 {object} util.Response{data=model.Clazz}
// @Router /api/teacher/classes [post]
func (c *ClazzController) CreateClazz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.ClazzReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	clazz, err := c.ClazzService.CreateClazz(user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, clazz)
}

// ListClazzes godoc
// @Summary 我的班级列表
// @Tags 班级
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Clazz}
// @Router /api/classes [get]
func (c *ClazzController) ListClazzes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	clazzes, err := c.ClazzService.ListForUser(user.UserID, user.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, clazzes)
}

// UpdateClazz godoc
// @Summary 更新班级
// @Tags 班级
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Param body body service.ClazzReq true "班级信息"
// @Success 200 {object} util.Response{data=model.Clazz}
// @Router /api/teacher/classes/{id} [put]
func (c *ClazzController) UpdateClazz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var req service.ClazzReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	clazz, err := c.ClazzService.UpdateClazz(id, user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, clazz)
}

// DeleteClazz godoc
// @Summary 解散班级
// @Tags 班级
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/classes/{id} [delete]
func (c *ClazzController) DeleteClazz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.ClazzService.DeleteClazz(id, user.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

type joinClazzRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

// JoinClazz godoc
// @Summary 通过邀请码加入班级
// @Tags 班级
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body joinClazzRequest true "邀请码"
// @Success 200 {object} util.Response{data=model.Clazz}
// @Router /api/classes/join [post]
func (c *ClazzController) JoinClazz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req joinClazzRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	clazz, err := c.ClazzService.Join(req.InviteCode, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, clazz)
}

// PreviewClazz godoc
// @Summary 邀请码预览班级
// @Description 加入前查看班级信息；携带合法 token 时额外返回是否已加入
// @Tags 班级
// @Produce json
// @Param code query string true "邀请码"
// @Success 200 {object} util.Response{data=service.ClazzPreview}
// @Failure 404 {object} util.Response "邀请码无效"
// @Router /api/classes/preview [get]
func (c *ClazzController) PreviewClazz(ctx *gin.Context) {
	code := ctx.Query("code")
	if code == "" {
		util.BadRequest(ctx, "code is required")
		return
	}

	var userID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
	}

	preview, err := c.ClazzService.Preview(code, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, preview)
}

// LeaveClazz godoc
// @Summary 退出班级
// @Tags 班级
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 200 {object} util.Response
// @Router /api/classes/{id}/leave [post]
func (c *ClazzController) LeaveClazz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.ClazzService.Leave(id, user.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// ListMembers godoc
// @Summary 班级成员列表
// @Tags 班级
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 200 {object} util.Response
// @Router /api/classes/{id}/members [get]
func (c *ClazzController) ListMembers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	members, err := c.ClazzService.ListMembers(id, user.UserID, user.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, members)
}

// RemoveMember godoc
// @Summary 移除班级成员
// @Tags 班级
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Param userId path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/classes/{id}/members/{userId} [delete]
func (c *ClazzController) RemoveMember(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))
	memberID := util.MustParseUint(ctx.Param("userId"))

	if _, err := c.ClazzService.OwnedClazz(id, user.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := c.ClazzService.Leave(id, memberID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
