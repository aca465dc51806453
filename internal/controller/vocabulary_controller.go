package controller

import (
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VocabularyController struct {
	VocabularyService *service.VocabularyService
}

func NewVocabularyController(vocabularyService *service.VocabularyService) *VocabularyController {
	return &VocabularyController{VocabularyService: vocabularyService}
}

// CreateFolder godoc
// @Summary 创建词库
// @Tags 词库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.FolderReq true "词库信息"
// @Success 201 {object} util.Response{data=model.Folder}
// @Router /api/teacher/folders [post]
func (c *VocabularyController) CreateFolder(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.FolderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	folder, err := c.VocabularyService.CreateFolder(user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, folder)
}

// ListFolders godoc
// @Summary 我的词库列表
// @Tags 词库
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/folders [get]
func (c *VocabularyController) ListFolders(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	folders, err := c.VocabularyService.ListFolders(user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, folders)
}

// UpdateFolder godoc
// @Summary 更新词库
// @Tags 词库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "词库ID"
// @Param body body service.FolderReq true "词库信息"
// @Success 200 {object} util.Response{data=model.Folder}
// @Router /api/teacher/folders/{id} [put]
func (c *VocabularyController) UpdateFolder(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var req service.FolderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	folder, err := c.VocabularyService.UpdateFolder(id, user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, folder)
}

// DeleteFolder godoc
// @Summary 删除词库及其词条
// @Tags 词库
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "词库ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/folders/{id} [delete]
func (c *VocabularyController) DeleteFolder(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.VocabularyService.DeleteFolder(id, user.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// AddVocabulary godoc
// @Summary 添加词条
// @Tags 词库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "词库ID"
// @Param body body service.VocabularyReq true "词条信息"
// @Success 201 {object} util.Response{data=model.Vocabulary}
// @Router /api/teacher/folders/{id}/vocabularies [post]
func (c *VocabularyController) AddVocabulary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	folderID := util.MustParseUint(ctx.Param("id"))

	var req service.VocabularyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vocab, err := c.VocabularyService.AddVocabulary(folderID, user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, vocab)
}

// ListVocabularies godoc
// @Summary 词条列表
// @Tags 词库
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "词库ID"
// @Success 200 {object} util.Response{data=[]model.Vocabulary}
// @Router /api/teacher/folders/{id}/vocabularies [get]
func (c *VocabularyController) ListVocabularies(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	folderID := util.MustParseUint(ctx.Param("id"))

	vocabularies, err := c.VocabularyService.ListVocabularies(folderID, user.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, vocabularies)
}

// UpdateVocabulary godoc
// @Summary 更新词条
// @Tags 词库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param vocabId path int true "词条ID"
// @Param body body service.VocabularyReq true "词条信息"
// @Success 200 {object} util.Response{data=model.Vocabulary}
// @Router /api/teacher/vocabularies/{vocabId} [put]
func (c *VocabularyController) UpdateVocabulary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	vocabID := util.MustParseUint(ctx.Param("vocabId"))

	var req service.VocabularyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vocab, err := c.VocabularyService.UpdateVocabulary(vocabID, user.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, vocab)
}

// DeleteVocabulary godoc
// @Summary 删除词条
// @Tags 词库
// @Produce json
// @Security ApiKeyAuth
// @Param vocabId path int true "词条ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/vocabularies/{vocabId} [delete]
func (c *VocabularyController) DeleteVocabulary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	vocabID := util.MustParseUint(ctx.Param("vocabId"))

	if err := c.VocabularyService.DeleteVocabulary(vocabID, user.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
