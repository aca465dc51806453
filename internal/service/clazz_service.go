package service

import (
	"errors"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

type ClazzService struct {
	ClazzRepo *repository.ClazzRepository
}

func NewClazzService(clazzRepo *repository.ClazzRepository) *ClazzService {
	return &ClazzService{ClazzRepo: clazzRepo}
}

type ClazzReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *ClazzService) CreateClazz(teacherID uint, req ClazzReq) (*model.Clazz, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, errors.New("name is required")
	}

	clazz := &model.Clazz{
		Name:      *req.Name,
		TeacherID: teacherID,
	}
	if req.Description != nil {
		clazz.Description = *req.Description
	}

	// 邀请码撞库重试
	for i := 0; i < 5; i++ {
		clazz.InviteCode = generateCode(6)
		if _, err := s.ClazzRepo.FindByInviteCode(clazz.InviteCode); err == gorm.ErrRecordNotFound {
			break
		}
	}

	if err := s.ClazzRepo.Create(clazz); err != nil {
		return nil, err
	}
	return clazz, nil
}

func (s *ClazzService) UpdateClazz(clazzID, teacherID uint, req ClazzReq) (*model.Clazz, error) {
	clazz, err := s.OwnedClazz(clazzID, teacherID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		clazz.Name = *req.Name
	}
	if req.Description != nil {
		clazz.Description = *req.Description
	}

	if err := s.ClazzRepo.Update(clazz); err != nil {
		return nil, err
	}
	return clazz, nil
}

func (s *ClazzService) DeleteClazz(clazzID, teacherID uint) error {
	if _, err := s.OwnedClazz(clazzID, teacherID); err != nil {
		return err
	}
	return s.ClazzRepo.Delete(clazzID)
}

// OwnedClazz 所有权检查：班级必须属于该教师
func (s *ClazzService) OwnedClazz(clazzID, teacherID uint) (*model.Clazz, error) {
	clazz, err := s.ClazzRepo.FindByID(clazzID)
	if err != nil {
		return nil, err
	}
	if clazz.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return clazz, nil
}

func (s *ClazzService) ListForUser(userID uint, role model.UserRole) ([]model.Clazz, error) {
	if role == model.Teacher || role == model.Admin {
		return s.ClazzRepo.ListByTeacher(userID)
	}
	return s.ClazzRepo.ListByMember(userID)
}

func (s *ClazzService) Join(inviteCode string, userID uint) (*model.Clazz, error) {
	clazz, err := s.ClazzRepo.FindByInviteCode(inviteCode)
	if err != nil {
		return nil, err
	}

	isMember, err := s.ClazzRepo.IsMember(clazz.ID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return clazz, nil
	}

	if err := s.ClazzRepo.AddMember(&model.ClassMember{ClassID: clazz.ID, UserID: userID}); err != nil {
		return nil, err
	}
	return clazz, nil
}

// ClazzPreview 邀请码预览，供加入前查看，未登录也可访问
type ClazzPreview struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int64  `json:"memberCount"`
	Joined      bool   `json:"joined"`
}

func (s *ClazzService) Preview(inviteCode string, userID uint) (*ClazzPreview, error) {
	clazz, err := s.ClazzRepo.FindByInviteCode(inviteCode)
	if err != nil {
		return nil, err
	}

	count, err := s.ClazzRepo.CountMembers(clazz.ID)
	if err != nil {
		return nil, err
	}

	preview := &ClazzPreview{
		ID:          clazz.ID,
		Name:        clazz.Name,
		Description: clazz.Description,
		MemberCount: count,
	}
	if userID != 0 {
		joined, err := s.ClazzRepo.IsMember(clazz.ID, userID)
		if err != nil {
			return nil, err
		}
		preview.Joined = joined
	}
	return preview, nil
}

func (s *ClazzService) Leave(clazzID, userID uint) error {
	return s.ClazzRepo.RemoveMember(clazzID, userID)
}

func (s *ClazzService) ListMembers(clazzID, callerID uint, role model.UserRole) ([]repository.ClassMemberRow, error) {
	clazz, err := s.ClazzRepo.FindByID(clazzID)
	if err != nil {
		return nil, err
	}

	if role == model.Student {
		isMember, err := s.ClazzRepo.IsMember(clazzID, callerID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, util.ErrNotClassMember
		}
	} else if clazz.TeacherID != callerID && role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	return s.ClazzRepo.ListMembers(clazzID)
}

// RequireMember 成员关系检查，学生读取班级内容的入口
func (s *ClazzService) RequireMember(clazzID, userID uint) error {
	isMember, err := s.ClazzRepo.IsMember(clazzID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return util.ErrNotClassMember
	}
	return nil
}
