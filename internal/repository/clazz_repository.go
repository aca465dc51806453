package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ClazzRepository struct {
	DB *gorm.DB
}

func NewClazzRepository(db *gorm.DB) *ClazzRepository {
	return &ClazzRepository{DB: db}
}

func (r *ClazzRepository) Create(clazz *model.Clazz) error {
	return r.DB.Create(clazz).Error
}

func (r *ClazzRepository) FindByID(id uint) (*model.Clazz, error) {
	var clazz model.Clazz
	err := r.DB.First(&clazz, id).Error
	return &clazz, err
}

func (r *ClazzRepository) FindByInviteCode(code string) (*model.Clazz, error) {
	var clazz model.Clazz
	err := r.DB.Where("invite_code = ?", code).First(&clazz).Error
	return &clazz, err
}

func (r *ClazzRepository) Update(clazz *model.Clazz) error {
	return r.DB.Save(clazz).Error
}

func (r *ClazzRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&model.ClassMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Clazz{}, id).Error
	})
}

func (r *ClazzRepository) ListByTeacher(teacherID uint) ([]model.Clazz, error) {
	var clazzes []model.Clazz
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at desc").Find(&clazzes).Error
	return clazzes, err
}

// ListByMember 学生视角：加入过的班级
func (r *ClazzRepository) ListByMember(userID uint) ([]model.Clazz, error) {
	var clazzes []model.Clazz
	err := r.DB.Table("clazzes c").
		Select("c.*").
		Joins("JOIN class_members m ON m.class_id = c.id AND m.deleted_at IS NULL").
		Where("m.user_id = ? AND c.deleted_at IS NULL", userID).
		Order("c.created_at desc").
		Scan(&clazzes).Error
	return clazzes, err
}

func (r *ClazzRepository) AddMember(member *model.ClassMember) error {
	return r.DB.Create(member).Error
}

func (r *ClazzRepository) RemoveMember(classID, userID uint) error {
	return r.DB.Where("class_id = ? AND user_id = ?", classID, userID).
		Delete(&model.ClassMember{}).Error
}

func (r *ClazzRepository) IsMember(classID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassMember{}).
		Where("class_id = ? AND user_id = ?", classID, userID).
		Count(&count).Error
	return count > 0, err
}

type ClassMemberRow struct {
	model.ClassMember
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Avatar    string `json:"avatar"`
}

func (r *ClazzRepository) CountMembers(classID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ClassMember{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}

func (r *ClazzRepository) ListMembers(classID uint) ([]ClassMemberRow, error) {
	var rows []ClassMemberRow
	err := r.DB.Table("class_members m").
		Select("m.*, u.name as user_name, u.email as user_email, u.avatar").
		Joins("JOIN users u ON u.id = m.user_id").
		Where("m.class_id = ? AND m.deleted_at IS NULL", classID).
		Order("m.created_at asc").
		Scan(&rows).Error
	return rows, err
}
