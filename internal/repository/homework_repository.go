package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type HomeworkRepository struct {
	DB *gorm.DB
}

func NewHomeworkRepository(db *gorm.DB) *HomeworkRepository {
	return &HomeworkRepository{DB: db}
}

func (r *HomeworkRepository) Create(homework *model.Homework) error {
	return r.DB.Create(homework).Error
}

func (r *HomeworkRepository) FindByID(id uint) (*model.Homework, error) {
	var homework model.Homework
	err := r.DB.First(&homework, id).Error
	return &homework, err
}

func (r *HomeworkRepository) Update(homework *model.Homework) error {
	return r.DB.Save(homework).Error
}

func (r *HomeworkRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("homework_id = ?", id).Delete(&model.HomeworkSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Homework{}, id).Error
	})
}

func (r *HomeworkRepository) ListByClass(classID uint) ([]model.Homework, error) {
	var homeworks []model.Homework
	err := r.DB.Where("class_id = ?", classID).Order("deadline asc").Find(&homeworks).Error
	return homeworks, err
}

// Lock 惰性过期：读取路径发现截止后置为 locked
func (r *HomeworkRepository) Lock(id uint) error {
	return r.DB.Model(&model.Homework{}).
		Where("id = ?", id).
		Update("status", model.HomeworkLocked).Error
}

func (r *HomeworkRepository) CreateSubmission(sub *model.HomeworkSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *HomeworkRepository) UpdateSubmission(sub *model.HomeworkSubmission) error {
	return r.DB.Save(sub).Error
}

func (r *HomeworkRepository) FindSubmissionByID(id uint) (*model.HomeworkSubmission, error) {
	var sub model.HomeworkSubmission
	err := r.DB.First(&sub, id).Error
	return &sub, err
}

// FindCurrentSubmission 当前尝试 = attemptNumber 最大的一行
func (r *HomeworkRepository) FindCurrentSubmission(homeworkID, userID uint) (*model.HomeworkSubmission, error) {
	var sub model.HomeworkSubmission
	err := r.DB.Where("homework_id = ? AND user_id = ?", homeworkID, userID).
		Order("attempt_number desc").
		First(&sub).Error
	return &sub, err
}

func (r *HomeworkRepository) ListSubmissionsByUser(homeworkID, userID uint) ([]model.HomeworkSubmission, error) {
	var subs []model.HomeworkSubmission
	err := r.DB.Where("homework_id = ? AND user_id = ?", homeworkID, userID).
		Order("attempt_number asc").
		Find(&subs).Error
	return subs, err
}

type SubmissionRow struct {
	model.HomeworkSubmission
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// ListSubmissionsByHomework 教师视角：每个学生只取最新一次尝试
func (r *HomeworkRepository) ListSubmissionsByHomework(homeworkID uint, page, limit int) ([]SubmissionRow, int64, error) {
	base := r.DB.Table("homework_submissions s").
		Joins("JOIN users u ON u.id = s.user_id").
		Where("s.homework_id = ? AND s.deleted_at IS NULL", homeworkID).
		Where("s.attempt_number = (SELECT MAX(s2.attempt_number) FROM homework_submissions s2 WHERE s2.homework_id = s.homework_id AND s2.user_id = s.user_id AND s2.deleted_at IS NULL)")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []SubmissionRow
	offset := (page - 1) * limit
	err := base.Select("s.*, u.name as user_name, u.email as user_email").
		Order("s.last_activity_at desc").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}
