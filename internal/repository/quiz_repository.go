package repository

import (
	"time"
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByCode(code string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("code = ?", code).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var resultIDs []uint
		if err := tx.Model(&model.QuizResult{}).Where("quiz_id = ?", id).Pluck("id", &resultIDs).Error; err == nil && len(resultIDs) > 0 {
			if err := tx.Where("result_id IN ?", resultIDs).Delete(&model.QuizAnswerDetail{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizResult{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

type QuizListRow struct {
	model.Quiz
	ParticipantCount int `json:"participantCount"`
}

func (r *QuizRepository) ListByClass(classID uint) ([]QuizListRow, error) {
	var rows []QuizListRow
	err := r.DB.Table("quizzes q").
		Select("q.*, (SELECT COUNT(*) FROM quiz_results s WHERE s.quiz_id = q.id AND s.deleted_at IS NULL) as participant_count").
		Where("q.class_id = ? AND q.deleted_at IS NULL", classID).
		Order("q.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// EndWithCascade 结束测验并强制关闭所有未完成的结果，单事务内完成
func (r *QuizRepository) EndWithCascade(quiz *model.Quiz, endedAt time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(quiz).Error; err != nil {
			return err
		}
		return tx.Model(&model.QuizResult{}).
			Where("quiz_id = ? AND ended_at IS NULL", quiz.ID).
			Updates(map[string]interface{}{
				"ended_at": endedAt,
				"status":   model.QuizResultSubmitted,
			}).Error
	})
}

func (r *QuizRepository) CreateResult(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizRepository) FindResultByID(id uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.First(&result, id).Error
	return &result, err
}

func (r *QuizRepository) FindResultByQuizAndUser(quizID, userID uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&result).Error
	return &result, err
}

func (r *QuizRepository) UpdateResult(result *model.QuizResult) error {
	return r.DB.Save(result).Error
}

func (r *QuizRepository) CreateAnswerDetail(detail *model.QuizAnswerDetail) error {
	return r.DB.Create(detail).Error
}

// CountCorrectAnswers 从明细行重新统计正确数，分数永远是派生值
func (r *QuizRepository) CountCorrectAnswers(resultID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAnswerDetail{}).
		Where("result_id = ? AND is_correct = ?", resultID, true).
		Count(&count).Error
	return count, err
}

func (r *QuizRepository) ListAnswerDetails(resultID uint) ([]model.QuizAnswerDetail, error) {
	var details []model.QuizAnswerDetail
	err := r.DB.Where("result_id = ?", resultID).Order("created_at asc").Find(&details).Error
	return details, err
}

type QuizResultRow struct {
	model.QuizResult
	UserName string `json:"userName"`
}

func (r *QuizRepository) ListResultsByQuiz(quizID uint) ([]QuizResultRow, error) {
	var rows []QuizResultRow
	err := r.DB.Table("quiz_results s").
		Select("s.*, u.name as user_name").
		Joins("JOIN users u ON u.id = s.user_id").
		Where("s.quiz_id = ? AND s.deleted_at IS NULL", quizID).
		Order("s.score desc, s.started_at asc").
		Scan(&rows).Error
	return rows, err
}
