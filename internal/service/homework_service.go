package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HomeworkService 作业与重做次数跟踪
// 截止锁定是读取路径的副作用（惰性过期），没有后台定时器
type HomeworkService struct {
	HomeworkRepo *repository.HomeworkRepository
	ClazzSvc     *ClazzService
	AISvc        *AIService
}

func NewHomeworkService(homeworkRepo *repository.HomeworkRepository, clazzSvc *ClazzService, aiSvc *AIService) *HomeworkService {
	return &HomeworkService{
		HomeworkRepo: homeworkRepo,
		ClazzSvc:     clazzSvc,
		AISvc:        aiSvc,
	}
}

type HomeworkReq struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Type        *model.HomeworkType `json:"type"`
	ClassID     *uint               `json:"classId"`
	FolderID    *uint               `json:"folderId"`
	Deadline    *time.Time          `json:"deadline"`
	AnswerKey   json.RawMessage     `json:"answerKey"`
}

func (s *HomeworkService) CreateHomework(creatorID uint, req HomeworkReq) (*model.Homework, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Type == nil || req.ClassID == nil || req.FolderID == nil || req.Deadline == nil {
		return nil, errors.New("type, classId, folderId and deadline are required")
	}

	if _, err := s.ClazzSvc.OwnedClazz(*req.ClassID, creatorID); err != nil {
		return nil, err
	}

	homework := &model.Homework{
		Title:     *req.Title,
		Type:      *req.Type,
		ClassID:   *req.ClassID,
		FolderID:  *req.FolderID,
		CreatorID: creatorID,
		Deadline:  *req.Deadline,
		Status:    model.HomeworkActive,
		AnswerKey: req.AnswerKey,
	}
	if req.Description != nil {
		homework.Description = *req.Description
	}

	if err := s.HomeworkRepo.Create(homework); err != nil {
		return nil, err
	}
	return homework, nil
}

func (s *HomeworkService) UpdateHomework(homeworkID, teacherID uint, req HomeworkReq) (*model.Homework, error) {
	homework, err := s.OwnedHomework(homeworkID, teacherID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		homework.Title = *req.Title
	}
	if req.Description != nil {
		homework.Description = *req.Description
	}
	if req.Deadline != nil {
		homework.Deadline = *req.Deadline
		// 延期后允许重新开放
		if homework.Deadline.After(time.Now()) {
			homework.Status = model.HomeworkActive
		}
	}
	if req.AnswerKey != nil {
		homework.AnswerKey = req.AnswerKey
	}

	if err := s.HomeworkRepo.Update(homework); err != nil {
		return nil, err
	}
	return homework, nil
}

func (s *HomeworkService) DeleteHomework(homeworkID, teacherID uint) error {
	if _, err := s.OwnedHomework(homeworkID, teacherID); err != nil {
		return err
	}
	return s.HomeworkRepo.Delete(homeworkID)
}

func (s *HomeworkService) OwnedHomework(homeworkID, teacherID uint) (*model.Homework, error) {
	homework, err := s.HomeworkRepo.FindByID(homeworkID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ClazzSvc.OwnedClazz(homework.ClassID, teacherID); err != nil {
		return nil, err
	}
	return homework, nil
}

// lockIfExpired 惰性过期：读到已过截止且仍 active 的行就地翻转为 locked
func (s *HomeworkService) lockIfExpired(homework *model.Homework) {
	if homework.Status == model.HomeworkActive && time.Now().After(homework.Deadline) {
		if err := s.HomeworkRepo.Lock(homework.ID); err != nil {
			logger.Log.Error("failed to lock expired homework",
				zap.Uint("homeworkId", homework.ID), zap.Error(err))
			return
		}
		homework.Status = model.HomeworkLocked
	}
}

// ListClassHomework 列表读取附带惰性锁定副作用
func (s *HomeworkService) ListClassHomework(classID, userID uint, role model.UserRole) ([]model.Homework, error) {
	if role == model.Student {
		if err := s.ClazzSvc.RequireMember(classID, userID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.ClazzSvc.OwnedClazz(classID, userID); err != nil {
			return nil, err
		}
	}

	homeworks, err := s.HomeworkRepo.ListByClass(classID)
	if err != nil {
		return nil, err
	}

	for i := range homeworks {
		s.lockIfExpired(&homeworks[i])
	}
	return homeworks, nil
}

func (s *HomeworkService) GetHomework(homeworkID, userID uint, role model.UserRole) (*model.Homework, error) {
	homework, err := s.HomeworkRepo.FindByID(homeworkID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}

	if role == model.Student {
		if err := s.ClazzSvc.RequireMember(homework.ClassID, userID); err != nil {
			return nil, err
		}
	}

	s.lockIfExpired(homework)
	return homework, nil
}

// Progress 进度心跳：累加当前尝试的 timeSpentSeconds，首个心跳创建第1次尝试
func (s *HomeworkService) Progress(homeworkID, userID uint, deltaSeconds int) (*model.HomeworkSubmission, error) {
	if deltaSeconds <= 0 {
		return nil, errors.New("seconds must be positive")
	}

	homework, err := s.HomeworkRepo.FindByID(homeworkID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}
	if err := s.ClazzSvc.RequireMember(homework.ClassID, userID); err != nil {
		return nil, err
	}
	s.lockIfExpired(homework)

	sub, err := s.HomeworkRepo.FindCurrentSubmission(homeworkID, userID)
	if err == gorm.ErrRecordNotFound {
		if homework.Status == model.HomeworkLocked {
			return nil, util.ErrHomeworkLocked
		}
		sub = &model.HomeworkSubmission{
			HomeworkID:       homeworkID,
			UserID:           userID,
			AttemptNumber:    1,
			TimeSpentSeconds: deltaSeconds,
			LastActivityAt:   time.Now(),
			Status:           model.SubmissionInProgress,
		}
		if err := s.HomeworkRepo.CreateSubmission(sub); err != nil {
			return nil, err
		}
		return sub, nil
	} else if err != nil {
		return nil, err
	}

	sub.TimeSpentSeconds += deltaSeconds
	sub.LastActivityAt = time.Now()
	if err := s.HomeworkRepo.UpdateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Retry 创建新一次尝试（attemptNumber+1），历史尝试保留不覆盖
// 作业锁定或已过截止时拒绝
func (s *HomeworkService) Retry(homeworkID, userID uint) (*model.HomeworkSubmission, error) {
	homework, err := s.HomeworkRepo.FindByID(homeworkID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}
	if err := s.ClazzSvc.RequireMember(homework.ClassID, userID); err != nil {
		return nil, err
	}
	s.lockIfExpired(homework)

	if homework.Status == model.HomeworkLocked {
		return nil, util.ErrHomeworkLocked
	}
	if time.Now().After(homework.Deadline) {
		return nil, util.ErrDeadlinePassed
	}

	attempt := 1
	current, err := s.HomeworkRepo.FindCurrentSubmission(homeworkID, userID)
	if err == nil {
		attempt = current.AttemptNumber + 1
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	sub := &model.HomeworkSubmission{
		HomeworkID:     homeworkID,
		UserID:         userID,
		AttemptNumber:  attempt,
		LastActivityAt: time.Now(),
		Status:         model.SubmissionInProgress,
	}
	if err := s.HomeworkRepo.CreateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

type SubmitHomeworkReq struct {
	Answers  map[string]string `json:"answers"`
	AudioURL string            `json:"audioUrl"`
}

// Submit 交卷并评分
// 客观题按答案键逐题比对；口语作业交给发音评测服务打分
func (s *HomeworkService) Submit(homeworkID, userID uint, req SubmitHomeworkReq) (*model.HomeworkSubmission, error) {
	homework, err := s.HomeworkRepo.FindByID(homeworkID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}
	if err := s.ClazzSvc.RequireMember(homework.ClassID, userID); err != nil {
		return nil, err
	}
	s.lockIfExpired(homework)

	sub, err := s.HomeworkRepo.FindCurrentSubmission(homeworkID, userID)
	if err == gorm.ErrRecordNotFound {
		if homework.Status == model.HomeworkLocked {
			return nil, util.ErrHomeworkLocked
		}
		sub = &model.HomeworkSubmission{
			HomeworkID:     homeworkID,
			UserID:         userID,
			AttemptNumber:  1,
			LastActivityAt: time.Now(),
			Status:         model.SubmissionInProgress,
		}
		if err := s.HomeworkRepo.CreateSubmission(sub); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if sub.Status == model.SubmissionSubmitted {
		return nil, util.ErrAlreadySubmitted
	}

	if req.Answers != nil {
		raw, err := json.Marshal(req.Answers)
		if err != nil {
			return nil, err
		}
		sub.Answers = raw
	}
	if req.AudioURL != "" {
		sub.AudioURL = req.AudioURL
	}

	score, maxScore := s.grade(homework, req)
	sub.Score = score
	sub.MaxScore = maxScore

	now := time.Now()
	sub.Status = model.SubmissionSubmitted
	sub.SubmittedAt = &now
	sub.LastActivityAt = now

	if err := s.HomeworkRepo.UpdateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *HomeworkService) grade(homework *model.Homework, req SubmitHomeworkReq) (int, int) {
	if homework.Type == model.HomeworkSpeaking {
		if req.AudioURL == "" {
			return 0, 100
		}
		score, err := s.AISvc.AssessPronunciation(homework.Title, req.AudioURL)
		if err != nil {
			logger.Log.Warn("pronunciation assessment failed, scoring 0",
				zap.Uint("homeworkId", homework.ID), zap.Error(err))
			return 0, 100
		}
		return score, 100
	}

	var key map[string]string
	if len(homework.AnswerKey) == 0 {
		return 0, 0
	}
	if err := json.Unmarshal(homework.AnswerKey, &key); err != nil {
		return 0, 0
	}

	score := 0
	for q, expected := range key {
		if got, ok := req.Answers[q]; ok {
			if strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(expected)) {
				score++
			}
		}
	}
	return score, len(key)
}

func (s *HomeworkService) GetSubmission(submissionID, callerID uint, role model.UserRole) (*model.HomeworkSubmission, error) {
	sub, err := s.HomeworkRepo.FindSubmissionByID(submissionID)
	if err != nil {
		return nil, util.ErrSubmissionNotFound
	}

	if sub.UserID == callerID {
		return sub, nil
	}
	if role == model.Student {
		return nil, util.ErrPermissionDenied
	}

	// 教师需要拥有该作业所属的班级
	homework, err := s.HomeworkRepo.FindByID(sub.HomeworkID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ClazzSvc.OwnedClazz(homework.ClassID, callerID); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *HomeworkService) ListMyAttempts(homeworkID, userID uint) ([]model.HomeworkSubmission, error) {
	homework, err := s.HomeworkRepo.FindByID(homeworkID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}
	if err := s.ClazzSvc.RequireMember(homework.ClassID, userID); err != nil {
		return nil, err
	}
	return s.HomeworkRepo.ListSubmissionsByUser(homeworkID, userID)
}

func (s *HomeworkService) ListSubmissions(homeworkID, teacherID uint, page, limit int) ([]repository.SubmissionRow, int64, error) {
	if _, err := s.OwnedHomework(homeworkID, teacherID); err != nil {
		return nil, 0, err
	}
	return s.HomeworkRepo.ListSubmissionsByHomework(homeworkID, page, limit)
}
