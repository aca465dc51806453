package service

import (
	"errors"
	"strings"
	"time"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

// QuizService 课堂测验的生命周期控制
// 状态机: pending -> active -> ended（终态），isPaused 仅在 active 期间可切换
type QuizService struct {
	QuizRepo   *repository.QuizRepository
	ClazzSvc   *ClazzService
	FolderRepo *repository.FolderRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, clazzSvc *ClazzService, folderRepo *repository.FolderRepository) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		ClazzSvc:   clazzSvc,
		FolderRepo: folderRepo,
	}
}

type QuizReq struct {
	Title    *string `json:"title"`
	ClassID  *uint   `json:"classId"`
	FolderID *uint   `json:"folderId"`
}

func (s *QuizService) CreateQuiz(creatorID uint, req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.ClassID == nil || req.FolderID == nil {
		return nil, errors.New("classId and folderId are required")
	}

	if _, err := s.ClazzSvc.OwnedClazz(*req.ClassID, creatorID); err != nil {
		return nil, err
	}
	if _, err := s.FolderRepo.FindByID(*req.FolderID); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:     *req.Title,
		Status:    model.QuizPending,
		ClassID:   *req.ClassID,
		FolderID:  *req.FolderID,
		CreatorID: creatorID,
	}

	// 加入码撞库重试
	for i := 0; i < 5; i++ {
		quiz.Code = generateCode(6)
		if exists, err := s.QuizRepo.CodeExists(quiz.Code); err == nil && !exists {
			break
		}
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListClassQuizzes(classID, teacherID uint) ([]repository.QuizListRow, error) {
	if _, err := s.ClazzSvc.OwnedClazz(classID, teacherID); err != nil {
		return nil, err
	}
	return s.QuizRepo.ListByClass(classID)
}

// OwnedQuiz 所有权检查：经由所属班级校验教师身份
func (s *QuizService) OwnedQuiz(quizID, teacherID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ClazzSvc.OwnedClazz(quiz.ClassID, teacherID); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Start 仅允许 pending -> active，其余状态报错且状态不变
func (s *QuizService) Start(quizID, teacherID uint) (*model.Quiz, error) {
	quiz, err := s.OwnedQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}

	switch quiz.Status {
	case model.QuizActive:
		return nil, util.ErrQuizAlreadyStarted
	case model.QuizEnded:
		return nil, util.ErrQuizAlreadyEnded
	}

	now := time.Now()
	quiz.Status = model.QuizActive
	quiz.StartedAt = &now
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// SetPaused 暂停/恢复，仅在 active 期间有效
func (s *QuizService) SetPaused(quizID, teacherID uint, paused bool) (*model.Quiz, error) {
	quiz, err := s.OwnedQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}

	if quiz.Status != model.QuizActive {
		return nil, util.ErrQuizNotActive
	}

	quiz.IsPaused = paused
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// End 结束测验并级联关闭所有未完成的结果
func (s *QuizService) End(quizID, teacherID uint) (*model.Quiz, error) {
	quiz, err := s.OwnedQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}

	switch quiz.Status {
	case model.QuizPending:
		return nil, util.ErrQuizNotStarted
	case model.QuizEnded:
		return nil, util.ErrQuizAlreadyEnded
	}

	now := time.Now()
	quiz.Status = model.QuizEnded
	quiz.IsPaused = false
	quiz.EndedAt = &now
	if err := s.QuizRepo.EndWithCascade(quiz, now); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Join 学生通过加入码进入测验，懒创建本人的成绩记录
func (s *QuizService) Join(code string, userID uint) (*model.Quiz, *model.QuizResult, error) {
	quiz, err := s.QuizRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, nil, util.ErrQuizNotFound
	}

	if err := s.ClazzSvc.RequireMember(quiz.ClassID, userID); err != nil {
		return nil, nil, err
	}

	switch quiz.Status {
	case model.QuizPending:
		return nil, nil, util.ErrQuizNotStarted
	case model.QuizEnded:
		return nil, nil, util.ErrQuizAlreadyEnded
	}

	result, err := s.QuizRepo.FindResultByQuizAndUser(quiz.ID, userID)
	if err == gorm.ErrRecordNotFound {
		maxScore, cntErr := s.FolderRepo.CountVocabularies(quiz.FolderID)
		if cntErr != nil {
			return nil, nil, cntErr
		}
		result = &model.QuizResult{
			QuizID:    quiz.ID,
			UserID:    userID,
			MaxScore:  int(maxScore),
			Status:    model.QuizResultInProgress,
			StartedAt: time.Now(),
		}
		if err := s.QuizRepo.CreateResult(result); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	return quiz, result, nil
}

// GetVocabularies 按状态门禁的词表读取
func (s *QuizService) GetVocabularies(quizID, userID uint) ([]model.Vocabulary, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.ClazzSvc.RequireMember(quiz.ClassID, userID); err != nil {
		return nil, err
	}

	switch quiz.Status {
	case model.QuizPending:
		return nil, util.ErrQuizNotStarted
	case model.QuizEnded:
		return nil, util.ErrQuizAlreadyEnded
	}

	return s.FolderRepo.ListVocabularies(quiz.FolderID)
}

type AnswerReq struct {
	ResultID       uint   `json:"resultId" binding:"required"`
	VocabularyID   uint   `json:"vocabularyId"`
	QuestionText   string `json:"questionText"`
	QuestionType   string `json:"questionType"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// SubmitAnswer 追加一条不可修改的答题明细并重算分数
// 分数 = 正确明细条数，与提交顺序无关
func (s *QuizService) SubmitAnswer(userID uint, req AnswerReq) (*model.QuizResult, error) {
	result, err := s.QuizRepo.FindResultByID(req.ResultID)
	if err != nil {
		return nil, util.ErrResultNotFound
	}
	if result.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	quiz, err := s.QuizRepo.FindByID(result.QuizID)
	if err != nil {
		return nil, err
	}

	switch quiz.Status {
	case model.QuizPending:
		return nil, util.ErrQuizNotStarted
	case model.QuizEnded:
		return nil, util.ErrQuizAlreadyEnded
	}
	if quiz.IsPaused {
		return nil, util.ErrQuizPaused
	}

	isCorrect := req.IsCorrect
	if req.CorrectAnswer != "" {
		// 客观题在服务端比对，不信任客户端的判定
		isCorrect = strings.EqualFold(
			strings.TrimSpace(req.SelectedAnswer),
			strings.TrimSpace(req.CorrectAnswer),
		)
	}

	detail := &model.QuizAnswerDetail{
		ResultID:       result.ID,
		VocabularyID:   req.VocabularyID,
		QuestionText:   req.QuestionText,
		QuestionType:   req.QuestionType,
		SelectedAnswer: req.SelectedAnswer,
		CorrectAnswer:  req.CorrectAnswer,
		IsCorrect:      isCorrect,
	}
	if err := s.QuizRepo.CreateAnswerDetail(detail); err != nil {
		return nil, err
	}

	correct, err := s.QuizRepo.CountCorrectAnswers(result.ID)
	if err != nil {
		return nil, err
	}
	result.Score = int(correct)
	if err := s.QuizRepo.UpdateResult(result); err != nil {
		return nil, err
	}

	return result, nil
}

// FinishResult 学生提前交卷
func (s *QuizService) FinishResult(resultID, userID uint) (*model.QuizResult, error) {
	result, err := s.QuizRepo.FindResultByID(resultID)
	if err != nil {
		return nil, util.ErrResultNotFound
	}
	if result.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if result.Status == model.QuizResultSubmitted {
		return result, nil
	}

	now := time.Now()
	result.Status = model.QuizResultSubmitted
	result.EndedAt = &now
	if err := s.QuizRepo.UpdateResult(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *QuizService) GetMyResult(quizID, userID uint) (*model.QuizResult, []model.QuizAnswerDetail, error) {
	result, err := s.QuizRepo.FindResultByQuizAndUser(quizID, userID)
	if err != nil {
		return nil, nil, util.ErrResultNotFound
	}

	details, err := s.QuizRepo.ListAnswerDetails(result.ID)
	if err != nil {
		return nil, nil, err
	}
	return result, details, nil
}

func (s *QuizService) ListResults(quizID, teacherID uint) ([]repository.QuizResultRow, error) {
	if _, err := s.OwnedQuiz(quizID, teacherID); err != nil {
		return nil, err
	}
	return s.QuizRepo.ListResultsByQuiz(quizID)
}

func (s *QuizService) DeleteQuiz(quizID, teacherID uint) error {
	if _, err := s.OwnedQuiz(quizID, teacherID); err != nil {
		return err
	}
	return s.QuizRepo.Delete(quizID)
}
