package model

import "time"

type QuizStatus string

const (
	QuizPending QuizStatus = "pending"
	QuizActive  QuizStatus = "active"
	QuizEnded   QuizStatus = "ended"
)

type QuizResultStatus string

const (
	QuizResultInProgress QuizResultStatus = "in_progress"
	QuizResultSubmitted  QuizResultStatus = "submitted"
)

// Quiz 课堂实时测验
// 状态只能向前流转 pending -> active -> ended，isPaused 仅在 active 期间有意义
// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title     string     `gorm:"size:200;not null" json:"title"`
	Code      string     `gorm:"size:8;uniqueIndex;not null" json:"code"` // 学生加入用的短码
	Status    QuizStatus `gorm:"size:10;default:'pending'" json:"status"`
	IsPaused  bool       `gorm:"default:false" json:"isPaused"`
	ClassID   uint       `gorm:"index;not null" json:"classId"`
	FolderID  uint       `gorm:"index;not null" json:"folderId"`
	CreatorID uint       `gorm:"index;not null" json:"creatorId"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizResult 一个用户在一次测验中的成绩记录，加入时懒创建
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	QuizID    uint             `gorm:"uniqueIndex:idx_quiz_user;not null" json:"quizId"`
	UserID    uint             `gorm:"uniqueIndex:idx_quiz_user;not null" json:"userId"`
	Score     int              `gorm:"default:0" json:"score"`
	MaxScore  int              `gorm:"default:0" json:"maxScore"`
	Status    QuizResultStatus `gorm:"size:15;default:'in_progress'" json:"status"`
	StartedAt time.Time        `json:"startedAt"`
	EndedAt   *time.Time       `json:"endedAt,omitempty"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// QuizAnswerDetail 每道题一条，只追加不修改，score 由正确条数重新统计得出
type QuizAnswerDetail struct {
	BaseModel
	ResultID       uint   `gorm:"index;not null" json:"resultId"`
	VocabularyID   uint   `gorm:"index" json:"vocabularyId"`
	QuestionText   string `gorm:"size:255" json:"questionText"`
	QuestionType   string `gorm:"size:20" json:"questionType"`
	SelectedAnswer string `gorm:"size:255" json:"selectedAnswer"`
	CorrectAnswer  string `gorm:"size:255" json:"correctAnswer"`
	IsCorrect      bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuizAnswerDetail) TableName() string {
	return "quiz_answer_details"
}
