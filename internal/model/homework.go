package model

import (
	"encoding/json"
	"time"
)

type HomeworkType string

const (
	HomeworkListening HomeworkType = "listening"
	HomeworkSpeaking  HomeworkType = "speaking"
	HomeworkSpelling  HomeworkType = "spelling"
	HomeworkChoice    HomeworkType = "choice"
)

type HomeworkStatus string

const (
	HomeworkActive HomeworkStatus = "active"
	HomeworkLocked HomeworkStatus = "locked"
)

type SubmissionStatus string

const (
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionSubmitted  SubmissionStatus = "submitted"
)

// Homework 作业，截止后由读取路径惰性锁定，没有后台定时器
// swagger:model Homework
type Homework struct {
	BaseModel
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"size:500" json:"description"`
	Type        HomeworkType    `gorm:"size:20;not null" json:"type"`
	ClassID     uint            `gorm:"index;not null" json:"classId"`
	FolderID    uint            `gorm:"index;not null" json:"folderId"`
	CreatorID   uint            `gorm:"index;not null" json:"creatorId"`
	Deadline    time.Time       `gorm:"not null" json:"deadline"`
	Status      HomeworkStatus  `gorm:"size:10;default:'active'" json:"status"`
	AnswerKey   json.RawMessage `gorm:"type:json" json:"-"` // 题目 -> 标准答案
}

func (Homework) TableName() string {
	return "homeworks"
}

// HomeworkSubmission 每个 (作业, 用户, 第N次尝试) 一行
// 重做不覆盖旧行，attemptNumber 严格递增；timeSpentSeconds 只增不减
// swagger:model HomeworkSubmission
type HomeworkSubmission struct {
	BaseModel
	HomeworkID       uint             `gorm:"uniqueIndex:idx_homework_user_attempt;not null" json:"homeworkId"`
	UserID           uint             `gorm:"uniqueIndex:idx_homework_user_attempt;not null" json:"userId"`
	AttemptNumber    int              `gorm:"uniqueIndex:idx_homework_user_attempt;not null" json:"attemptNumber"`
	TimeSpentSeconds int              `gorm:"default:0" json:"timeSpentSeconds"`
	LastActivityAt   time.Time        `json:"lastActivityAt"`
	Status           SubmissionStatus `gorm:"size:15;default:'in_progress'" json:"status"`
	Score            int              `gorm:"default:0" json:"score"`
	MaxScore         int              `gorm:"default:0" json:"maxScore"`
	Answers          json.RawMessage  `gorm:"type:json" json:"answers"`
	AudioURL         string           `gorm:"size:255" json:"audioUrl"` // 口语作业的录音地址
	SubmittedAt      *time.Time       `json:"submittedAt,omitempty"`
}

func (HomeworkSubmission) TableName() string {
	return "homework_submissions"
}
