package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotClassMember   = errors.New("not a member of this class")

	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizAlreadyStarted = errors.New("quiz already started")
	ErrQuizNotStarted     = errors.New("quiz not started")
	ErrQuizAlreadyEnded   = errors.New("quiz already ended")
	ErrQuizPaused         = errors.New("quiz is paused")
	ErrQuizNotActive      = errors.New("quiz not active")
	ErrResultNotFound     = errors.New("quiz result not found")

	ErrHomeworkNotFound   = errors.New("homework not found")
	ErrHomeworkLocked     = errors.New("homework is locked")
	ErrDeadlinePassed     = errors.New("homework deadline has passed")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("attempt already submitted")
)
