package service

import (
	"strings"
	"testing"
	"time"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/util"
)

func createTestQuiz(t *testing.T, env *testEnv) *model.Quiz {
	t.Helper()
	quiz, err := env.quizSvc.CreateQuiz(env.teacher.ID, QuizReq{
		Title:    strPtr("Unit 1 单词测验"),
		ClassID:  uintPtr(env.clazz.ID),
		FolderID: uintPtr(env.folder.ID),
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func TestCreateQuizStartsPending(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)

	if quiz.Status != model.QuizPending {
		t.Errorf("status = %s, want pending", quiz.Status)
	}
	if quiz.Code == "" {
		t.Error("join code should be generated")
	}
	if quiz.StartedAt != nil {
		t.Error("startedAt should be unset before start")
	}
}

func TestCreateQuizRequiresOwnedClass(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quizSvc.CreateQuiz(env.student.ID, QuizReq{
		Title:    strPtr("越权测验"),
		ClassID:  uintPtr(env.clazz.ID),
		FolderID: uintPtr(env.folder.ID),
	})
	if err != util.ErrPermissionDenied {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestStartOnlyFromPending(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)

	started, err := env.quizSvc.Start(quiz.ID, env.teacher.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != model.QuizActive {
		t.Errorf("status = %s, want active", started.Status)
	}
	if started.StartedAt == nil {
		t.Error("startedAt should be set")
	}

	// 二次 start 必须失败且状态不变
	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != util.ErrQuizAlreadyStarted {
		t.Errorf("second start err = %v, want ErrQuizAlreadyStarted", err)
	}

	var reloaded model.Quiz
	if err := env.db.First(&reloaded, quiz.ID).Error; err != nil {
		t.Fatalf("reload quiz: %v", err)
	}
	if reloaded.Status != model.QuizActive {
		t.Errorf("status after failed restart = %s, want active", reloaded.Status)
	}

	if _, err := env.quizSvc.End(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != util.ErrQuizAlreadyEnded {
		t.Errorf("start after end err = %v, want ErrQuizAlreadyEnded", err)
	}
}

func TestPauseRequiresActive(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)

	if _, err := env.quizSvc.SetPaused(quiz.ID, env.teacher.ID, true); err != util.ErrQuizNotActive {
		t.Errorf("pause pending err = %v, want ErrQuizNotActive", err)
	}

	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	paused, err := env.quizSvc.SetPaused(quiz.ID, env.teacher.ID, true)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if !paused.IsPaused {
		t.Error("isPaused should be true")
	}

	resumed, err := env.quizSvc.SetPaused(quiz.ID, env.teacher.ID, false)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.IsPaused {
		t.Error("isPaused should be false after resume")
	}

	if _, err := env.quizSvc.End(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := env.quizSvc.SetPaused(quiz.ID, env.teacher.ID, true); err != util.ErrQuizNotActive {
		t.Errorf("pause ended err = %v, want ErrQuizNotActive", err)
	}
}

func TestEndFromPendingRejected(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)

	if _, err := env.quizSvc.End(quiz.ID, env.teacher.ID); err != util.ErrQuizNotStarted {
		t.Errorf("end pending err = %v, want ErrQuizNotStarted", err)
	}
}

func TestEndWhilePausedClearsPauseFlag(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)

	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := env.quizSvc.SetPaused(quiz.ID, env.teacher.ID, true); err != nil {
		t.Fatalf("pause: %v", err)
	}

	ended, err := env.quizSvc.End(quiz.ID, env.teacher.ID)
	if err != nil {
		t.Fatalf("end paused quiz: %v", err)
	}
	if ended.Status != model.QuizEnded {
		t.Errorf("status = %s, want ended", ended.Status)
	}
	if ended.IsPaused {
		t.Error("isPaused should be cleared on end")
	}
	if ended.EndedAt == nil {
		t.Error("endedAt should be set")
	}
}

func TestJoinGatesOnStatus(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)

	if _, _, err := env.quizSvc.Join(quiz.Code, env.student.ID); err != util.ErrQuizNotStarted {
		t.Errorf("join pending err = %v, want ErrQuizNotStarted", err)
	}

	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	_, result, err := env.quizSvc.Join(quiz.Code, env.student.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if result.MaxScore != 3 {
		t.Errorf("maxScore = %d, want 3 (folder word count)", result.MaxScore)
	}
	if result.Status != model.QuizResultInProgress {
		t.Errorf("result status = %s, want in_progress", result.Status)
	}

	// 重复加入应返回同一条成绩记录
	_, again, err := env.quizSvc.Join(quiz.Code, env.student.ID)
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if again.ID != result.ID {
		t.Errorf("rejoin result id = %d, want %d", again.ID, result.ID)
	}

	if _, err := env.quizSvc.End(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, _, err := env.quizSvc.Join(quiz.Code, env.student.ID); err != util.ErrQuizAlreadyEnded {
		t.Errorf("join ended err = %v, want ErrQuizAlreadyEnded", err)
	}
}

func TestJoinRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)

	outsider := &model.User{Name: "路人", Email: "outsider@example.com", Password: "x", Role: model.Student}
	if err := env.db.Create(outsider).Error; err != nil {
		t.Fatalf("seed outsider: %v", err)
	}

	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := env.quizSvc.Join(quiz.Code, outsider.ID); err != util.ErrNotClassMember {
		t.Errorf("join by outsider err = %v, want ErrNotClassMember", err)
	}
}

func TestJoinCodeIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)
	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	padded := "  " + strings.ToLower(quiz.Code) + " "
	if _, _, err := env.quizSvc.Join(padded, env.student.ID); err != nil {
		t.Errorf("join with padded lowercase code: %v", err)
	}
}

func TestSubmitAnswerScoresByCorrectCount(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)
	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, result, err := env.quizSvc.Join(quiz.Code, env.student.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	// 大小写和首尾空白不影响判定
	r1, err := env.quizSvc.SubmitAnswer(env.student.ID, AnswerReq{
		ResultID:       result.ID,
		QuestionText:   "苹果",
		SelectedAnswer: " Apple ",
		CorrectAnswer:  "apple",
	})
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	if r1.Score != 1 {
		t.Errorf("score = %d, want 1", r1.Score)
	}

	// 错误作答不计分，客户端的 isCorrect 不被信任
	r2, err := env.quizSvc.SubmitAnswer(env.student.ID, AnswerReq{
		ResultID:       result.ID,
		QuestionText:   "香蕉",
		SelectedAnswer: "cherry",
		CorrectAnswer:  "banana",
		IsCorrect:      true,
	})
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	if r2.Score != 1 {
		t.Errorf("score = %d, want 1 after wrong answer", r2.Score)
	}

	r3, err := env.quizSvc.SubmitAnswer(env.student.ID, AnswerReq{
		ResultID:       result.ID,
		QuestionText:   "樱桃",
		SelectedAnswer: "cherry",
		CorrectAnswer:  "cherry",
	})
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	if r3.Score != 2 {
		t.Errorf("score = %d, want 2", r3.Score)
	}
}

func TestSubmitAnswerBlockedWhilePaused(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)
	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, result, err := env.quizSvc.Join(quiz.Code, env.student.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := env.quizSvc.SetPaused(quiz.ID, env.teacher.ID, true); err != nil {
		t.Fatalf("pause: %v", err)
	}

	_, err = env.quizSvc.SubmitAnswer(env.student.ID, AnswerReq{
		ResultID:       result.ID,
		SelectedAnswer: "apple",
		CorrectAnswer:  "apple",
	})
	if err != util.ErrQuizPaused {
		t.Errorf("err = %v, want ErrQuizPaused", err)
	}

	// 恢复后可以继续作答
	if _, err := env.quizSvc.SetPaused(quiz.ID, env.teacher.ID, false); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if _, err := env.quizSvc.SubmitAnswer(env.student.ID, AnswerReq{
		ResultID:       result.ID,
		SelectedAnswer: "apple",
		CorrectAnswer:  "apple",
	}); err != nil {
		t.Errorf("submit after resume: %v", err)
	}
}

func TestSubmitAnswerOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)
	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, result, err := env.quizSvc.Join(quiz.Code, env.student.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	_, err = env.quizSvc.SubmitAnswer(env.teacher.ID, AnswerReq{ResultID: result.ID})
	if err != util.ErrPermissionDenied {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestEndCascadesOpenResults(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)
	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	second := &model.User{Name: "小红", Email: "second@example.com", Password: "x", Role: model.Student}
	if err := env.db.Create(second).Error; err != nil {
		t.Fatalf("seed second student: %v", err)
	}
	if err := env.db.Create(&model.ClassMember{ClassID: env.clazz.ID, UserID: second.ID}).Error; err != nil {
		t.Fatalf("seed second member: %v", err)
	}

	_, r1, err := env.quizSvc.Join(quiz.Code, env.student.ID)
	if err != nil {
		t.Fatalf("join 1: %v", err)
	}
	if _, _, err := env.quizSvc.Join(quiz.Code, second.ID); err != nil {
		t.Fatalf("join 2: %v", err)
	}

	// 其中一人提前交卷
	if _, err := env.quizSvc.FinishResult(r1.ID, env.student.ID); err != nil {
		t.Fatalf("finish: %v", err)
	}

	if _, err := env.quizSvc.End(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	var results []model.QuizResult
	if err := env.db.Where("quiz_id = ?", quiz.ID).Find(&results).Error; err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Status != model.QuizResultSubmitted {
			t.Errorf("result %d status = %s, want submitted", r.ID, r.Status)
		}
		if r.EndedAt == nil {
			t.Errorf("result %d endedAt should be set", r.ID)
		}
	}
}

func TestFinishResultIdempotent(t *testing.T) {
	env := newTestEnv(t)
	quiz := createTestQuiz(t, env)
	if _, err := env.quizSvc.Start(quiz.ID, env.teacher.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, result, err := env.quizSvc.Join(quiz.Code, env.student.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	first, err := env.quizSvc.FinishResult(result.ID, env.student.ID)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	second, err := env.quizSvc.FinishResult(result.ID, env.student.ID)
	if err != nil {
		t.Fatalf("second finish: %v", err)
	}
	if second.Status != model.QuizResultSubmitted {
		t.Errorf("status = %s, want submitted", second.Status)
	}
	if second.EndedAt == nil {
		t.Fatal("endedAt should stay set")
	}
	if second.EndedAt.Sub(*first.EndedAt) > time.Second {
		t.Error("repeated finish should not move endedAt")
	}
}
