package service

import (
	"testing"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/pkg/database"
	"vocab_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库在多连接下会各自为政，收紧到单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// testEnv 统一的测试夹具：一个教师、一个班级学生、一个词库(3个词条)
type testEnv struct {
	db          *gorm.DB
	clazzSvc    *ClazzService
	quizSvc     *QuizService
	homeworkSvc *HomeworkService

	teacher *model.User
	student *model.User
	clazz   *model.Clazz
	folder  *model.Folder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	teacher := &model.User{Name: "王老师", Email: "teacher@example.com", Password: "x", Role: model.Teacher}
	student := &model.User{Name: "小明", Email: "student@example.com", Password: "x", Role: model.Student}
	if err := db.Create(teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}

	clazz := &model.Clazz{Name: "初一1班", InviteCode: "ABC234", TeacherID: teacher.ID}
	if err := db.Create(clazz).Error; err != nil {
		t.Fatalf("seed clazz: %v", err)
	}
	if err := db.Create(&model.ClassMember{ClassID: clazz.ID, UserID: student.ID}).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}

	folder := &model.Folder{Name: "Unit 1", OwnerID: teacher.ID}
	if err := db.Create(folder).Error; err != nil {
		t.Fatalf("seed folder: %v", err)
	}
	words := []model.Vocabulary{
		{FolderID: folder.ID, Word: "apple", Meaning: "苹果", Order: 1},
		{FolderID: folder.ID, Word: "banana", Meaning: "香蕉", Order: 2},
		{FolderID: folder.ID, Word: "cherry", Meaning: "樱桃", Order: 3},
	}
	if err := db.Create(&words).Error; err != nil {
		t.Fatalf("seed vocabularies: %v", err)
	}

	clazzSvc := NewClazzService(repository.NewClazzRepository(db))
	folderRepo := repository.NewFolderRepository(db)
	quizSvc := NewQuizService(repository.NewQuizRepository(db), clazzSvc, folderRepo)
	aiSvc := NewAIService(config.AIConfig{BaseURL: "http://127.0.0.1:1", MaxRetries: 1})
	homeworkSvc := NewHomeworkService(repository.NewHomeworkRepository(db), clazzSvc, aiSvc)

	return &testEnv{
		db:          db,
		clazzSvc:    clazzSvc,
		quizSvc:     quizSvc,
		homeworkSvc: homeworkSvc,
		teacher:     teacher,
		student:     student,
		clazz:       clazz,
		folder:      folder,
	}
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }
