package service

import (
	"testing"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"
)

func newAuthService(t *testing.T) (*AuthService, *config.Config) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg), cfg
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{Name: "小明", Email: "a@example.com", Password: "secret123", Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "secret123" {
		t.Error("password should be hashed before storage")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	first := &model.User{Name: "甲", Email: "dup@example.com", Password: "secret123", Role: model.Student}
	if err := svc.Register(first); err != nil {
		t.Fatalf("register: %v", err)
	}

	second := &model.User{Name: "乙", Email: "dup@example.com", Password: "secret123", Role: model.Student}
	if err := svc.Register(second); err != util.ErrEmailRegistered {
		t.Errorf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginReturnsValidToken(t *testing.T) {
	svc, cfg := newAuthService(t)

	user := &model.User{Name: "小明", Email: "login@example.com", Password: "secret123", Role: model.Teacher}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login("login@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := util.ParseJWT(token, cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Role != model.Teacher {
		t.Errorf("claims.Role = %s, want teacher", claims.Role)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{Name: "小明", Email: "wrong@example.com", Password: "secret123", Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login("wrong@example.com", "not-the-password"); err == nil {
		t.Error("wrong password should fail")
	}
	if _, err := svc.Login("nobody@example.com", "secret123"); err == nil {
		t.Error("unknown email should fail")
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{Name: "小明", Email: "disabled@example.com", Password: "secret123", Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	stored, err := svc.UserRepo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	stored.Disabled = true
	if err := svc.UserRepo.Update(stored); err != nil {
		t.Fatalf("disable: %v", err)
	}

	if _, err := svc.Login("disabled@example.com", "secret123"); err == nil {
		t.Error("disabled account should not log in")
	}
}
