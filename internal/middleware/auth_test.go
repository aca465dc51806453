package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.CookieName = "token"
	return cfg
}

func testToken(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	user := &model.User{Name: "测试", Email: "t@example.com", Role: role}
	user.ID = 7
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func newAuthRouter(cfg *config.Config, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, cfg, model.Student))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: testToken(t, cfg, model.Student)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareAcceptsQueryToken(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)

	req := httptest.NewRequest("GET", "/protected?token="+testToken(t, cfg, model.Student), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareRejectsMissingAndInvalidToken(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
}

func TestRoleMiddlewareEnforcesRole(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg, RoleMiddleware(model.Teacher, model.Admin))

	// 学生被拒
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, cfg, model.Student))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("student status = %d, want 403", w.Code)
	}

	// 教师放行
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, cfg, model.Teacher))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("teacher status = %d, want 200", w.Code)
	}
}

func TestRoleMiddlewareAdminPassesEverything(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg, RoleMiddleware(model.Teacher))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, cfg, model.Admin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}

func TestTryAuthMiddlewareAllowsGuests(t *testing.T) {
	cfg := testConfig()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", TryAuthMiddleware(cfg), func(c *gin.Context) {
		if util.GetUserFromContext(c) != nil {
			c.String(http.StatusOK, "user")
			return
		}
		c.String(http.StatusOK, "guest")
	})

	req := httptest.NewRequest("GET", "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "guest" {
		t.Errorf("body = %q, want guest", w.Body.String())
	}

	req = httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, cfg, model.Student))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "user" {
		t.Errorf("body = %q, want user", w.Body.String())
	}
}
