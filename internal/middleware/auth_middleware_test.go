package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ccasilihan/gradebook/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewAuthMiddleware(jwtService).JWTAuth())
	router.GET("/protected", func(c *gin.Context) {
		id := c.GetInt64(ContextStudentID)
		name := c.GetString(ContextStudentName)
		c.JSON(http.StatusOK, gin.H{"id": id, "name": name})
	})
	return router
}

func TestJWTAuthMissingHeader(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour})
	router := newTestRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour})
	router := newTestRouter(jwtService)

	for _, header := range []string{"garbage", "Bearer garbage", "Bearer a.b.c"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("header %q: expected 403, got %d", header, w.Code)
		}
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: -time.Minute})
	token, _, err := jwtService.GenerateToken(1, "Alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	router := newTestRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour})
	token, _, err := jwtService.GenerateToken(42, "Alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	router := newTestRouter(jwtService)

	// Both the prefixed and the raw header form must authenticate.
	for _, header := range []string{"Bearer " + token, token} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("header %q: expected 200, got %d (%s)", header, w.Code, w.Body.String())
		}
	}
}
