package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"amazonia/internal/models"
	"amazonia/internal/policy"
	"amazonia/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	users map[string]*models.User
	delay time.Duration
}

func (s *stubSource) FindByUID(uid string) (*models.User, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if user, ok := s.users[uid]; ok {
		return user, nil
	}
	return nil, errors.New("record not found")
}

func guardedRouter(guard *Guard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cms", guard.Require(policy.CapEnterCMS), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CurrentUser(c).UID})
	})
	router.GET("/admin", guard.Require(policy.CapEnterAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CurrentUser(c).UID})
	})
	return router
}

func newTestGuard(source session.UserSource) *Guard {
	guard := NewGuard(session.NewResolver(source, nil))
	guard.Timeout = 100 * time.Millisecond
	return guard
}

func bearerFor(t *testing.T, uid string) string {
	token, err := GenerateToken(uid, uid+"@amazonia.example")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGuardRedirectsUnauthenticatedToLogin(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	router := guardedRouter(newTestGuard(&stubSource{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cms", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGuardRedirectsUnknownIdentityToLogin(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	router := guardedRouter(newTestGuard(&stubSource{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cms", nil)
	req.Header.Set("Authorization", bearerFor(t, "ghost"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGuardRedirectsToLoginOnResolutionTimeout(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	source := &stubSource{
		users: map[string]*models.User{"u1": {UID: "u1", Role: models.RoleReporter}},
		delay: 500 * time.Millisecond,
	}
	router := guardedRouter(newTestGuard(source))

	start := time.Now()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cms", nil)
	req.Header.Set("Authorization", bearerFor(t, "u1"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Less(t, time.Since(start), 400*time.Millisecond, "guard must not wait past its timeout")
}

func TestGuardRedirectsInsufficientRoleToHome(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	source := &stubSource{users: map[string]*models.User{
		"u1": {UID: "u1", Role: models.RoleReporter},
	}}
	router := guardedRouter(newTestGuard(source))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", bearerFor(t, "u1"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestGuardAllowsAuthorizedRole(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	source := &stubSource{users: map[string]*models.User{
		"u1": {UID: "u1", Role: models.RoleReporter},
		"e1": {UID: "e1", Role: models.RoleEditor},
	}}
	router := guardedRouter(newTestGuard(source))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cms", nil)
	req.Header.Set("Authorization", bearerFor(t, "u1"))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", bearerFor(t, "e1"))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVisitorIsDeniedCMS(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	source := &stubSource{users: map[string]*models.User{
		"v1": {UID: "v1", Role: models.RoleVisitor},
	}}
	router := guardedRouter(newTestGuard(source))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cms", nil)
	req.Header.Set("Authorization", bearerFor(t, "v1"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
