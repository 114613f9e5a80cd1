package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"amazonia/internal/controllers"
	"amazonia/internal/middleware"
	"amazonia/internal/models"
	"amazonia/internal/repository"
	"amazonia/internal/session"
	"amazonia/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthController() (*controllers.AuthController, *mocks.MockUserRepository) {
	mockUsers := new(mocks.MockUserRepository)
	resolver := session.NewResolver(mockUsers, nil)
	controller := controllers.NewAuthController(mockUsers, resolver)
	return controller, mockUsers
}

// asIdentity injects the token claims the way AuthMiddleware does.
func asIdentity(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUIDKey, uid)
		c.Set(middleware.ContextEmailKey, uid+"@amazonia.example")
		c.Next()
	}
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"email":    "nueva@amazonia.example",
		"password": "contraseña-segura",
		"nombre":   "Nueva",
		"apellido": "Reportera",
		"numero":   "3001234567",
	}
}

func TestRegister(t *testing.T) {
	t.Run("new account starts as Visitante", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "test-secret")
		controller, mockUsers := setupAuthController()
		mockUsers.On("FindByEmail", "nueva@amazonia.example").Return(nil, repository.ErrNotFound)
		mockUsers.On("Create", mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleVisitor && u.UID != ""
		})).Return(nil)

		router := setupTestRouter()
		router.POST("/auth/register", controller.Register)

		w := performJSON(router, "POST", "/auth/register", registerBody())
		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		mockUsers.AssertExpectations(t)
	})

	t.Run("weak password", func(t *testing.T) {
		controller, mockUsers := setupAuthController()

		body := registerBody()
		body["password"] = "corta"

		router := setupTestRouter()
		router.POST("/auth/register", controller.Register)

		w := performJSON(router, "POST", "/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "weak-password", response["error"])
		mockUsers.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("email already registered", func(t *testing.T) {
		controller, mockUsers := setupAuthController()
		mockUsers.On("FindByEmail", "nueva@amazonia.example").
			Return(&models.User{UID: "u9", Email: "nueva@amazonia.example"}, nil)

		router := setupTestRouter()
		router.POST("/auth/register", controller.Register)

		w := performJSON(router, "POST", "/auth/register", registerBody())
		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "email-in-use", response["error"])
		mockUsers.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("malformed email fails binding", func(t *testing.T) {
		controller, _ := setupAuthController()

		body := registerBody()
		body["email"] = "no-es-un-correo"

		router := setupTestRouter()
		router.POST("/auth/register", controller.Register)

		w := performJSON(router, "POST", "/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("contraseña-segura"), bcrypt.MinCost)
	account := &models.User{
		UID:      "u1",
		Email:    "marcela@amazonia.example",
		Password: string(hash),
		Role:     models.RoleEditor,
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "test-secret")
		controller, mockUsers := setupAuthController()
		mockUsers.On("FindByEmail", "marcela@amazonia.example").Return(account, nil)

		router := setupTestRouter()
		router.POST("/auth/login", controller.Login)

		w := performJSON(router, "POST", "/auth/login", map[string]interface{}{
			"email":    "marcela@amazonia.example",
			"password": "contraseña-segura",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])
	})

	t.Run("unknown account", func(t *testing.T) {
		controller, mockUsers := setupAuthController()
		mockUsers.On("FindByEmail", "nadie@amazonia.example").Return(nil, repository.ErrNotFound)

		router := setupTestRouter()
		router.POST("/auth/login", controller.Login)

		w := performJSON(router, "POST", "/auth/login", map[string]interface{}{
			"email":    "nadie@amazonia.example",
			"password": "lo-que-sea",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "user-not-found", response["error"])
	})

	t.Run("wrong password", func(t *testing.T) {
		controller, mockUsers := setupAuthController()
		mockUsers.On("FindByEmail", "marcela@amazonia.example").Return(account, nil)

		router := setupTestRouter()
		router.POST("/auth/login", controller.Login)

		w := performJSON(router, "POST", "/auth/login", map[string]interface{}{
			"email":    "marcela@amazonia.example",
			"password": "equivocada",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "wrong-password", response["error"])
	})

	t.Run("email is matched case-insensitively", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "test-secret")
		controller, mockUsers := setupAuthController()
		mockUsers.On("FindByEmail", "marcela@amazonia.example").Return(account, nil)

		router := setupTestRouter()
		router.POST("/auth/login", controller.Login)

		w := performJSON(router, "POST", "/auth/login", map[string]interface{}{
			"email":    "Marcela@Amazonia.example",
			"password": "contraseña-segura",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMe(t *testing.T) {
	t.Run("returns the usuario document", func(t *testing.T) {
		controller, mockUsers := setupAuthController()
		mockUsers.On("FindByUID", "u1").Return(reporter("u1"), nil)

		router := setupTestRouter()
		router.GET("/auth/me", asIdentity("u1"), controller.Me)

		w := performJSON(router, "GET", "/auth/me", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "u1", data["uid"])
	})

	t.Run("identity without usuario document", func(t *testing.T) {
		controller, mockUsers := setupAuthController()
		mockUsers.On("FindByUID", "ghost").Return(nil, repository.ErrNotFound)

		router := setupTestRouter()
		router.GET("/auth/me", asIdentity("ghost"), controller.Me)

		w := performJSON(router, "GET", "/auth/me", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	controller, mockUsers := setupAuthController()
	mockUsers.On("UpdateProfile", "u1", "Marcela", "Rojas", "3009876543").Return(nil)

	router := setupTestRouter()
	router.PUT("/auth/profile", asIdentity("u1"), controller.UpdateProfile)

	w := performJSON(router, "PUT", "/auth/profile", map[string]interface{}{
		"nombre":   "Marcela",
		"apellido": "Rojas",
		"numero":   "3009876543",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	mockUsers.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	controller, _ := setupAuthController()

	router := setupTestRouter()
	router.POST("/auth/logout", asIdentity("u1"), controller.Logout)

	w := performJSON(router, "POST", "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
