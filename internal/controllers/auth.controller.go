package controllers

import (
	"net/http"
	"strings"

	"amazonia/internal/middleware"
	"amazonia/internal/models"
	"amazonia/internal/repository"
	"amazonia/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Error codes the login/registration flow translates to user-readable
// messages. Anything unmapped falls back to a generic message.
const (
	errEmailInUse        = "email-in-use"
	errInvalidEmail      = "invalid-email"
	errUserNotFound      = "user-not-found"
	errWrongPassword     = "wrong-password"
	errWeakPassword      = "weak-password"
	errInvalidCredential = "invalid-credential"
)

var authErrorMessages = map[string]string{
	errEmailInUse:        "That email address is already registered",
	errInvalidEmail:      "The email address is not valid",
	errUserNotFound:      "No account exists for that email",
	errWrongPassword:     "The password is incorrect",
	errWeakPassword:      "The password must be at least 6 characters",
	errInvalidCredential: "The email or password is incorrect",
}

func authErrorMessage(code string) string {
	if msg, ok := authErrorMessages[code]; ok {
		return msg
	}
	return "Something went wrong, please try again"
}

type AuthController struct {
	users    repository.UserRepository
	resolver *session.Resolver
}

func NewAuthController(users repository.UserRepository, resolver *session.Resolver) *AuthController {
	return &AuthController{users: users, resolver: resolver}
}

type registerPayload struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"nombre" binding:"required"`
	LastName  string `json:"apellido" binding:"required"`
	Phone     string `json:"numero"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Create an account with the default Visitante role
// @Tags auth
// @Accept json
// @Produce json
// @Param data body registerPayload true "Registration data"
// @Success 201 {object} map[string]interface{} "Account created"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		code := errInvalidCredential
		if strings.Contains(err.Error(), "Email") {
			code = errInvalidEmail
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": authErrorMessage(code),
			"error":   code,
		})
		return
	}

	if len(payload.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": authErrorMessage(errWeakPassword),
			"error":   errWeakPassword,
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := ac.users.FindByEmail(email); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": authErrorMessage(errEmailInUse),
			"error":   errEmailInUse,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": authErrorMessage(""),
			"error":   err.Error(),
		})
		return
	}

	user := models.User{
		UID:       uuid.NewString(),
		Email:     email,
		Password:  string(hash),
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
		Role:      models.RoleVisitor,
	}

	if err := ac.users.Create(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": authErrorMessage(""),
			"error":   err.Error(),
		})
		return
	}

	token, err := middleware.GenerateToken(user.UID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": authErrorMessage(""),
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Account created successfully",
		"data":    gin.H{"token": token, "usuario": user},
	})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param data body loginPayload true "Credentials"
// @Success 200 {object} map[string]interface{} "Session token and usuario"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": authErrorMessage(errInvalidCredential),
			"error":   errInvalidCredential,
		})
		return
	}

	user, err := ac.users.FindByEmail(strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": authErrorMessage(errUserNotFound),
			"error":   errUserNotFound,
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": authErrorMessage(errWrongPassword),
			"error":   errWrongPassword,
		})
		return
	}

	token, err := middleware.GenerateToken(user.UID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": authErrorMessage(""),
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged in successfully",
		"data":    gin.H{"token": token, "usuario": user},
	})
}

// Me returns the usuario document for the authenticated identity.
func (ac *AuthController) Me(c *gin.Context) {
	uid := c.GetString(middleware.ContextUIDKey)

	user, err := ac.resolver.Await(c.Request.Context(), uid, 0)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No usuario document for this identity",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User retrieved successfully",
		"data":    user,
	})
}

type profilePayload struct {
	FirstName string `json:"nombre" binding:"required"`
	LastName  string `json:"apellido" binding:"required"`
	Phone     string `json:"numero"`
}

// UpdateProfile lets the authenticated user change their own name and
// phone number. Email and role are not editable here.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.ContextUIDKey)

	var payload profilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if err := ac.users.UpdateProfile(uid, payload.FirstName, payload.LastName, payload.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update profile",
			"error":   err.Error(),
		})
		return
	}
	ac.resolver.Invalidate(c.Request.Context(), uid)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    nil,
	})
}

// Logout clears the cached session entry for the identity. The token
// itself simply expires.
func (ac *AuthController) Logout(c *gin.Context) {
	uid := c.GetString(middleware.ContextUIDKey)
	ac.resolver.Invalidate(c.Request.Context(), uid)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
		"data":    nil,
	})
}
