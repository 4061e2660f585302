package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ormanet/lumeo-api/internal/middleware"
	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// AuthHandler handles account registration, sessions, and admin login.
type AuthHandler struct {
	authService *service.AuthService
	throttle    *middleware.LoginThrottle
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		throttle:    middleware.NewLoginThrottle(),
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "email and password are required")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case utils.ErrEmailTaken:
			utils.Error(c, 409, "EMAIL_TAKEN", "An account with this email already exists")
		case utils.ErrPasswordTooShort:
			utils.Error(c, 400, "WEAK_PASSWORD", "Password must be at least 8 characters")
		case utils.ErrInvalidCredentials:
			utils.Error(c, 400, "INVALID_REQUEST", "email is required")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Registration failed")
		}
		return
	}

	utils.Success(c, 201, "Account created", gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// Login verifies credentials and opens a session. Failed attempts are rate
// limited per IP.
func (h *AuthHandler) Login(c *gin.Context) {
	if h.throttle.Blocked(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		if err == utils.ErrInvalidCredentials {
			h.throttle.RecordFailure(c.ClientIP())
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Login failed")
		return
	}
	h.throttle.Reset(c.ClientIP())

	utils.Success(c, 200, "Logged in", result)
}

// Logout invalidates the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("session_token")
	if token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			utils.Error(c, 500, "INTERNAL_ERROR", "Logout failed")
			return
		}
	}
	utils.Success(c, 200, "Logged out", nil)
}

// Me returns the account behind the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(c.GetInt64("user_id"))
	if err != nil {
		if err == utils.ErrUserNotFound {
			utils.Error(c, 404, "NOT_FOUND", "Account not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load account")
		return
	}
	utils.Success(c, 200, "Account retrieved", gin.H{"user": user})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ChangePassword replaces the account password after verifying the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "currentPassword and newPassword are required")
		return
	}

	err := h.authService.ChangePassword(c.GetInt64("user_id"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch err {
		case utils.ErrWrongPassword:
			utils.Error(c, 401, "WRONG_PASSWORD", "Current password is incorrect")
		case utils.ErrPasswordTooShort:
			utils.Error(c, 400, "WEAK_PASSWORD", "Password must be at least 8 characters")
		case utils.ErrUserNotFound:
			utils.Error(c, 404, "NOT_FOUND", "Account not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Password change failed")
		}
		return
	}

	utils.Success(c, 200, "Password changed", nil)
}

// AdminLogin verifies admin credentials and issues a signed JWT for the admin
// surface.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	if h.throttle.Blocked(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, false)
	if err != nil {
		if err == utils.ErrInvalidCredentials {
			h.throttle.RecordFailure(c.ClientIP())
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Login failed")
		return
	}
	if !result.User.IsAdmin {
		utils.Error(c, 403, "FORBIDDEN", "Account is not an administrator")
		return
	}
	h.throttle.Reset(c.ClientIP())

	token, err := utils.GenerateJWT(result.User.ID, result.User.Email)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Token generation failed")
		return
	}

	utils.Success(c, 200, "Logged in", gin.H{
		"token": token,
		"user":  result.User,
	})
}
