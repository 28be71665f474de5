package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/auth"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/middleware"
)

// AuthHandler handles registration, login and the authenticated profile
type AuthHandler struct {
	authService  *auth.Service
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(authService *auth.Service, timeProvider coreport.TimeProvider, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), auth.RegisterInput{
		FullName:     req.FullName,
		EmailAddress: req.EmailAddress,
		AccountType:  req.AccountType,
		Password:     req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(
		"Account created successfully! Welcome to Finance Tracker.",
		dto.AuthData{
			User:      dto.NewUserData(result.User, h.timeProvider.Now()),
			AuthToken: result.AuthToken,
		},
	))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), auth.LoginInput{
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		"Login successful! Welcome back.",
		dto.AuthData{
			User:      dto.NewUserData(result.User, h.timeProvider.Now()),
			AuthToken: result.AuthToken,
		},
	))
}

// Profile handles GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, dto.OK(
		"User profile retrieved successfully",
		gin.H{"user": dto.NewUserData(user, h.timeProvider.Now())},
	))
}
