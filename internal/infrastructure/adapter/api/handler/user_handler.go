package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	userUseCase "github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/middleware"
)

// UserHandler handles profile and balance HTTP requests
type UserHandler struct {
	userService  *userUseCase.Service
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userService *userUseCase.Service, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserHandler {
	return &UserHandler{
		userService:  userService,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, dto.OK(
		"User profile and balance retrieved successfully",
		gin.H{"user": dto.NewUserData(user, h.timeProvider.Now())},
	))
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), user.ID, userUseCase.UpdateProfileInput{
		FullName:    req.FullName,
		AccountType: req.AccountType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		"Profile updated successfully",
		gin.H{"user": dto.NewUserData(updated, h.timeProvider.Now())},
	))
}

// GetBalance handles GET /api/users/balance
func (h *UserHandler) GetBalance(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, dto.OK(
		"Balance retrieved successfully",
		dto.BalanceData{
			CurrentBalance: user.CurrentBalance().InexactFloat64(),
			Currency:       "USD",
			LastUpdated:    user.UpdatedAt,
		},
	))
}

// AdjustBalance handles PUT /api/users/balance. The signed delta goes
// straight to the balance; no ledger entry is created.
func (h *UserHandler) AdjustBalance(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.userService.AdjustBalance(
		c.Request.Context(),
		user.ID,
		decimal.NewFromFloat(req.Amount),
		req.Description,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		"Balance updated successfully",
		dto.NewBalanceAdjustmentData(result),
	))
}
