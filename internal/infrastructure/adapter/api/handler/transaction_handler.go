package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	transactionUseCase "github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/middleware"
)

// TransactionHandler handles ledger HTTP requests
type TransactionHandler struct {
	transactionService *transactionUseCase.Service
	timeProvider       coreport.TimeProvider
	logger             coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	transactionService *transactionUseCase.Service,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		timeProvider:       timeProvider,
		logger:             logger,
	}
}

// Create handles POST /api/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	transactionDate, err := parseOptionalDate(req.TransactionDate)
	if err != nil {
		respondError(c, errs.NewValidationError(
			"transactionDate", "Transaction date must be RFC3339 or YYYY-MM-DD", *req.TransactionDate))
		return
	}

	result, err := h.transactionService.Create(c.Request.Context(), user.ID, transactionUseCase.CreateInput{
		TransactionType: req.TransactionType,
		Amount:          decimal.NewFromFloat(req.Amount),
		Description:     req.Description,
		Category:        req.Category,
		TransactionDate: transactionDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(
		"Transaction created successfully",
		gin.H{"transaction": dto.CreatedTransactionData{
			TransactionData: dto.NewTransactionData(result.Transaction, h.timeProvider.Now()),
			CurrentBalance:  result.CurrentBalance.InexactFloat64(),
		}},
	))
}

// List handles GET /api/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := queryInt(c, "page")
	if err != nil {
		respondError(c, errs.ErrInvalidPagination)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		respondError(c, errs.ErrInvalidPagination)
		return
	}

	result, err := h.transactionService.List(c.Request.Context(), user.ID, transactionUseCase.ListInput{
		Page:            page,
		Limit:           limit,
		TransactionType: c.Query("transactionType"),
		Category:        c.Query("category"),
		StartDate:       c.Query("startDate"),
		EndDate:         c.Query("endDate"),
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.Query("sortOrder"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.timeProvider.Now()
	transactions := make([]dto.TransactionData, 0, len(result.Transactions))
	for _, txn := range result.Transactions {
		transactions = append(transactions, dto.NewTransactionData(txn, now))
	}

	c.JSON(http.StatusOK, dto.OK(
		"Transactions retrieved successfully",
		dto.TransactionListData{
			Transactions: transactions,
			Pagination:   dto.NewPaginationData(result.Pagination),
		},
	))
}

// Stats handles GET /api/transactions/stats
func (h *TransactionHandler) Stats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.transactionService.Stats(c.Request.Context(), user.ID, transactionUseCase.StatsInput{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		"Transaction statistics retrieved successfully",
		gin.H{"statistics": dto.NewStatisticsData(stats)},
	))
}

// Get handles GET /api/transactions/:transactionId
func (h *TransactionHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	transactionID, err := transactionUseCase.ParseID(c.Param("transactionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	txn, err := h.transactionService.Get(c.Request.Context(), user.ID, transactionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		"Transaction retrieved successfully",
		gin.H{"transaction": dto.NewTransactionData(txn, h.timeProvider.Now())},
	))
}

// Update handles PUT /api/transactions/:transactionId
func (h *TransactionHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	transactionID, err := transactionUseCase.ParseID(c.Param("transactionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	txn, err := h.transactionService.Update(c.Request.Context(), user.ID, transactionID, transactionUseCase.UpdateInput{
		Description:     req.Description,
		Category:        req.Category,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		"Transaction updated successfully",
		gin.H{"transaction": dto.NewTransactionData(txn, h.timeProvider.Now())},
	))
}

// Delete handles DELETE /api/transactions/:transactionId. Soft delete:
// the entry is hidden but the balance stays where it is.
func (h *TransactionHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	transactionID, err := transactionUseCase.ParseID(c.Param("transactionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.transactionService.Delete(c.Request.Context(), user.ID, transactionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		"Transaction deleted successfully",
		gin.H{
			"deletedTransactionId": result.DeletedTransactionID.String(),
			"currentBalance":       result.CurrentBalance.InexactFloat64(),
		},
	))
}

// parseOptionalDate parses the optional transaction date field
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return transactionUseCase.ParseDate(*raw, "transaction date")
}

// queryInt reads an optional integer query parameter. Nil means the
// parameter was absent; an explicit value is passed through for the
// query engine to bounds-check, so ?page=0 stays distinguishable from
// no page at all.
func queryInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
