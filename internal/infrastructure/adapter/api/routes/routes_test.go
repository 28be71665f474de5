package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authUseCase "github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/auth"
	transactionUseCase "github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/transaction"
	userUseCase "github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/routes"
	authadapter "github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/repository"
	timeadapter "github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/time"
)

// newTestServer wires the full API against an isolated sqlite database
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := database.NewTestDB(t)
	log := logger.NewNoopLogger()
	tp := timeadapter.NewRealTimeProvider()

	userRepo := repository.NewUserRepository(db, tp, log)
	txnRepo := repository.NewTransactionRepository(db, log)
	uow := database.NewUnitOfWork(db, log, tp)

	hasher := authadapter.NewBcryptHasher(bcrypt.MinCost)
	tokens := authadapter.NewJWTManager("test-secret", time.Hour, tp)

	authService := authUseCase.NewService(userRepo, hasher, tokens, tp, log)
	transactionService := transactionUseCase.NewService(uow, userRepo, txnRepo, tp, log)
	userService := userUseCase.NewService(uow, userRepo, tp, log)

	router := gin.New()
	routes.SetupMiddlewares(router, log)
	routes.SetupRoutes(router,
		authService,
		handler.NewAuthHandler(authService, tp, log),
		handler.NewUserHandler(userService, tp, log),
		handler.NewTransactionHandler(transactionService, tp, log),
		log,
	)
	return router
}

// doJSON performs a request and decodes the response envelope
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return w.Code, envelope
}

func data(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	d, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "missing data in %v", envelope)
	return d
}

func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	status, envelope := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullName":     "Jane Doe",
		"emailAddress": email,
		"password":     "secret-password",
	})
	require.Equal(t, http.StatusCreated, status, envelope)
	token, ok := data(t, envelope)["authToken"].(string)
	require.True(t, ok)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(t)

	status, body := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router := newTestServer(t)

	status, envelope := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullName":     "Jane Doe",
		"emailAddress": "jane@example.com",
		"password":     "secret-password",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Account created successfully! Welcome to Finance Tracker.", envelope["message"])

	user := data(t, envelope)["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", user["emailAddress"])
	assert.Equal(t, "personal", user["accountType"])
	assert.EqualValues(t, 0, user["currentBalance"])

	t.Run("Duplicate registration rejected", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
			"fullName":     "Second Jane",
			"emailAddress": "jane@example.com",
			"password":     "another-password",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, envelope["success"])
	})

	t.Run("Login returns a fresh token", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
			"emailAddress": "jane@example.com",
			"password":     "secret-password",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Login successful! Welcome back.", envelope["message"])
		assert.NotEmpty(t, data(t, envelope)["authToken"])
	})

	t.Run("Wrong password is unauthorized", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
			"emailAddress": "jane@example.com",
			"password":     "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, false, envelope["success"])
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestServer(t)

	for _, path := range []string{"/api/users/profile", "/api/transactions", "/api/auth/profile"} {
		status, envelope := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "Access denied. No authentication token provided.", envelope["message"])
	}

	status, _ := doJSON(t, router, http.MethodGet, "/api/users/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestTransactionLifecycle(t *testing.T) {
	router := newTestServer(t)
	token := registerUser(t, router, "jane@example.com")

	var transactionID string

	t.Run("Credit raises the balance", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/transactions", token, gin.H{
			"transactionType": "credit",
			"amount":          500.00,
			"description":     "Salary deposit",
			"category":        "Income",
		})
		require.Equal(t, http.StatusCreated, status, envelope)

		txn := data(t, envelope)["transaction"].(map[string]any)
		transactionID = txn["transactionId"].(string)
		assert.Equal(t, "+$500.00", txn["formattedAmount"])
		assert.EqualValues(t, 0, txn["balanceBefore"])
		assert.EqualValues(t, 500, txn["balanceAfter"])
		assert.EqualValues(t, 500, txn["currentBalance"])
	})

	t.Run("Covered debit lowers the balance", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/transactions", token, gin.H{
			"transactionType": "debit",
			"amount":          125.25,
			"description":     "Groceries",
			"category":        "Food",
		})
		require.Equal(t, http.StatusCreated, status)
		txn := data(t, envelope)["transaction"].(map[string]any)
		assert.EqualValues(t, 374.75, txn["currentBalance"])
	})

	t.Run("Uncovered debit rejected", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/transactions", token, gin.H{
			"transactionType": "debit",
			"amount":          1000.00,
			"description":     "Rent payment",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, envelope["success"])
		assert.Equal(t, "Insufficient funds for this transaction", envelope["message"])
	})

	t.Run("Listing pages the ledger", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodGet, "/api/transactions?limit=1&page=1", token, nil)
		require.Equal(t, http.StatusOK, status)

		d := data(t, envelope)
		pagination := d["pagination"].(map[string]any)
		assert.EqualValues(t, 2, pagination["totalCount"])
		assert.EqualValues(t, 2, pagination["totalPages"])
		assert.Equal(t, true, pagination["hasNextPage"])
		assert.Len(t, d["transactions"], 1)
	})

	t.Run("Invalid pagination rejected", func(t *testing.T) {
		for _, query := range []string{"limit=101", "page=0", "limit=0", "page=abc"} {
			status, envelope := doJSON(t, router, http.MethodGet, "/api/transactions?"+query, token, nil)
			assert.Equal(t, http.StatusBadRequest, status, query)
			assert.Equal(t, "Invalid pagination parameters. Page must be >= 1, limit must be between 1 and 100.", envelope["message"], query)
		}
	})

	t.Run("Statistics fold the active ledger", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodGet, "/api/transactions/stats", token, nil)
		require.Equal(t, http.StatusOK, status)

		stats := data(t, envelope)["statistics"].(map[string]any)
		assert.EqualValues(t, 2, stats["totalTransactions"])
		assert.EqualValues(t, 374.75, stats["netAmount"])
	})

	t.Run("Update edits the mutable fields", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPut, "/api/transactions/"+transactionID, token, gin.H{
			"description": "Edited salary deposit",
		})
		require.Equal(t, http.StatusOK, status)
		txn := data(t, envelope)["transaction"].(map[string]any)
		assert.Equal(t, "Edited salary deposit", txn["description"])
		assert.EqualValues(t, 500, txn["amount"])
	})

	t.Run("Malformed transaction ID rejected", func(t *testing.T) {
		status, _ := doJSON(t, router, http.MethodGet, "/api/transactions/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Delete hides the entry but keeps the balance", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodDelete, "/api/transactions/"+transactionID, token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Transaction deleted successfully", envelope["message"])

		d := data(t, envelope)
		assert.Equal(t, transactionID, d["deletedTransactionId"])
		assert.EqualValues(t, 374.75, d["currentBalance"])

		status, _ = doJSON(t, router, http.MethodGet, "/api/transactions/"+transactionID, token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestBalanceEndpoints(t *testing.T) {
	router := newTestServer(t)
	token := registerUser(t, router, "jane@example.com")

	t.Run("Fresh account reads zero", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodGet, "/api/users/balance", token, nil)
		require.Equal(t, http.StatusOK, status)

		d := data(t, envelope)
		assert.EqualValues(t, 0, d["currentBalance"])
		assert.Equal(t, "USD", d["currency"])
	})

	t.Run("Adjustment moves the balance directly", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPut, "/api/users/balance", token, gin.H{
			"amount":      250.50,
			"description": "Opening balance",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Balance updated successfully", envelope["message"])

		d := data(t, envelope)
		assert.EqualValues(t, 0, d["previousBalance"])
		assert.EqualValues(t, 250.50, d["currentBalance"])
		assert.Equal(t, "Opening balance", d["description"])
	})

	t.Run("Adjustment below zero rejected", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPut, "/api/users/balance", token, gin.H{
			"amount": -1000.00,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, envelope["success"])
	})
}

func TestProfileEndpoints(t *testing.T) {
	router := newTestServer(t)
	token := registerUser(t, router, "jane@example.com")

	t.Run("Read profile", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodGet, "/api/users/profile", token, nil)
		require.Equal(t, http.StatusOK, status)

		user := data(t, envelope)["user"].(map[string]any)
		assert.Equal(t, "Jane Doe", user["fullName"])
		assert.Equal(t, true, user["isAccountActive"])
	})

	t.Run("Update profile", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPut, "/api/users/profile", token, gin.H{
			"fullName":    "Janet Doe",
			"accountType": "business",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Profile updated successfully", envelope["message"])

		user := data(t, envelope)["user"].(map[string]any)
		assert.Equal(t, "Janet Doe", user["fullName"])
		assert.Equal(t, "business", user["accountType"])
	})

	t.Run("Rejected account type never reaches the domain", func(t *testing.T) {
		status, _ := doJSON(t, router, http.MethodPut, "/api/users/profile", token, gin.H{
			"accountType": "crypto",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
