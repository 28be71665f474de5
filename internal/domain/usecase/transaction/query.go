package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/port/persistence"
)

// Pagination bounds
const (
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Sortable column keys accepted by ListInput.SortBy
var sortableColumns = map[string]struct{}{
	"transactionDate": {},
	"amount":          {},
	"createdAt":       {},
	"category":        {},
}

// Date layouts accepted for filter bounds
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ListInput carries the raw query parameters for a transaction listing.
// Nil page/limit mean the parameter was not supplied; an explicit zero is
// out of bounds and rejected.
type ListInput struct {
	Page            *int
	Limit           *int
	TransactionType string // optional: credit or debit
	Category        string // optional: case-insensitive substring
	StartDate       string // optional: inclusive lower bound
	EndDate         string // optional: inclusive upper bound
	SortBy          string // defaults to transactionDate
	SortOrder       string // asc or desc, defaults to desc
}

// Pagination describes the page of results that was returned
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalCount  int64
	HasNextPage bool
	HasPrevPage bool
	Limit       int
}

// ListResult pairs a page of transactions with its pagination metadata
type ListResult struct {
	Transactions []*entity.Transaction
	Pagination   Pagination
}

// List returns a filtered, sorted page of the user's active transactions
func (s *Service) List(ctx context.Context, userID uuid.UUID, in ListInput) (*ListResult, error) {
	filter, page, limit, err := buildFilter(in)
	if err != nil {
		return nil, err
	}

	items, totalCount, err := s.transactionRepo.ListActive(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list transactions", map[string]any{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return &ListResult{
		Transactions: items,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  totalCount,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
			Limit:       limit,
		},
	}, nil
}

// buildFilter validates the raw listing input and translates it into a
// repository filter plus the normalized page/limit
func buildFilter(in ListInput) (persistence.TransactionFilter, int, int, error) {
	page := DefaultPage
	if in.Page != nil {
		page = *in.Page
	}
	limit := DefaultPageSize
	if in.Limit != nil {
		limit = *in.Limit
	}
	if page < 1 || limit < MinPageSize || limit > MaxPageSize {
		return persistence.TransactionFilter{}, 0, 0, fmt.Errorf(
			"%w: page must be >= 1, limit must be between %d and %d",
			errs.ErrInvalidPagination, MinPageSize, MaxPageSize)
	}

	filter := persistence.TransactionFilter{
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	if in.TransactionType != "" {
		if !entity.IsValidTransactionType(in.TransactionType) {
			return persistence.TransactionFilter{}, 0, 0, errs.NewValidationError(
				"transactionType", "Transaction type must be either credit or debit", in.TransactionType)
		}
		txnType := entity.TransactionType(in.TransactionType)
		filter.Type = &txnType
	}

	filter.Category = in.Category

	start, err := ParseDate(in.StartDate, "start date")
	if err != nil {
		return persistence.TransactionFilter{}, 0, 0, err
	}
	filter.StartDate = start

	end, err := ParseDate(in.EndDate, "end date")
	if err != nil {
		return persistence.TransactionFilter{}, 0, 0, err
	}
	filter.EndDate = end

	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = "transactionDate"
	}
	if _, ok := sortableColumns[sortBy]; !ok {
		return persistence.TransactionFilter{}, 0, 0, errs.NewValidationError(
			"sortBy", "Sort field must be one of transactionDate, amount, createdAt, category", sortBy)
	}
	filter.SortBy = sortBy
	filter.SortDesc = in.SortOrder != "asc"

	return filter, page, limit, nil
}

// ParseDate accepts RFC3339 timestamps or plain dates; an empty value
// means no bound. The API boundary shares it so the accepted layouts
// cannot drift.
func ParseDate(raw, label string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid %s", errs.ErrInvalidDateFormat, label)
}
