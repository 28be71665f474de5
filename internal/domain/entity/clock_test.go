package entity

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
)

// fakeClock is a TimeProvider pinned to a fixed instant
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time                     { return c.now }
func (c *fakeClock) Since(t time.Time) coreport.Duration { return coreport.Duration(c.now.Sub(t)) }
func (c *fakeClock) Sleep(coreport.Duration)             {}
func (c *fakeClock) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
