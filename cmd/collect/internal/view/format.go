package view

import (
	"context"
	"strconv"
	"time"
)

const apiTimeout = 15 * time.Second

// FormatAmount renders an amount in whole currency units.
func FormatAmount(amount int64) string {
	return strconv.FormatInt(amount, 10)
}

// APICtx returns a context with a standard timeout for backend calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
