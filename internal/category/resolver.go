// Package category adapts the external expense classifier. Classification
// is an enhancement, never a blocking dependency: every failure mode maps
// to ErrUnavailable and the caller falls back to a manually entered
// category without surfacing an error to the end user.
package category

import (
	"context"
	"errors"

	"github.com/sohail/spendora/internal/money"
)

// ErrUnavailable reports that the classifier could not produce a label
// (timeout, transport failure, or a non-2xx response).
var ErrUnavailable = errors.New("category classifier unavailable")

// Resolver maps an expense description and amount to a category label.
type Resolver interface {
	Resolve(ctx context.Context, description string, amount money.Money) (string, error)
}

// Disabled is a Resolver for deployments without a classifier endpoint.
type Disabled struct{}

// Resolve always reports the classifier as unavailable.
func (Disabled) Resolve(ctx context.Context, description string, amount money.Money) (string, error) {
	return "", ErrUnavailable
}
