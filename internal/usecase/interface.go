package usecase

import (
	"context"

	"price-dashboard/internal/domain"
)

// PriceRepository defines the interface for loading the price table.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go PriceRepository
type PriceRepository interface {
	LoadTable(ctx context.Context, path string) (*domain.PriceTable, error)
}
