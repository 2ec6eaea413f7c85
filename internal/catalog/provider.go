package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the requested product or variant does not exist.
var ErrNotFound = errors.New("catalog: product not found")

// Kind distinguishes the two product shapes the price provider understands.
// The shape is resolved once here, at the boundary; downstream computation
// never re-checks it.
type Kind string

const (
	KindSimple   Kind = "simple"
	KindVariable Kind = "variable"
)

// Product carries the price inputs for one catalog product.
type Product struct {
	ID        uuid.UUID
	Slug      string
	Kind      Kind
	BasePrice decimal.Decimal
	// PixPrice is the individually configured instant-payment price, nil
	// when the product has none.
	PixPrice *decimal.Decimal
}

// Variant carries the price inputs for one variant of a variable product.
type Variant struct {
	ID        uuid.UUID
	BasePrice decimal.Decimal
	PixPrice  *decimal.Decimal
}

// PriceProvider exposes the host catalog's price fields. The core never
// computes "the" price of a variable product itself: it asks for the
// variants and prices each one independently.
type PriceProvider interface {
	ProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	ProductBySlug(ctx context.Context, slug string) (Product, error)
	Variants(ctx context.Context, productID uuid.UUID) ([]Variant, error)
	VariantByID(ctx context.Context, id uuid.UUID) (Variant, error)
}
