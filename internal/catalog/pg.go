package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGProvider reads price fields from the host shop's Postgres catalog.
type PGProvider struct {
	Pool *pgxpool.Pool
}

const productColumns = `id, slug, kind, base_price, pix_price`

// ProductByID loads one product by primary key.
func (p PGProvider) ProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	row := p.Pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		pgUUID(id))
	return scanProduct(row)
}

// ProductBySlug loads one product by its URL slug.
func (p PGProvider) ProductBySlug(ctx context.Context, slug string) (Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Product{}, ErrNotFound
	}
	row := p.Pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1`,
		slug)
	return scanProduct(row)
}

// Variants lists the variants of a variable product in stable order.
func (p PGProvider) Variants(ctx context.Context, productID uuid.UUID) ([]Variant, error) {
	rows, err := p.Pool.Query(ctx,
		`SELECT id, base_price, pix_price FROM product_variants WHERE product_id = $1 ORDER BY sort_order, id`,
		pgUUID(productID))
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	return variants, nil
}

// VariantByID loads one variant by primary key.
func (p PGProvider) VariantByID(ctx context.Context, id uuid.UUID) (Variant, error) {
	row := p.Pool.QueryRow(ctx,
		`SELECT id, base_price, pix_price FROM product_variants WHERE id = $1`,
		pgUUID(id))
	v, err := scanVariant(row)
	if err != nil {
		return Variant{}, err
	}
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		id        pgtype.UUID
		slug      string
		kind      string
		basePrice pgtype.Numeric
		pixPrice  pgtype.Numeric
	)
	if err := row.Scan(&id, &slug, &kind, &basePrice, &pixPrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("scan product: %w", err)
	}
	product := Product{
		ID:        uuidFromPG(id),
		Slug:      slug,
		Kind:      parseKind(kind),
		BasePrice: numericToDecimal(basePrice),
	}
	if pixPrice.Valid {
		d := numericToDecimal(pixPrice)
		product.PixPrice = &d
	}
	return product, nil
}

func scanVariant(row rowScanner) (Variant, error) {
	var (
		id        pgtype.UUID
		basePrice pgtype.Numeric
		pixPrice  pgtype.Numeric
	)
	if err := row.Scan(&id, &basePrice, &pixPrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Variant{}, ErrNotFound
		}
		return Variant{}, fmt.Errorf("scan variant: %w", err)
	}
	variant := Variant{
		ID:        uuidFromPG(id),
		BasePrice: numericToDecimal(basePrice),
	}
	if pixPrice.Valid {
		d := numericToDecimal(pixPrice)
		variant.PixPrice = &d
	}
	return variant, nil
}

func parseKind(kind string) Kind {
	if Kind(strings.ToLower(strings.TrimSpace(kind))) == KindVariable {
		return KindVariable
	}
	return KindSimple
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func uuidFromPG(id pgtype.UUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return uuid.UUID(id.Bytes)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
