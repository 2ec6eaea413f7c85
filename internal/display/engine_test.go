package display_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/catalog"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/display"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/placement"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/settings"
)

type stubProvider struct {
	products map[uuid.UUID]catalog.Product
	slugs    map[string]catalog.Product
	variants map[uuid.UUID][]catalog.Variant
}

func (s *stubProvider) ProductByID(_ context.Context, id uuid.UUID) (catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (s *stubProvider) ProductBySlug(_ context.Context, slug string) (catalog.Product, error) {
	p, ok := s.slugs[slug]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (s *stubProvider) Variants(_ context.Context, productID uuid.UUID) ([]catalog.Variant, error) {
	return s.variants[productID], nil
}

func (s *stubProvider) VariantByID(_ context.Context, id uuid.UUID) (catalog.Variant, error) {
	for _, list := range s.variants {
		for _, v := range list {
			if v.ID == id {
				return v, nil
			}
		}
	}
	return catalog.Variant{}, catalog.ErrNotFound
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newService(t *testing.T, provider catalog.PriceProvider, overrides map[settings.Domain]map[string]any) *display.Service {
	t.Helper()
	store := settings.NewMemoryStore()
	ctx := context.Background()
	for domain, values := range overrides {
		require.NoError(t, store.Set(ctx, domain, values))
	}
	settingsSvc, err := settings.NewService(store)
	require.NoError(t, err)

	svc, err := display.NewService(display.ServiceConfig{
		Settings: settingsSvc,
		Catalog:  provider,
	})
	require.NoError(t, err)
	return svc
}

func simpleProduct(price, pix string) (catalog.Product, *stubProvider) {
	p := catalog.Product{
		ID:        uuid.New(),
		Slug:      "produto-teste",
		Kind:      catalog.KindSimple,
		BasePrice: dec(price),
	}
	if pix != "" {
		p.PixPrice = decPtr(pix)
	}
	return p, &stubProvider{
		products: map[uuid.UUID]catalog.Product{p.ID: p},
		slugs:    map[string]catalog.Product{p.Slug: p},
	}
}

func TestProductPageFragmentsOrderedAndComplete(t *testing.T) {
	product, provider := simpleProduct("1000.00", "900.00")
	svc := newService(t, provider, map[settings.Domain]map[string]any{
		settings.DomainInstallmentRules: {"enabled": "1"},
	})

	page, err := svc.ProductPage(context.Background(), product.ID, placement.NewRenderContext())
	require.NoError(t, err)

	require.Len(t, page.Fragments, 3)
	require.Equal(t, placement.KindSummary, page.Fragments[0].Kind)
	require.Equal(t, placement.KindPixPrice, page.Fragments[1].Kind)
	require.Equal(t, placement.KindTable, page.Fragments[2].Kind)
	for i := 1; i < len(page.Fragments); i++ {
		require.Less(t, page.Fragments[i-1].Rank, page.Fragments[i].Rank)
	}

	pix, ok := page.Fragments[1].Payload.(display.PixPayload)
	require.True(t, ok)
	require.True(t, pix.PixPrice.Equal(dec("900.00")))
	require.True(t, pix.DiscountPercent.Equal(dec("10")))

	require.Equal(t, "#e8f5e9", page.Design.Pix.BackgroundColor)
}

func TestProductPageDedupesAcrossCalls(t *testing.T) {
	product, provider := simpleProduct("1000.00", "900.00")
	svc := newService(t, provider, map[settings.Domain]map[string]any{
		settings.DomainInstallmentRules: {"enabled": "1"},
	})

	rc := placement.NewRenderContext()
	first, err := svc.ProductPage(context.Background(), product.ID, rc)
	require.NoError(t, err)
	require.Len(t, first.Fragments, 3)

	// A second pass over the same render emits nothing new.
	second, err := svc.ProductPage(context.Background(), product.ID, rc)
	require.NoError(t, err)
	require.Empty(t, second.Fragments)
}

func TestProductPageRespectsOrderForConfiguredPosition(t *testing.T) {
	product, provider := simpleProduct("500.00", "")
	svc := newService(t, provider, map[settings.Domain]map[string]any{
		settings.DomainInstallmentRules: {
			"enabled":          "1",
			"product_position": "after_add_to_cart",
		},
	})

	page, err := svc.ProductPage(context.Background(), product.ID, placement.NewRenderContext())
	require.NoError(t, err)
	require.NotEmpty(t, page.Fragments)
	// after_add_to_cart remaps to the before-purchase anchor.
	require.Equal(t, 35, page.Fragments[0].Rank)
}

func TestProductPageVariableProductUsesCheapestVariant(t *testing.T) {
	product := catalog.Product{ID: uuid.New(), Slug: "variavel", Kind: catalog.KindVariable}
	v1 := catalog.Variant{ID: uuid.New(), BasePrice: dec("300.00")}
	v2 := catalog.Variant{ID: uuid.New(), BasePrice: dec("200.00"), PixPrice: decPtr("180.00")}
	provider := &stubProvider{
		products: map[uuid.UUID]catalog.Product{product.ID: product},
		slugs:    map[string]catalog.Product{product.Slug: product},
		variants: map[uuid.UUID][]catalog.Variant{product.ID: {v1, v2}},
	}
	svc := newService(t, provider, map[settings.Domain]map[string]any{
		settings.DomainInstallmentRules: {"enabled": "1"},
	})

	page, err := svc.ProductPage(context.Background(), product.ID, placement.NewRenderContext())
	require.NoError(t, err)

	summary, ok := page.Fragments[0].Payload.(display.SummaryPayload)
	require.True(t, ok)
	require.True(t, summary.BasePrice.Equal(dec("200.00")))

	require.Len(t, page.Variants, 2)
	require.Nil(t, page.Variants[0].Pix)
	require.NotNil(t, page.Variants[1].Pix)
	require.True(t, page.Variants[1].Pix.PixPrice.Equal(dec("180.00")))
	require.NotNil(t, page.Variants[0].Summary)
	require.True(t, page.Variants[0].Summary.BasePrice.Equal(dec("300.00")))
}

func TestGalleryCardHonoursToggles(t *testing.T) {
	product, provider := simpleProduct("100.00", "90.00")
	svc := newService(t, provider, map[settings.Domain]map[string]any{
		settings.DomainInstallmentRules: {
			"enabled":           "1",
			"display_locations": map[string]any{"gallery": "1"},
		},
		settings.DomainPricingGlobal: {"show_in_gallery": "1"},
	})

	card, err := svc.GalleryCard(context.Background(), product.ID, placement.NewRenderContext())
	require.NoError(t, err)
	require.Len(t, card.Fragments, 2)
	require.Equal(t, placement.KindSummary, card.Fragments[0].Kind)
	require.Equal(t, placement.KindPixPrice, card.Fragments[1].Kind)

	// Both toggles off: nothing renders.
	svcOff := newService(t, provider, nil)
	card, err = svcOff.GalleryCard(context.Background(), product.ID, placement.NewRenderContext())
	require.NoError(t, err)
	require.Empty(t, card.Fragments)
}

func TestLinesSkipsStaleAndFlagsPix(t *testing.T) {
	product, provider := simpleProvider(t)
	svc := newService(t, provider, map[settings.Domain]map[string]any{
		settings.DomainInstallmentRules: {
			"enabled":           "1",
			"display_locations": map[string]any{"cart": "1"},
		},
	})

	out, err := svc.Lines(context.Background(), display.LocationCart, []display.LineRequest{
		{ProductID: product.ID},
		{ProductID: uuid.New()}, // stale line, product gone
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	require.True(t, out.HasPixProducts)
	require.NotNil(t, out.Lines[0].Pix)
	require.NotNil(t, out.Lines[0].Summary)
}

func simpleProvider(t *testing.T) (catalog.Product, *stubProvider) {
	t.Helper()
	return simpleProduct("250.00", "225.00")
}

func TestLinesRejectsNonLineLocation(t *testing.T) {
	product, provider := simpleProduct("100.00", "")
	svc := newService(t, provider, nil)
	_, err := svc.Lines(context.Background(), display.LocationProduct, []display.LineRequest{{ProductID: product.ID}})
	require.Error(t, err)
}

func TestPixForSharedBySlugAndID(t *testing.T) {
	product, provider := simpleProduct("200.00", "180.00")
	svc := newService(t, provider, nil)

	byID, err := svc.PixFor(context.Background(), product.ID.String(), false)
	require.NoError(t, err)
	require.NotNil(t, byID)

	bySlug, err := svc.PixFor(context.Background(), product.Slug, false)
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	require.True(t, byID.PixPrice.Equal(bySlug.PixPrice))
}

func TestPixForNoDiscountConfigured(t *testing.T) {
	product, provider := simpleProduct("200.00", "")
	svc := newService(t, provider, nil)

	payload, err := svc.PixFor(context.Background(), product.ID.String(), false)
	require.NoError(t, err)
	require.Nil(t, payload)
}
