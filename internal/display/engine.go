package display

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/catalog"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/installments"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/lock"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/obs"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/pix"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/placement"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/settings"
)

// Fixed ranks for the locations whose relative order is not configurable.
// Summary before pix mirrors the product-page invariant.
const (
	galleryRankSummary = 15
	galleryRankPix     = 20
)

// Service computes display plans. Every result is derived fresh from the
// current catalog and settings; nothing computed here is ever persisted.
type Service struct {
	settings *settings.Service
	catalog  catalog.PriceProvider
	cache    *Cache
	locker   *lock.Locker
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Settings *settings.Service
	Catalog  catalog.PriceProvider
	Cache    *Cache
	Locker   *lock.Locker
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Settings == nil {
		return nil, errors.New("display: settings service is required")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("display: catalog provider is required")
	}
	return &Service{settings: cfg.Settings, catalog: cfg.Catalog, cache: cfg.Cache, locker: cfg.Locker}, nil
}

// ProductPage assembles the single-product-page plan: ordered fragments for
// the product block, plus eagerly computed per-variant payloads for variable
// products. rc gates each fragment kind so overlapping insertion points on
// the host side cannot duplicate output.
func (s *Service) ProductPage(ctx context.Context, productID uuid.UUID, rc *placement.RenderContext) (ProductPage, error) {
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return ProductPage{}, err
	}
	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return ProductPage{}, err
	}

	var variants []catalog.Variant
	if product.Kind == catalog.KindVariable {
		variants, err = s.catalog.Variants(ctx, product.ID)
		if err != nil {
			return ProductPage{}, err
		}
	}

	page := ProductPage{
		ProductID: product.ID,
		Design: DesignSnapshot{
			Pix:          snap.PixDesign,
			Installments: snap.InstallmentDesign,
		},
	}

	basePrice := productBasePrice(product, variants)
	rules := toRuleSet(snap.Rules)
	order := placement.OrderFor(placement.ParsePosition(snap.Rules.ProductPosition))
	plan := installments.Calculate(basePrice, rules)

	if snap.Rules.DisplayLocations.Product {
		if best, ok := plan.Best(); ok && rc.ShouldRender(placement.KindSummary) {
			page.Fragments = append(page.Fragments, Fragment{
				Kind:     placement.KindSummary,
				Location: LocationProduct,
				Rank:     order.SummaryRank,
				Payload:  summaryPayload(basePrice, best),
			})
		}
	}

	if resolved, ok := pix.Resolve(priceContext(basePrice, product.PixPrice, snap.Global)); ok && rc.ShouldRender(placement.KindPixPrice) {
		page.Fragments = append(page.Fragments, Fragment{
			Kind:     placement.KindPixPrice,
			Location: LocationProduct,
			Rank:     order.PixRank,
			Payload:  pixPayload(basePrice, resolved),
		})
	}

	if snap.Rules.DisplayLocations.Product && snap.Rules.ShowTable && len(plan) > 0 && rc.ShouldRender(placement.KindTable) {
		page.Fragments = append(page.Fragments, Fragment{
			Kind:     placement.KindTable,
			Location: LocationProduct,
			Rank:     order.TableRank,
			Payload: TablePayload{
				Options:     plan,
				DisplayType: snap.Rules.TableDisplayType,
				TextBefore:  snap.Rules.TextBefore,
				TextAfter:   snap.Rules.TextAfter,
			},
		})
	}

	sort.SliceStable(page.Fragments, func(i, j int) bool {
		return page.Fragments[i].Rank < page.Fragments[j].Rank
	})

	for _, variant := range variants {
		page.Variants = append(page.Variants, s.variantDisplay(variant, snap, rules))
	}

	countCompute(LocationProduct, len(page.Fragments) > 0)
	return page, nil
}

// variantDisplay computes one variant's payloads. Each variant resolves its
// own price and plan independently of its siblings.
func (s *Service) variantDisplay(variant catalog.Variant, snap settings.Snapshot, rules installments.RuleSet) VariantDisplay {
	out := VariantDisplay{VariantID: variant.ID}

	if resolved, ok := pix.Resolve(priceContext(variant.BasePrice, variant.PixPrice, snap.Global)); ok {
		p := pixPayload(variant.BasePrice, resolved)
		out.Pix = &p
	}

	plan := installments.Calculate(variant.BasePrice, rules)
	if best, ok := plan.Best(); ok && snap.Rules.DisplayLocations.Product {
		sp := summaryPayload(variant.BasePrice, best)
		out.Summary = &sp
		if snap.Rules.ShowTable {
			out.Table = &TablePayload{
				Options:     plan,
				DisplayType: snap.Rules.TableDisplayType,
				TextBefore:  snap.Rules.TextBefore,
				TextAfter:   snap.Rules.TextAfter,
			}
		}
	}
	return out
}

// GalleryCard assembles the plan for one shop-grid card: headline summary
// and pix badge only, in fixed order, each behind its own toggle.
func (s *Service) GalleryCard(ctx context.Context, productID uuid.UUID, rc *placement.RenderContext) (GalleryCard, error) {
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return GalleryCard{}, err
	}
	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return GalleryCard{}, err
	}
	var variants []catalog.Variant
	if product.Kind == catalog.KindVariable {
		variants, err = s.catalog.Variants(ctx, product.ID)
		if err != nil {
			return GalleryCard{}, err
		}
	}

	card := GalleryCard{ProductID: product.ID}
	basePrice := productBasePrice(product, variants)

	if snap.Rules.DisplayLocations.Gallery {
		plan := installments.Calculate(basePrice, toRuleSet(snap.Rules))
		if best, ok := plan.Best(); ok && rc.ShouldRender(placement.KindSummary) {
			card.Fragments = append(card.Fragments, Fragment{
				Kind:     placement.KindSummary,
				Location: LocationGallery,
				Rank:     galleryRankSummary,
				Payload:  summaryPayload(basePrice, best),
			})
		}
	}

	if snap.Global.ShowInGallery {
		if resolved, ok := pix.Resolve(priceContext(basePrice, product.PixPrice, snap.Global)); ok && rc.ShouldRender(placement.KindPixPrice) {
			card.Fragments = append(card.Fragments, Fragment{
				Kind:     placement.KindPixPrice,
				Location: LocationGallery,
				Rank:     galleryRankPix,
				Payload:  pixPayload(basePrice, resolved),
			})
		}
	}

	countCompute(LocationGallery, len(card.Fragments) > 0)
	return card, nil
}

// Lines recomputes the display payloads for cart or checkout lines. Lines
// are independent of each other, so the dedupe gate does not apply: every
// line legitimately repeats the same fragment kinds.
func (s *Service) Lines(ctx context.Context, location Location, reqs []LineRequest) (LinesDisplay, error) {
	if location != LocationCart && location != LocationCheckout {
		return LinesDisplay{}, fmt.Errorf("display: unsupported line location %q", location)
	}
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return LinesDisplay{}, err
	}

	enabled := snap.Rules.DisplayLocations.Cart
	if location == LocationCheckout {
		enabled = snap.Rules.DisplayLocations.Checkout
	}

	rules := toRuleSet(snap.Rules)
	out := LinesDisplay{Lines: make([]LineDisplay, 0, len(reqs))}
	for _, req := range reqs {
		line, err := s.line(ctx, req, snap, rules, enabled)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				// A stale line must not sink the whole cart render.
				continue
			}
			return LinesDisplay{}, err
		}
		if line.Pix != nil {
			out.HasPixProducts = true
		}
		out.Lines = append(out.Lines, line)
	}

	countCompute(location, len(out.Lines) > 0)
	return out, nil
}

func (s *Service) line(ctx context.Context, req LineRequest, snap settings.Snapshot, rules installments.RuleSet, installmentsEnabled bool) (LineDisplay, error) {
	line := LineDisplay{ProductID: req.ProductID, VariantID: req.VariantID}

	var (
		basePrice decimal.Decimal
		pixMeta   *decimal.Decimal
	)
	if req.VariantID != nil {
		variant, err := s.catalog.VariantByID(ctx, *req.VariantID)
		if err != nil {
			return LineDisplay{}, err
		}
		basePrice = variant.BasePrice
		pixMeta = variant.PixPrice
	} else {
		product, err := s.catalog.ProductByID(ctx, req.ProductID)
		if err != nil {
			return LineDisplay{}, err
		}
		basePrice = product.BasePrice
		pixMeta = product.PixPrice
	}

	if resolved, ok := pix.Resolve(priceContext(basePrice, pixMeta, snap.Global)); ok {
		p := pixPayload(basePrice, resolved)
		line.Pix = &p
	}
	if installmentsEnabled {
		if best, ok := installments.Calculate(basePrice, rules).Best(); ok {
			sp := summaryPayload(basePrice, best)
			line.Summary = &sp
		}
	}
	return line, nil
}

// PixFor returns the resolved instant-payment payload for a product, by id
// or slug. This is the shared computation behind the manual-placement entry
// point and the grid query: pure, idempotent, and safe to call repeatedly
// without a RenderContext. Grid callers get the result cached, and the
// recompute runs under a per-product lock so concurrent grid refreshes do
// not stampede.
func (s *Service) PixFor(ctx context.Context, idOrSlug string, cached bool) (*PixPayload, error) {
	if !cached || s.cache == nil {
		return s.computePix(ctx, idOrSlug)
	}

	key := gridCacheKey(idOrSlug)
	var hit PixPayload
	ok, err := s.cache.GetJSON(ctx, key, &hit)
	if err == nil && ok {
		if obs.GridCacheHits != nil {
			obs.GridCacheHits.Inc()
		}
		return &hit, nil
	}
	if obs.GridCacheMisses != nil {
		obs.GridCacheMisses.Inc()
	}

	refresh := func(ctx context.Context) (*PixPayload, error) {
		// Another refresh may have filled the cache while we waited.
		var again PixPayload
		if ok, err := s.cache.GetJSON(ctx, key, &again); err == nil && ok {
			return &again, nil
		}
		payload, err := s.computePix(ctx, idOrSlug)
		if err != nil || payload == nil {
			return payload, err
		}
		_ = s.cache.SetJSON(ctx, key, *payload)
		return payload, nil
	}

	if s.locker == nil {
		return refresh(ctx)
	}
	var payload *PixPayload
	if err := s.locker.WithLock(ctx, gridLockKey(idOrSlug), 5*time.Second, func(ctx context.Context) error {
		var err error
		payload, err = refresh(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *Service) computePix(ctx context.Context, idOrSlug string) (*PixPayload, error) {
	product, err := s.productByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var variants []catalog.Variant
	if product.Kind == catalog.KindVariable {
		variants, err = s.catalog.Variants(ctx, product.ID)
		if err != nil {
			return nil, err
		}
	}
	basePrice := productBasePrice(product, variants)

	resolved, ok := pix.Resolve(priceContext(basePrice, product.PixPrice, snap.Global))
	if !ok {
		return nil, nil
	}
	payload := pixPayload(basePrice, resolved)
	return &payload, nil
}

func (s *Service) productByIDOrSlug(ctx context.Context, idOrSlug string) (catalog.Product, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.catalog.ProductByID(ctx, id)
	}
	return s.catalog.ProductBySlug(ctx, idOrSlug)
}

// productBasePrice picks the price the product-level block is computed from.
// For a variable product that is the cheapest variant, matching what the
// host shows as the "from" price.
func productBasePrice(product catalog.Product, variants []catalog.Variant) decimal.Decimal {
	if product.Kind != catalog.KindVariable || len(variants) == 0 {
		return product.BasePrice
	}
	min := variants[0].BasePrice
	for _, v := range variants[1:] {
		if v.BasePrice.LessThan(min) {
			min = v.BasePrice
		}
	}
	return min
}

func toRuleSet(rules settings.InstallmentRules) installments.RuleSet {
	return installments.RuleSet{
		Enabled:             rules.Enabled,
		MaxInstallments:     rules.MaxInstallments,
		WithoutInterest:     rules.WithoutInterest,
		MonthlyInterestRate: rules.InterestRate,
		MinInstallmentValue: rules.MinInstallmentValue,
	}
}

func priceContext(basePrice decimal.Decimal, individual *decimal.Decimal, global settings.GlobalPricing) pix.PriceContext {
	return pix.PriceContext{
		BasePrice:       basePrice,
		IndividualPrice: individual,
		GlobalDiscount:  global.GlobalDiscountPercent,
	}
}

func pixPayload(basePrice decimal.Decimal, resolved pix.ResolvedPrice) PixPayload {
	return PixPayload{
		BasePrice:       basePrice,
		PixPrice:        resolved.Price,
		DiscountAmount:  resolved.DiscountAmount,
		DiscountPercent: resolved.DiscountPercent,
	}
}

func summaryPayload(basePrice decimal.Decimal, best installments.Option) SummaryPayload {
	return SummaryPayload{
		BasePrice:   basePrice,
		Count:       best.Count,
		Value:       best.Value,
		Total:       best.Total,
		HasInterest: best.HasInterest,
	}
}

func gridCacheKey(idOrSlug string) string {
	return "display:grid:pix:" + idOrSlug
}

func gridLockKey(idOrSlug string) string {
	return "display:grid:lock:" + idOrSlug
}

func countCompute(location Location, rendered bool) {
	if obs.DisplayComputeTotal == nil {
		return
	}
	obs.DisplayComputeTotal.WithLabelValues(string(location), resultLabel(rendered)).Inc()
}

func resultLabel(ok bool) string {
	if ok {
		return "rendered"
	}
	return "empty"
}
