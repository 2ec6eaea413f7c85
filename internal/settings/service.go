package settings

import (
	"context"
	"errors"
	"fmt"
)

// Snapshot is the fully resolved configuration for one page render. It is
// loaded once at the start of the render and treated as immutable for the
// render's duration.
type Snapshot struct {
	Global            GlobalPricing
	PixDesign         PixDesign
	Rules             InstallmentRules
	InstallmentDesign InstallmentDesign
}

// Service resolves settings domains against a Store.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("settings: store is required")
	}
	return &Service{store: store}, nil
}

// Snapshot loads and resolves all four domains. Store errors surface so the
// HTTP boundary can turn them into a 5xx; resolution itself never fails.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	global, err := s.store.Get(ctx, DomainPricingGlobal)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	pixDesign, err := s.store.Get(ctx, DomainPricingDesign)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	rules, err := s.store.Get(ctx, DomainInstallmentRules)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	instDesign, err := s.store.Get(ctx, DomainInstallmentDesign)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return Snapshot{
		Global:            ResolveGlobalPricing(global),
		PixDesign:         ResolvePixDesign(pixDesign),
		Rules:             ResolveInstallmentRules(rules),
		InstallmentDesign: ResolveInstallmentDesign(instDesign),
	}, nil
}

// Resolved returns the fully resolved record for a single domain as a
// generic value, for the admin read path.
func (s *Service) Resolved(ctx context.Context, domain Domain) (any, error) {
	overrides, err := s.store.Get(ctx, domain)
	if err != nil {
		return nil, err
	}
	switch domain {
	case DomainPricingGlobal:
		return ResolveGlobalPricing(overrides), nil
	case DomainPricingDesign:
		return ResolvePixDesign(overrides), nil
	case DomainInstallmentRules:
		return ResolveInstallmentRules(overrides), nil
	case DomainInstallmentDesign:
		return ResolveInstallmentDesign(overrides), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
}

// Update validates, sanitizes, and persists a sparse override map for
// domain. Unknown keys are dropped rather than stored.
func (s *Service) Update(ctx context.Context, domain Domain, values map[string]any) error {
	sanitized, err := Sanitize(domain, values)
	if err != nil {
		return err
	}
	if err := Validate(domain, sanitized); err != nil {
		return err
	}
	return s.store.Set(ctx, domain, sanitized)
}
