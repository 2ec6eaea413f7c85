package display

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/installments"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/placement"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/settings"
)

// Location tags the page context a fragment is computed for.
type Location string

const (
	LocationProduct  Location = "product"
	LocationVariant  Location = "variant"
	LocationGallery  Location = "gallery"
	LocationCart     Location = "cart"
	LocationCheckout Location = "checkout"
)

// Fragment is the unit handed to the templating layer: which fragment kind
// to render, where, at which relative rank, and the computed data to render
// it from. The payload is numbers and text only, never markup.
type Fragment struct {
	Kind     placement.FragmentKind `json:"kind"`
	Location Location               `json:"location"`
	Rank     int                    `json:"rank"`
	Payload  any                    `json:"payload"`
}

// PixPayload is the instant-payment price fragment data.
type PixPayload struct {
	BasePrice       decimal.Decimal `json:"basePrice"`
	PixPrice        decimal.Decimal `json:"pixPrice"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// SummaryPayload is the headline installment fragment data: the best
// surviving option of the plan.
type SummaryPayload struct {
	BasePrice   decimal.Decimal `json:"basePrice"`
	Count       int             `json:"count"`
	Value       decimal.Decimal `json:"value"`
	Total       decimal.Decimal `json:"total"`
	HasInterest bool            `json:"hasInterest"`
}

// TablePayload is the full installment schedule fragment data.
type TablePayload struct {
	Options     installments.Plan `json:"options"`
	DisplayType string            `json:"displayType"`
	TextBefore  string            `json:"textBefore,omitempty"`
	TextAfter   string            `json:"textAfter,omitempty"`
}

// VariantDisplay carries the independently computed payloads for one variant
// of a variable product. Variants have no ordering dependency on each other;
// all of them are computed eagerly so a client-side selector can swap
// without another round trip.
type VariantDisplay struct {
	VariantID uuid.UUID       `json:"variantId"`
	Pix       *PixPayload     `json:"pix,omitempty"`
	Summary   *SummaryPayload `json:"summary,omitempty"`
	Table     *TablePayload   `json:"table,omitempty"`
}

// DesignSnapshot bundles the resolved design domains for the templating
// layer.
type DesignSnapshot struct {
	Pix          settings.PixDesign         `json:"pix"`
	Installments settings.InstallmentDesign `json:"installments"`
}

// ProductPage is the full single-product-page plan.
type ProductPage struct {
	ProductID uuid.UUID        `json:"productId"`
	Fragments []Fragment       `json:"fragments"`
	Variants  []VariantDisplay `json:"variants,omitempty"`
	Design    DesignSnapshot   `json:"design"`
}

// GalleryCard is the plan for one product card in the shop grid.
type GalleryCard struct {
	ProductID uuid.UUID  `json:"productId"`
	Fragments []Fragment `json:"fragments"`
}

// LineRequest identifies one cart or checkout line to recompute.
type LineRequest struct {
	ProductID uuid.UUID  `json:"productId"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
}

// LineDisplay is the recomputed payload for one cart or checkout line.
type LineDisplay struct {
	ProductID uuid.UUID       `json:"productId"`
	VariantID *uuid.UUID      `json:"variantId,omitempty"`
	Pix       *PixPayload     `json:"pix,omitempty"`
	Summary   *SummaryPayload `json:"summary,omitempty"`
}

// LinesDisplay is the response for a cart/checkout recompute. HasPixProducts
// drives the host's "pay with PIX" notice.
type LinesDisplay struct {
	Lines          []LineDisplay `json:"lines"`
	HasPixProducts bool          `json:"hasPixProducts"`
}
