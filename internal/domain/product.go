package domain

import "github.com/shopspring/decimal"

// DefaultProductImage is used when a product is created without an image.
const DefaultProductImage = "/placeholder.svg?height=400&width=300"

type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	IsNew         bool             `json:"isNew"`
	IsAvailable   bool             `json:"isAvailable"`
}

// Discounted reports whether the product carries an original price above its current price.
func (p Product) Discounted() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// DiscountPercent returns the whole-number percentage saved against the original price.
func (p Product) DiscountPercent() int64 {
	if !p.Discounted() {
		return 0
	}
	saved := p.OriginalPrice.Sub(p.Price)
	return saved.Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
