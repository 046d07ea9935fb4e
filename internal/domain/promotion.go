package domain

// DefaultPromotionImage is used when a promotion is created without an image.
const DefaultPromotionImage = "/placeholder.svg?height=200&width=400"

// Promotion is a banner shown in the storefront carousel. EndDate is a display label, not a parsed date.
type Promotion struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Discount    string `json:"discount"`
	EndDate     string `json:"endDate,omitempty"`
}
