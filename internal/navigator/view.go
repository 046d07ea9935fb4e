// Package navigator decides which storefront screen is active and what it is focused on.
package navigator

// Kind names a screen.
type Kind int

const (
	KindListing Kind = iota
	KindDetail
	KindCart
	KindPromotionDetail
)

func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindDetail:
		return "detail"
	case KindCart:
		return "cart"
	case KindPromotionDetail:
		return "promotion"
	default:
		return "unknown"
	}
}

// View is one of Listing, Detail, Cart or PromotionDetail. The focused entity
// lives inside the variant, so a focus can only exist on its own screen.
type View interface {
	Kind() Kind
	isView()
}

type Listing struct{}

// Detail shows one product.
type Detail struct {
	ProductID int
}

type Cart struct{}

// PromotionDetail shows one promotion and its featured products.
type PromotionDetail struct {
	PromotionID int
}

func (Listing) Kind() Kind         { return KindListing }
func (Detail) Kind() Kind          { return KindDetail }
func (Cart) Kind() Kind            { return KindCart }
func (PromotionDetail) Kind() Kind { return KindPromotionDetail }

func (Listing) isView()         {}
func (Detail) isView()          {}
func (Cart) isView()            {}
func (PromotionDetail) isView() {}

// FocusedProduct returns the product id of a Detail view.
func FocusedProduct(v View) (int, bool) {
	d, ok := v.(Detail)
	return d.ProductID, ok
}

// FocusedPromotion returns the promotion id of a PromotionDetail view.
func FocusedPromotion(v View) (int, bool) {
	p, ok := v.(PromotionDetail)
	return p.PromotionID, ok
}
