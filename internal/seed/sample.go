package seed

import (
	"github.com/shopspring/decimal"
	"jericho-storefront/internal/catalog"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/settings"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

// SampleCatalog is the demo storefront content.
func SampleCatalog() catalog.Seed {
	return catalog.Seed{
		Products: []domain.Product{
			{
				ID:            1,
				Name:          "Vintage Denim Jacket",
				Price:         price("89.99"),
				OriginalPrice: pricePtr("129.99"),
				Image:         domain.DefaultProductImage,
				Description:   "Authentic vintage denim jacket from the 90s. One-of-a-kind piece with unique distressing and fading.",
				Category:      "Outerwear",
				IsNew:         true,
				IsAvailable:   true,
			},
			{
				ID:          2,
				Name:        "Hand-painted T-Shirt",
				Price:       price("59.99"),
				Image:       domain.DefaultProductImage,
				Description: "Custom hand-painted t-shirt with original artwork. Each piece is unique and signed by the artist.",
				Category:    "T-Shirts",
				IsNew:       true,
				IsAvailable: true,
			},
			{
				ID:          3,
				Name:        "Reworked Cargo Pants",
				Price:       price("79.99"),
				Image:       domain.DefaultProductImage,
				Description: "Vintage cargo pants reworked with custom pockets and details. One size fits most with adjustable waist.",
				Category:    "Pants",
				IsAvailable: true,
			},
			{
				ID:            4,
				Name:          "Embroidered Hoodie",
				Price:         price("69.99"),
				OriginalPrice: pricePtr("89.99"),
				Image:         domain.DefaultProductImage,
				Description:   "Premium cotton hoodie with hand-embroidered details. Each stitch pattern is unique.",
				Category:      "Outerwear",
				IsAvailable:   true,
			},
			{
				ID:          5,
				Name:        "Upcycled Denim Bag",
				Price:       price("45.99"),
				Image:       domain.DefaultProductImage,
				Description: "Handcrafted bag made from upcycled denim. Features unique pocket details and sturdy construction.",
				Category:    "Accessories",
				IsNew:       true,
				IsAvailable: true,
			},
			{
				ID:            6,
				Name:          "Vintage Band Tee",
				Price:         price("39.99"),
				OriginalPrice: pricePtr("54.99"),
				Image:         domain.DefaultProductImage,
				Description:   "Authentic vintage band t-shirt from the 80s. Rare find in excellent condition.",
				Category:      "T-Shirts",
				IsAvailable:   true,
			},
			{
				ID:          7,
				Name:        "Custom Leather Jacket",
				Price:       price("189.99"),
				Image:       domain.DefaultProductImage,
				Description: "Handcrafted leather jacket with custom hardware and detailing. One-of-a-kind statement piece.",
				Category:    "Outerwear",
				IsNew:       true,
				IsAvailable: true,
			},
			{
				ID:          8,
				Name:        "Patchwork Denim Skirt",
				Price:       price("69.99"),
				Image:       domain.DefaultProductImage,
				Description: "Unique patchwork denim skirt made from vintage jeans. Each panel has its own character and history.",
				Category:    "Bottoms",
				IsAvailable: true,
			},
		},
		Promotions: []domain.Promotion{
			{ID: 1, Title: "Unique Collection", Description: "Exclusive one-of-a-kind pieces", Image: domain.DefaultPromotionImage, Discount: "NEW"},
			{ID: 2, Title: "Limited Edition", Description: "Get them before they're gone", Image: domain.DefaultPromotionImage, Discount: "HOT"},
			{ID: 3, Title: "Flash Sale", Description: "24 hours only! Special discounts", Image: domain.DefaultPromotionImage, Discount: "24HR", EndDate: "Today"},
			{ID: 4, Title: "Vintage Finds", Description: "Curated selection of unique vintage items", Image: domain.DefaultPromotionImage, Discount: "RARE"},
		},
	}
}

// SampleSettings is the demo checkout configuration.
func SampleSettings() settings.Seed {
	return settings.Seed{
		PaymentMethods: []domain.PaymentMethod{
			{ID: 1, Name: "Credit Card", Description: "Pay with Visa, Mastercard, or American Express", Enabled: true},
			{ID: 2, Name: "Cash on Delivery", Description: "Pay when you receive your order", Enabled: true},
			{ID: 3, Name: "Bank Transfer", Description: "Pay directly to our bank account"},
			{ID: 4, Name: "Cryptocurrency", Description: "Pay with Bitcoin, Ethereum, or other cryptocurrencies"},
		},
		DeliveryMethods: []domain.DeliveryMethod{
			{ID: 1, Name: "Standard Shipping", Description: "Delivery in 3-5 business days", Price: price("5.99"), Enabled: true},
			{ID: 2, Name: "Express Shipping", Description: "Delivery in 1-2 business days", Price: price("12.99"), Enabled: true},
			{ID: 3, Name: "Local Pickup", Description: "Pick up your order at our store", Price: decimal.Zero, Enabled: true},
			{ID: 4, Name: "International Shipping", Description: "Delivery in 7-14 business days", Price: price("19.99")},
		},
	}
}
