package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"jericho-storefront/internal/catalog"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/settings"
)

type productView struct {
	domain.Product
	DiscountPercent int64 `json:"discountPercent,omitempty"`
}

func toProductView(p domain.Product) productView {
	return productView{Product: p, DiscountPercent: p.DiscountPercent()}
}

type productList struct {
	Category string        `json:"category"`
	Count    int           `json:"count"`
	Results  []productView `json:"results"`
}

// listProductsHandler serves the listing, optionally filtered by ?category=.
func listProductsHandler(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.DefaultQuery("category", domain.AllCategories)
		if category != domain.AllCategories && !store.HasCategory(category) {
			writeError(c, http.StatusNotFound, "unknown category "+strconv.Quote(category))
			return
		}
		products := store.FilterByCategory(category)
		results := make([]productView, 0, len(products))
		for _, p := range products {
			results = append(results, toProductView(p))
		}
		c.JSON(http.StatusOK, productList{Category: category, Count: len(results), Results: results})
	}
}

func getProductHandler(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "productId")
		if !ok {
			return
		}
		p, err := store.Product(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toProductView(*p))
	}
}

func listCategoriesHandler(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"results": append([]string{domain.AllCategories}, store.Categories()...)})
	}
}

func listPromotionsHandler(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		promos := store.Promotions()
		c.JSON(http.StatusOK, gin.H{"count": len(promos), "results": promos})
	}
}

func checkoutOptionsHandler(st *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"paymentMethods":  st.EnabledPaymentMethods(),
			"deliveryMethods": st.EnabledDeliveryMethods(),
		})
	}
}

// intParam parses a numeric path parameter, writing a 400 when it is malformed.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		writeError(c, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}
