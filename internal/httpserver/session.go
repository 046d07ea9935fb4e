package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"jericho-storefront/internal/service/storefront"
)

type selectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type addToCartRequest struct {
	OpenCart bool `json:"openCart"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func createSessionHandler(sessions *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Create()
		snap, err := s.Snapshot(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/sessions/"+s.ID())
		c.JSON(http.StatusCreated, snap)
	}
}

func sessionSnapshotHandler(c *gin.Context) {
	respondSnapshot(c, sessionFrom(c), nil)
}

func closeSessionHandler(sessions *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Close(sessionFrom(c).ID()); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// sessionAction runs fn on the session goroutine and answers with the resulting snapshot.
func sessionAction(fn func(*storefront.Shop) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessionFrom(c)
		err := s.Do(c.Request.Context(), fn)
		respondSnapshot(c, s, err)
	}
}

func selectCategoryHandler(c *gin.Context) {
	var req selectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "category is required")
		return
	}
	sessionAction(func(shop *storefront.Shop) error { return shop.SelectCategory(req.Category) })(c)
}

func selectProductHandler(c *gin.Context) {
	id, ok := intParam(c, "productId")
	if !ok {
		return
	}
	sessionAction(func(shop *storefront.Shop) error { return shop.SelectProduct(id) })(c)
}

// addToCartHandler adds the product on the detail view. The body is optional;
// {"openCart":true} shows the cart instead of returning to the listing.
func addToCartHandler(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	sessionAction(func(shop *storefront.Shop) error {
		if req.OpenCart {
			return shop.AddToCartAndOpenCart()
		}
		return shop.AddToCartAndReturn()
	})(c)
}

func setQuantityHandler(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "quantity is required")
		return
	}
	sessionAction(func(shop *storefront.Shop) error { return shop.SetQuantity(index, *req.Quantity) })(c)
}

func removeLineHandler(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	sessionAction(func(shop *storefront.Shop) error { return shop.RemoveLine(index) })(c)
}

func checkoutHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionAction(func(shop *storefront.Shop) error { return shop.CheckoutContext(ctx) })(c)
}

func hostTapHandler(tap func(*storefront.Session, context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessionFrom(c)
		err := tap(s, c.Request.Context())
		respondSnapshot(c, s, err)
	}
}

// respondSnapshot writes the session state. When err is set the snapshot is
// attached to the error body so clients can render the notice.
func respondSnapshot(c *gin.Context, s *storefront.Session, err error) {
	snap, snapErr := s.Snapshot(c.Request.Context())
	if err == nil && snapErr != nil {
		err = snapErr
	}
	if err == nil {
		c.JSON(http.StatusOK, snap)
		return
	}

	body := errorBody(c, err)
	if snapErr == nil {
		body.Snapshot = &snap
	}
	c.JSON(body.StatusCode, body)
}
