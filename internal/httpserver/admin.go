package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"jericho-storefront/internal/service/admin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func registerAdminRoutes(api *gin.RouterGroup, svc *admin.Service) {
	api.POST("/admin/login", loginHandler(svc))

	g := api.Group("/admin", adminAuthMiddleware(svc))

	g.GET("/products", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"results": svc.Products()}) })
	g.POST("/products", func(c *gin.Context) {
		var in admin.ProductInput
		if !bindJSON(c, &in) {
			return
		}
		p, err := svc.AddProduct(c.Request.Context(), in)
		respond(c, http.StatusCreated, p, err)
	})
	g.PUT("/products/:id", func(c *gin.Context) {
		var in admin.ProductInput
		id, ok := intParam(c, "id")
		if !ok || !bindJSON(c, &in) {
			return
		}
		p, err := svc.UpdateProduct(c.Request.Context(), id, in)
		respond(c, http.StatusOK, p, err)
	})
	g.DELETE("/products/:id", deleteByID(svc.DeleteProduct))
	g.POST("/products/:id/toggle", func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		p, err := svc.ToggleProduct(c.Request.Context(), id)
		respond(c, http.StatusOK, p, err)
	})

	g.GET("/promotions", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"results": svc.Promotions()}) })
	g.POST("/promotions", func(c *gin.Context) {
		var in admin.PromotionInput
		if !bindJSON(c, &in) {
			return
		}
		p, err := svc.AddPromotion(c.Request.Context(), in)
		respond(c, http.StatusCreated, p, err)
	})
	g.PUT("/promotions/:id", func(c *gin.Context) {
		var in admin.PromotionInput
		id, ok := intParam(c, "id")
		if !ok || !bindJSON(c, &in) {
			return
		}
		p, err := svc.UpdatePromotion(c.Request.Context(), id, in)
		respond(c, http.StatusOK, p, err)
	})
	g.DELETE("/promotions/:id", deleteByID(svc.DeletePromotion))

	g.GET("/categories", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"results": svc.Categories()}) })
	g.POST("/categories", func(c *gin.Context) {
		var req categoryRequest
		if !bindJSON(c, &req) {
			return
		}
		err := svc.AddCategory(c.Request.Context(), req.Name)
		respond(c, http.StatusCreated, gin.H{"results": svc.Categories()}, err)
	})
	g.PUT("/categories/:name", func(c *gin.Context) {
		var req categoryRequest
		if !bindJSON(c, &req) {
			return
		}
		err := svc.RenameCategory(c.Request.Context(), c.Param("name"), req.Name)
		respond(c, http.StatusOK, gin.H{"results": svc.Categories()}, err)
	})
	g.DELETE("/categories/:name", func(c *gin.Context) {
		if err := svc.DeleteCategory(c.Request.Context(), c.Param("name")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	g.GET("/payment-methods", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"results": svc.PaymentMethods()}) })
	g.POST("/payment-methods", func(c *gin.Context) {
		var in admin.PaymentMethodInput
		if !bindJSON(c, &in) {
			return
		}
		m, err := svc.AddPaymentMethod(c.Request.Context(), in)
		respond(c, http.StatusCreated, m, err)
	})
	g.PUT("/payment-methods/:id", func(c *gin.Context) {
		var in admin.PaymentMethodInput
		id, ok := intParam(c, "id")
		if !ok || !bindJSON(c, &in) {
			return
		}
		m, err := svc.UpdatePaymentMethod(c.Request.Context(), id, in)
		respond(c, http.StatusOK, m, err)
	})
	g.DELETE("/payment-methods/:id", deleteByID(svc.DeletePaymentMethod))
	g.POST("/payment-methods/:id/toggle", func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		m, err := svc.TogglePaymentMethod(c.Request.Context(), id)
		respond(c, http.StatusOK, m, err)
	})

	g.GET("/delivery-methods", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"results": svc.DeliveryMethods()}) })
	g.POST("/delivery-methods", func(c *gin.Context) {
		var in admin.DeliveryMethodInput
		if !bindJSON(c, &in) {
			return
		}
		m, err := svc.AddDeliveryMethod(c.Request.Context(), in)
		respond(c, http.StatusCreated, m, err)
	})
	g.PUT("/delivery-methods/:id", func(c *gin.Context) {
		var in admin.DeliveryMethodInput
		id, ok := intParam(c, "id")
		if !ok || !bindJSON(c, &in) {
			return
		}
		m, err := svc.UpdateDeliveryMethod(c.Request.Context(), id, in)
		respond(c, http.StatusOK, m, err)
	})
	g.DELETE("/delivery-methods/:id", deleteByID(svc.DeleteDeliveryMethod))
	g.POST("/delivery-methods/:id/toggle", func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		m, err := svc.ToggleDeliveryMethod(c.Request.Context(), id)
		respond(c, http.StatusOK, m, err)
	})
}

func loginHandler(svc *admin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "username and password are required")
			return
		}
		token, expiresAt, err := svc.Login(req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, loginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int(time.Until(expiresAt).Seconds()),
			ExpiresAt:   expiresAt.UTC(),
		})
	}
}

func deleteByID(del func(ctx context.Context, id int) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		if err := del(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return false
	}
	return true
}

// respond writes body with status, or the mapped error. A persistence failure
// after a successful in-memory change is reported as an error.
func respond(c *gin.Context, status int, body interface{}, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, body)
}
