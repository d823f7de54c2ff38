package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/admin"
	"github.com/vikas-mobiles/be/cart"
	"github.com/vikas-mobiles/be/checkout"
	"github.com/vikas-mobiles/be/models"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	products *admin.ProductBoard
	log      *logrus.Entry
}

func NewCheckoutHandler(svc *checkout.Service, products *admin.ProductBoard, log *logrus.Entry) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, products: products, log: log}
}

// Checkout handles POST /cart/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var contact models.ContactDetails
	if err := c.ShouldBindJSON(&contact); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	s := currentSession(c)
	var order *models.Order
	// the session stays locked for the whole remote call
	err := s.Do(func(store *cart.Store) error {
		var err error
		order, err = h.checkout.SubmitCart(c.Request.Context(), store, contact)
		return err
	})
	if err != nil {
		h.log.WithError(err).WithField("session_id", s.ID).Warn("checkout failed")
		respondError(c, err, codeOrderProcessing, "Failed to place order")
		return
	}

	c.JSON(http.StatusCreated, checkoutResponse(order))
}

// PlaceOrder handles POST /products/:productId/order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var contact models.ContactDetails
	if err := c.ShouldBindJSON(&contact); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	product, found, err := h.products.Lookup(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err, codeRemoteError, "Failed to load products")
		return
	}
	if !found {
		notFound(c, "Product not found")
		return
	}

	order, err := h.checkout.PlaceSingle(c.Request.Context(), product, contact)
	if err != nil {
		h.log.WithError(err).WithField("product_id", product.ID).Warn("single product order failed")
		respondError(c, err, codeOrderProcessing, "Failed to place order")
		return
	}

	c.JSON(http.StatusCreated, checkoutResponse(order))
}

func checkoutResponse(order *models.Order) models.CheckoutResponse {
	return models.CheckoutResponse{
		OrderID: order.ID,
		Total:   order.Total,
		Status:  order.Status,
	}
}
