package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/logging"
	"github.com/vikas-mobiles/be/session"
)

type Router struct {
	Sessions      *session.Registry
	SessionMaxAge int
	Catalog       *CatalogHandler
	Cart          *CartHandler
	Checkout      *CheckoutHandler
	Admin         *AdminHandler
	Log           *logrus.Entry
}

func (r Router) Engine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(r.Log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	shop := router.Group("/", SessionMiddleware(r.Sessions, r.SessionMaxAge))
	shop.GET("/products", r.Catalog.ListProducts)
	shop.POST("/products/:productId/order", r.Checkout.PlaceOrder)
	shop.GET("/cart", r.Cart.GetCart)
	shop.POST("/cart/items", r.Cart.AddItem)
	shop.PUT("/cart/items/:productId", r.Cart.UpdateQuantity)
	shop.DELETE("/cart/items/:productId", r.Cart.RemoveItem)
	shop.DELETE("/cart", r.Cart.ClearCart)
	shop.POST("/cart/checkout", r.Checkout.Checkout)

	adm := router.Group("/admin")
	adm.GET("/products", r.Admin.ListProducts)
	adm.POST("/products", r.Admin.CreateProduct)
	adm.DELETE("/products/:productId", r.Admin.DeleteProduct)
	adm.GET("/orders", r.Admin.ListOrders)
	adm.PUT("/orders/:orderId", r.Admin.UpdateOrder)
	adm.DELETE("/orders/:orderId", r.Admin.DeleteOrder)

	return router
}
