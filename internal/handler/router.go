package handler

import (
	"context"
	"net/http"
	"time"

	"storefront_api/internal/middleware"
	"storefront_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the router dispatches to
type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Products service.ProductService
	Orders   service.OrderService
}

// Pinger reports store liveness. *pgxpool.Pool implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the HTTP surface of the storefront
func NewRouter(svc Services, tokens middleware.TokenValidator, db Pinger) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	authenticated := middleware.Authenticate(tokens)
	admin := middleware.Pipeline(authenticated, middleware.RequireAdmin())
	selfOrAdmin := func(param string) gin.HandlerFunc {
		return middleware.Pipeline(authenticated, middleware.RequireSelfOrAdmin(param))
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(svc.Auth)
	router.POST("/login", authHandler.Login)

	userHandler := NewUserHandler(svc.Users)
	users := router.Group("/users")
	{
		users.GET("", admin, userHandler.List)
		users.GET("/:id", selfOrAdmin("id"), userHandler.Get)
		users.POST("", middleware.Pipeline(middleware.OptionalAuthenticate(tokens)), userHandler.Create)
		users.PATCH("/:id", selfOrAdmin("id"), userHandler.Update)
		users.DELETE("/:id", selfOrAdmin("id"), userHandler.Delete)
	}

	productHandler := NewProductHandler(svc.Products)
	products := router.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", admin, productHandler.Create)
		products.PATCH("/:id", admin, productHandler.Update)
		products.DELETE("/:id", admin, productHandler.Delete)
	}

	orderHandler := NewOrderHandler(svc.Orders)
	orders := router.Group("/orders")
	{
		orders.GET("", admin, orderHandler.List)
		orders.GET("/current/:userId", selfOrAdmin("userId"), orderHandler.Current)
		orders.POST("/:userId", selfOrAdmin("userId"), orderHandler.Create)
		orders.PATCH("/:id", admin, orderHandler.Update)
		orders.DELETE("/:id", admin, orderHandler.Delete)
	}

	items := router.Group("/order-items")
	{
		items.PATCH("/:id", admin, orderHandler.UpdateItem)
		items.DELETE("/:id", admin, orderHandler.DeleteItem)
	}

	return router
}
