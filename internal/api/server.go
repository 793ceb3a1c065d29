// Package api serves widget sessions and the read-only catalog over REST.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/WIIN2602/Farm2Hand/internal/monitoring"
)

// Options configures a Server.
type Options struct {
	// JWTSecret protects /api/v1 when set.
	JWTSecret string
	Monitor   *monitoring.Monitor
	Logger    *zap.Logger
}

// Server is the storefront REST API.
type Server struct {
	Router   *gin.Engine
	Sessions *SessionStore
	monitor  *monitoring.Monitor
	logger   *zap.Logger
}

// NewServer creates the API and registers its routes.
func NewServer(sessions *SessionStore, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Monitor == nil {
		opts.Monitor = monitoring.NewMonitor()
	}
	s := &Server{
		Router:   gin.New(),
		Sessions: sessions,
		monitor:  opts.Monitor,
		logger:   opts.Logger,
	}
	s.Router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes(opts.JWTSecret)
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes(secret string) {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.Sessions.Len()})
	})

	v1 := s.Router.Group("/api/v1")
	if secret != "" {
		v1.Use(AuthMiddleware(secret))
	}
	{
		// Catalog
		v1.GET("/catalog/products", s.ListFeaturedProducts)
		v1.GET("/catalog/addable", s.ListAddableProducts)
		v1.GET("/catalog/categories", s.ListCategories)
		v1.GET("/catalog/categories/:name/products", s.ListCategoryProducts)
		v1.GET("/payment-methods", s.ListPaymentMethods)
		v1.GET("/orders", s.ListOrders)
		v1.GET("/metrics", s.GetMetrics)

		// Sessions
		v1.POST("/sessions", s.CreateSession)
		v1.GET("/sessions/:id", s.GetSession)
		v1.DELETE("/sessions/:id", s.DeleteSession)
		v1.GET("/sessions/:id/cart", s.GetCart)
		v1.GET("/sessions/:id/transcript", s.GetTranscript)
		v1.POST("/sessions/:id/actions", s.PostAction)

		// Action shortcuts
		v1.POST("/sessions/:id/triggers/:trigger", s.PostTrigger)
		v1.POST("/sessions/:id/questions", s.PostQuestion)
		v1.POST("/sessions/:id/show-more", s.PostShowMore)
		v1.POST("/sessions/:id/products/:productId/select", s.PostSelectProduct)
		v1.POST("/sessions/:id/category-products/select", s.PostSelectCategoryProduct)
		v1.POST("/sessions/:id/cart/items", s.PostCartItem)
		v1.PUT("/sessions/:id/cart/items/:productId", s.PutCartItem)
		v1.DELETE("/sessions/:id/cart/items/:productId", s.DeleteCartItem)
		v1.PUT("/sessions/:id/payment-method", s.PutPaymentMethod)
		v1.POST("/sessions/:id/confirm", s.PostConfirm)
		v1.POST("/sessions/:id/orders/:orderId/track", s.PostTrack)
	}
}
