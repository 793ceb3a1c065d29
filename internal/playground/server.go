// Package playground serves the widget over a WebSocket, one session per
// connection.
package playground

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/WIIN2602/Farm2Hand/internal/api"
)

// PlaygroundServer hosts live widget sessions
type PlaygroundServer struct {
	router  *gin.Engine
	factory *api.SessionFactory
	counter api.SessionCounter
	logger  *zap.Logger
}

// NewPlaygroundServer creates a new playground server instance. counter may be nil.
func NewPlaygroundServer(factory *api.SessionFactory, counter api.SessionCounter, logger *zap.Logger) *PlaygroundServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := &PlaygroundServer{
		router:  gin.New(),
		factory: factory,
		counter: counter,
		logger:  logger,
	}
	server.router.Use(gin.Recovery())

	server.setupRoutes()
	return server
}

// setupRoutes configures the API routes
func (s *PlaygroundServer) setupRoutes() {
	s.router.GET("/ws", s.handleWebSocket)

	rest := s.router.Group("/api")
	{
		rest.GET("/actions", s.handleListActions)
		rest.GET("/questions", s.handleListQuestions)
	}
}

// Router returns the Gin router
func (s *PlaygroundServer) Router() *gin.Engine {
	return s.router
}
