package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

// Catalog handlers

func (s *Server) ListFeaturedProducts(c *gin.Context) {
	products, err := s.Sessions.Factory().Catalog.ListFeaturedProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) ListAddableProducts(c *gin.Context) {
	products, err := s.Sessions.Factory().Catalog.ListAddableProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.Sessions.Factory().Catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) ListCategoryProducts(c *gin.Context) {
	name, err := models.ParseCategoryName(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	products, err := s.Sessions.Factory().Catalog.ListCategoryProducts(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": name, "products": products})
}

func (s *Server) ListPaymentMethods(c *gin.Context) {
	methods := models.PaymentMethods()
	if coord := s.Sessions.Factory().Coordinator; coord != nil {
		methods = coord.Methods()
	}
	c.JSON(http.StatusOK, gin.H{"methods": methods})
}

func (s *Server) ListOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	list, err := s.Sessions.Factory().Orders.ListRecentOrders(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

func (s *Server) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.Snapshot())
}

// Session handlers

func (s *Server) CreateSession(c *gin.Context) {
	entry := s.Sessions.Create()
	body := gin.H{"id": entry.ID}
	_ = entry.Do(func(session *widget.Session) error {
		s.attachPanel(c, entry.ID, session, body)
		return nil
	})
	s.logger.Info("session created", zap.String("session", entry.ID))
	c.JSON(http.StatusCreated, body)
}

func (s *Server) GetSession(c *gin.Context) {
	entry, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	body := gin.H{"id": entry.ID}
	_ = entry.Do(func(session *widget.Session) error {
		s.attachPanel(c, entry.ID, session, body)
		return nil
	})
	c.JSON(http.StatusOK, body)
}

func (s *Server) DeleteSession(c *gin.Context) {
	if !s.Sessions.Delete(c.Param("id")) {
		writeError(c, ErrSessionNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

func (s *Server) GetCart(c *gin.Context) {
	entry, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	var body gin.H
	_ = entry.Do(func(session *widget.Session) error {
		body = gin.H{"cart": session.Cart()}
		if method, ok := session.PaymentMethod(); ok {
			body["paymentMethod"] = method
		}
		return nil
	})
	c.JSON(http.StatusOK, body)
}

func (s *Server) GetTranscript(c *gin.Context) {
	entry, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entry.Transcript.Entries()})
}

func (s *Server) PostAction(c *gin.Context) {
	var action widget.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.dispatch(c, action)
}

// Action shortcuts

func (s *Server) PostTrigger(c *gin.Context) {
	s.dispatch(c, widget.Action{
		Type:     widget.ActionTrigger,
		Trigger:  c.Param("trigger"),
		Category: c.Query("category"),
	})
}

func (s *Server) PostQuestion(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.dispatch(c, widget.Action{Type: widget.ActionAsk, Text: req.Text})
}

func (s *Server) PostShowMore(c *gin.Context) {
	s.dispatch(c, widget.Action{Type: widget.ActionShowMore})
}

func (s *Server) PostSelectProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	s.dispatch(c, widget.Action{Type: widget.ActionSelectProduct, ProductID: id})
}

func (s *Server) PostSelectCategoryProduct(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.dispatch(c, widget.Action{Type: widget.ActionSelectCategoryProduct, Name: req.Name})
}

func (s *Server) PostCartItem(c *gin.Context) {
	var req struct {
		ProductID int `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.dispatch(c, widget.Action{Type: widget.ActionAddToCart, ProductID: req.ProductID})
}

func (s *Server) PutCartItem(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.dispatch(c, widget.Action{Type: widget.ActionUpdateQuantity, ProductID: id, Quantity: *req.Quantity})
}

func (s *Server) DeleteCartItem(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	s.dispatch(c, widget.Action{Type: widget.ActionRemoveFromCart, ProductID: id})
}

func (s *Server) PutPaymentMethod(c *gin.Context) {
	var req struct {
		PaymentMethod string `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.dispatch(c, widget.Action{Type: widget.ActionSelectPaymentMethod, PaymentMethod: req.PaymentMethod})
}

func (s *Server) PostConfirm(c *gin.Context) {
	s.dispatch(c, widget.Action{Type: widget.ActionConfirmOrder})
}

func (s *Server) PostTrack(c *gin.Context) {
	s.dispatch(c, widget.Action{Type: widget.ActionRequestTracking, OrderID: c.Param("orderId")})
}

// dispatch applies action to the session named in the path and replies with
// the result and the refreshed panel. Once the action is applied the reply is
// 200 even if the panel cannot be rendered; the render error is reported in
// panelError next to the result.
func (s *Server) dispatch(c *gin.Context, action widget.Action) {
	entry, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	var body gin.H
	err = entry.Do(func(session *widget.Session) error {
		result, err := widget.Dispatch(ctx, session, action)
		if err != nil {
			return err
		}
		body = gin.H{"result": result}
		s.attachPanel(c, entry.ID, session, body)
		return nil
	})
	if err != nil {
		s.logger.Debug("action rejected",
			zap.String("session", entry.ID),
			zap.String("action", action.Type),
			zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// attachPanel renders the session's current view into body["panel"], or
// records the failure under body["panelError"].
func (s *Server) attachPanel(c *gin.Context, id string, session *widget.Session, body gin.H) {
	panel, err := session.Panel(c.Request.Context())
	if err != nil {
		s.logger.Warn("panel render failed",
			zap.String("session", id),
			zap.Stringer("view", session.View().Kind()),
			zap.Error(err))
		body["panelError"] = err.Error()
		return
	}
	body["panel"] = panel
}

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid product id %q", c.Param("productId"))})
		return 0, false
	}
	return id, true
}
