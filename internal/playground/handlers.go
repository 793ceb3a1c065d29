package playground

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

// ActionInfo describes an action a socket client may send
type ActionInfo struct {
	Type        string   `json:"type"`
	Fields      []string `json:"fields,omitempty"`
	Description string   `json:"description"`
}

var actionCatalog = []ActionInfo{
	{Type: widget.ActionTrigger, Fields: []string{"trigger", "category"}, Description: "Activate a navigation trigger"},
	{Type: widget.ActionAsk, Fields: []string{"text"}, Description: "Forward free text to the assistant"},
	{Type: widget.ActionShowMore, Description: "Ask for more options"},
	{Type: widget.ActionSelectProduct, Fields: []string{"productId"}, Description: "Open a featured product"},
	{Type: widget.ActionSelectCategoryProduct, Fields: []string{"name"}, Description: "Open a product of the active category"},
	{Type: widget.ActionAddToCart, Fields: []string{"productId"}, Description: "Add one unit to the cart"},
	{Type: widget.ActionUpdateQuantity, Fields: []string{"productId", "quantity"}, Description: "Set a cart quantity, zero removes"},
	{Type: widget.ActionRemoveFromCart, Fields: []string{"productId"}, Description: "Remove a cart line"},
	{Type: widget.ActionSelectPaymentMethod, Fields: []string{"paymentMethod"}, Description: "Choose how to pay on the order summary"},
	{Type: widget.ActionConfirmOrder, Description: "Confirm the order"},
	{Type: widget.ActionRequestTracking, Fields: []string{"orderId"}, Description: "Ask for an order's status"},
}

// handleListActions returns the actions accepted on the socket
func (s *PlaygroundServer) handleListActions(c *gin.Context) {
	c.JSON(http.StatusOK, actionCatalog)
}

// handleListQuestions returns the menu questions
func (s *PlaygroundServer) handleListQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, widget.MenuQuestions())
}
