package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

// StatusFor maps a session or dispatch error to an HTTP status.
func StatusFor(err error) int {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, widget.ErrProductNotFound),
		errors.Is(err, models.ErrUnknownCategory):
		return http.StatusNotFound
	case errors.Is(err, widget.ErrInvalidAction),
		errors.Is(err, widget.ErrUnknownAction):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		body["prompt"] = verr.Prompt
	}
	c.JSON(StatusFor(err), body)
}
