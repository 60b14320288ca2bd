package httpserver

import (
	"errors"
	"net/http"

	"shop-backend/internal/domain"
	ordersvc "shop-backend/internal/service/order"
	"github.com/gin-gonic/gin"
)

// respondError maps workflow errors to HTTP responses. Unknown errors become
// a 500 and are logged; nothing here ever panics the serving process.
func (h *handlers) respondError(c *gin.Context, err error) {
	var fieldErrs ordersvc.ValidationErrors
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot cancel order in current status"})
	default:
		h.logger.Printf("http: %s %s error=%v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
