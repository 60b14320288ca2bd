package httpserver

import (
	"net/http"

	"shop-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type toggleLikeRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (h *handlers) listLikes(c *gin.Context) {
	likes, err := h.deps.LikeSvc.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if likes == nil {
		likes = []domain.Like{}
	}
	c.JSON(http.StatusOK, likes)
}

func (h *handlers) toggleLike(c *gin.Context) {
	var req toggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "product_id is required")
		return
	}
	liked, err := h.deps.LikeSvc.Toggle(c.Request.Context(), currentUser(c).ID, req.ProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	msg := "Product unliked"
	if liked {
		msg = "Product liked"
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "message": msg})
}
