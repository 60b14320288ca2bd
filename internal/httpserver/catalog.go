package httpserver

import (
	"net/http"

	"shop-backend/internal/domain"
	productrepo "shop-backend/internal/repository/product"
	"github.com/gin-gonic/gin"
)

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *handlers) getCategory(c *gin.Context) {
	category, err := h.deps.CategorySvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *handlers) listProducts(c *gin.Context) {
	filter := productrepo.Filter{
		CategorySlug: c.Query("category"),
		FeaturedOnly: c.Query("featured") != "",
		Search:       c.Query("search"),
		ViewerID:     viewerID(c),
	}
	products, err := h.deps.ProductSvc.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) featuredProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.Featured(c.Request.Context(), viewerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) getProduct(c *gin.Context) {
	product, err := h.deps.ProductSvc.GetBySlug(c.Request.Context(), c.Param("slug"), viewerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
