package httpserver

import (
	"errors"
	"net/http"

	"shop-backend/internal/domain"
	accountsvc "shop-backend/internal/service/account"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) register(c *gin.Context) {
	var req accountsvc.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	user, token, err := h.deps.AccountSvc.Register(c.Request.Context(), req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}
	user, token, err := h.deps.AccountSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accountsvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.AccountSvc.Logout(c.Request.Context(), bearerToken(c)); err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *handlers) profile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
