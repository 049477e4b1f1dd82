package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetspace/models"
	"meetspace/services/admin"
)

// AdminHandler serves the admin user-management surface. Routes using
// it sit behind the admin middleware.
type AdminHandler struct {
	Svc admin.AdminService
}

// PromoteRequest names the account to grant the admin role to.
type PromoteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// DemoteRequest names the user to revert to the plain role.
type DemoteRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if users == nil {
		users = []models.ProfileWithBookingCount{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) Promote(c *gin.Context) {
	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	promoted, err := h.Svc.Promote(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !promoted {
		c.JSON(http.StatusNotFound, gin.H{"error": "no account with that email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"promoted": req.Email})
}

func (h *AdminHandler) Demote(c *gin.Context) {
	var req DemoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.Demote(c.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, admin.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"demoted": req.UserID})
}
