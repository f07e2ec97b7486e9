package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/internal/service"
)

type AuthHandler struct {
	svc *service.AuthSvc
}

func NewAuthHandler(svc *service.AuthSvc) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type userView struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	Active        bool   `json:"active"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          string(u.Role),
		PhoneNumber:   u.PhoneNumber,
		LicenseNumber: u.LicenseNumber,
		Active:        u.Active,
	}
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Email         string `json:"email" binding:"required,email"`
		Password      string `json:"password" binding:"required"`
		FirstName     string `json:"first_name" binding:"required"`
		LastName      string `json:"last_name" binding:"required"`
		Role          string `json:"role"`
		PhoneNumber   string `json:"phone_number"`
		LicenseNumber string `json:"license_number"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:         in.Email,
		Password:      in.Password,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Role:          domain.Role(in.Role),
		PhoneNumber:   in.PhoneNumber,
		LicenseNumber: in.LicenseNumber,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": toUserView(u)})
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   access,
		"refresh": refresh,
		"user":    toUserView(u),
	})
}
