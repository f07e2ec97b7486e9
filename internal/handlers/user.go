package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/internal/service"
)

type UserHandler struct {
	svc  *service.UserSvc
	auth *service.AuthSvc
}

func NewUserHandler(svc *service.UserSvc, auth *service.AuthSvc) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

// POST /v1/users (ADMIN, onboards a staff account directly)
func (h *UserHandler) Create(c *gin.Context) {
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
	u, err := h.auth.CreateUser(c.Request.Context(), actorFrom(c), service.RegisterInput{
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
	c.JSON(http.StatusCreated, toUserView(u))
}

// GET /v1/users (ADMIN)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, toUserView(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/users/colleagues (physiotherapists picking a swap partner)
func (h *UserHandler) Colleagues(c *gin.Context) {
	users, err := h.svc.Colleagues(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	type colleague struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	out := make([]colleague, 0, len(users))
	for _, u := range users {
		out = append(out, colleague{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName})
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	actor := actorFrom(c)
	u, err := h.svc.GetByID(c.Request.Context(), actor, actor.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserView(u))
}

// GET /v1/users/:id (self or ADMIN)
func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserView(u))
}

// PUT /v1/users/:id (self or ADMIN)
func (h *UserHandler) Update(c *gin.Context) {
	var in struct {
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		PhoneNumber   string `json:"phone_number"`
		LicenseNumber string `json:"license_number"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.Update(c.Request.Context(), actorFrom(c), c.Param("id"), service.UpdateUserInput{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		PhoneNumber:   in.PhoneNumber,
		LicenseNumber: in.LicenseNumber,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserView(u))
}

// DELETE /v1/users/:id (ADMIN, deactivates)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deactivated"})
}
