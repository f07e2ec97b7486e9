package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/internal/service"
)

// actorFrom rebuilds the explicit actor from the claims the JWTAuth
// middleware stashed on the context.
func actorFrom(c *gin.Context) service.Actor {
	sub, _ := c.Get("sub")
	role, _ := c.Get("role")
	id, _ := sub.(string)
	r, _ := role.(string)
	return service.Actor{ID: id, Role: domain.Role(r)}
}

func respondErr(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState):
		code = http.StatusConflict
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
