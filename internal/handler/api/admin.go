package api

import (
	"errors"
	"net/http"

	reqdto "courtdesk/internal/handler/dto/request"
	resdto "courtdesk/internal/handler/dto/response"
	"courtdesk/internal/handler/middleware"
	"courtdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authUseCase usecase.AuthUseCase
}

func NewAdminHandler(authUseCase usecase.AuthUseCase) *AdminHandler {
	return &AdminHandler{
		authUseCase: authUseCase,
	}
}

// @Summary Admin login
// @Description Exchange admin credentials for a bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, "Please provide username and password")
		return
	}

	result, err := h.authUseCase.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"message": "Invalid username or password"},
			})
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": resdto.LoginResponse{
			Username: result.Username,
			Token:    result.Token,
		},
	})
}

// @Summary Verify token
// @Description Echo the authenticated admin principal
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /admin/verify [get]
func (h *AdminHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"username": middleware.GetAdminUser(c)},
	})
}
