package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/midgard/midgard-core/internal/domain"
)

// RegisterRoutes mounts the public auth endpoints on the api group and the
// profile endpoints on the guarded group.
func RegisterRoutes(public, protected *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}

	authGroup := public.Group("/auth")
	{
		authGroup.POST("/register", handler.register)
		authGroup.POST("/login", handler.login)
	}

	meGroup := protected.Group("/auth")
	{
		meGroup.GET("/me", handler.me)
		meGroup.PATCH("/me", handler.updateMe)
	}
}

type httpHandler struct {
	service *Service
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
}

type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	CoinsBalance int64     `json:"coinsBalance"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *httpHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, marshalAuthResponse(result))
}

func (h *httpHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, marshalAuthResponse(result))
}

func (h *httpHandler) me(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		WriteError(c, domain.Unauthorized(msgTokenMissing))
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), principal.UserID)
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, marshalUser(user))
}

func (h *httpHandler) updateMe(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		WriteError(c, domain.Unauthorized(msgTokenMissing))
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), principal.UserID, UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, marshalUser(user))
}

// WriteError maps the domain taxonomy onto transport responses: conflict
// 409, unauthorized 401, not found 404, message passed through verbatim.
// Anything else is an unexpected fault and yields a generic 500; the detail
// stays in the logs.
func WriteError(c *gin.Context, err error) {
	if domainErr, ok := domain.As(err); ok {
		status := statusFor(domainErr.Kind)
		c.JSON(status, gin.H{
			"statusCode": status,
			"message":    domainErr.Message,
		})
		return
	}

	zap.L().Error("unexpected failure",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"statusCode": http.StatusInternalServerError,
		"message":    "Erro interno do servidor",
	})
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeValidationError turns binding failures into a structured field-error
// list before any use case runs.
func writeValidationError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			messages = append(messages, fmt.Sprintf("%s: failed on %q", fieldErr.Field(), fieldErr.Tag()))
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"statusCode": http.StatusBadRequest,
			"message":    messages,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"statusCode": http.StatusBadRequest,
		"message":    err.Error(),
	})
}

func marshalUser(user User) userResponse {
	return userResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		CoinsBalance: user.CoinsBalance,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func marshalAuthResponse(result AuthResult) authResponse {
	return authResponse{
		User:  marshalUser(result.User),
		Token: result.Token,
	}
}
