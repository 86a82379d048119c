package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"taskr/internal/errors"
	"taskr/internal/service"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request. Field bounds
// mirror the registration form: name 4-25, email 6-40, password 6-40,
// confirm must repeat the password.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=4,max=25"`
	Email    string `json:"email" validate:"required,email,min=6,max=40"`
	Password string `json:"password" validate:"required,min=6,max=40"`
	Confirm  string `json:"confirm" validate:"required,eqfield=Password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message     string      `json:"message"`
	AccessToken string      `json:"access_token"`
	User        interface{} `json:"user,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Thanks for registering. Please login.",
		"user":    user,
	})
}

// Login godoc
// @Summary Login with username and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router / [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Name, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message:     "Welcome!",
		AccessToken: token,
		User:        user,
	})
}

// Logout godoc
// @Summary End the current session
// @Tags users
// @Produce json
// @Success 200 {object} map[string]string
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Logout is idempotent: a missing or already-revoked token still
	// results in "logged out".
	if token := bearerToken(c); token != "" {
		_ = h.authService.Logout(c.Request().Context(), token)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Goodbye!",
	})
}

// bearerToken extracts the token from the Authorization header, if any.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return ""
}
