package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskr/internal/auth"
	"taskr/internal/config"
	"taskr/internal/errors"
	"taskr/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessionStore auth.SessionStoreInterface,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	apiHandler *handler.APIHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.POST("/register", authHandler.Register)

	// Public read-only API: no ownership filtering by contract.
	api := e.Group("/api/v1")
	api.GET("/tasks", apiHandler.ListTasks)
	api.GET("/tasks/:id", apiHandler.GetTask)

	// Session-requiring routes. The token must validate and its session
	// record must still exist; anything else reads as "not logged in".
	secured := e.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			ErrorHandler: func(c echo.Context, err error) error {
				return loginRequired(c)
			},
		}),
		ResolveSession(sessionStore),
	)

	secured.GET("/tasks", taskHandler.ListTasks)
	secured.POST("/add", taskHandler.AddTask)
	secured.GET("/complete/:id", taskHandler.CompleteTask)
	secured.GET("/delete/:id", taskHandler.DeleteTask)
}

// ResolveSession looks up the token's session record and binds it to the
// request context. A token whose session was ended by logout is rejected.
// Identity comes from the session record, not the token claims, so a
// revoked session cannot act even with a cryptographically valid token.
func ResolveSession(sessionStore auth.SessionStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return loginRequired(c)
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return loginRequired(c)
			}
			sessionID, _ := claims["jti"].(string)
			if sessionID == "" {
				return loginRequired(c)
			}

			session, err := sessionStore.Get(c.Request().Context(), sessionID)
			if err != nil {
				return loginRequired(c)
			}

			c.Set(handler.ContextKeySession, session)
			return next(c)
		}
	}
}

func loginRequired(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrLoginRequired.Error(),
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
