package handler

import (
	"net/http"
	"time"

	"team-roster-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AuthHandler обрабатывает регистрацию, вход и выход.
type AuthHandler struct {
	*BaseHandler
	userUseCase domain.UserUseCase
	cookieName  string
	cookieTTL   time.Duration
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(userUseCase domain.UserUseCase, cookieName string, cookieTTL time.Duration, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		userUseCase: userUseCase,
		cookieName:  cookieName,
		cookieTTL:   cookieTTL,
	}
}

// Register обрабатывает регистрацию пользователя.
func (h *AuthHandler) Register(c echo.Context) error {
	logEntry := h.logRequest(c, "register")

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("username", req.Username)
	logEntry.Info("Registering user")

	user, err := h.userUseCase.Register(c.Request().Context(), domain.RegisterInput{
		Username:   req.Username,
		Firstname:  req.Firstname,
		Lastname:   req.Lastname,
		Email:      string(req.Email),
		Password:   req.Password,
		Avatar:     req.Avatar,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		return respondError(c, logEntry, err, "Failed to register user")
	}

	logEntry.WithField("user_id", user.ID).Info("User registered successfully")
	return c.JSON(http.StatusCreated, toUserResponse(*user))
}

// Login обрабатывает вход: токен возвращается в теле и в cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	logEntry := h.logRequest(c, "login")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("username", req.Username)
	logEntry.Info("Logging in")

	result, err := h.userUseCase.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to log in")
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logEntry.WithField("user_id", result.User.ID).Info("User logged in successfully")
	return c.JSON(http.StatusOK, LoginResponse{
		User:      toUserResponse(result.User),
		Token:     result.Token,
		ExpiresIn: int64(h.cookieTTL.Seconds()),
	})
}

// Logout очищает cookie с токеном.
func (h *AuthHandler) Logout(c echo.Context) error {
	logEntry := h.logRequest(c, "logout")

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	logEntry.Info("User logged out")
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out",
	})
}
