package identity

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const callerKey = "caller_id"

// Authenticate извлекает токен из cookie или заголовка Authorization.
// Запросы без валидного токена проходят дальше анонимными: решение
// об отказе принимает бизнес-логика.
func Authenticate(tokens *TokenManager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := tokenFromRequest(c, cookieName); raw != "" {
				if userID, err := tokens.Parse(raw); err == nil {
					c.Set(callerKey, userID)
				}
			}
			return next(c)
		}
	}
}

// CallerID возвращает ID аутентифицированного пользователя или пустую строку.
func CallerID(c echo.Context) string {
	id, _ := c.Get(callerKey).(string)
	return id
}

func tokenFromRequest(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
