package handler

import (
	"net/http"

	"team-roster-service/internal/domain"
	"team-roster-service/internal/identity"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/sirupsen/logrus"
)

// UserHandler обрабатывает HTTP-запросы, связанные с пользователями.
type UserHandler struct {
	*BaseHandler
	userUseCase domain.UserUseCase
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(userUseCase domain.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userUseCase: userUseCase,
	}
}

// ListUsers обрабатывает получение всех пользователей.
func (h *UserHandler) ListUsers(c echo.Context) error {
	logEntry := h.logRequest(c, "list_users")
	logEntry.Info("Listing users")

	users, err := h.userUseCase.GetUsers(c.Request().Context())
	if err != nil {
		return respondError(c, logEntry, err, "Failed to list users")
	}

	logEntry.WithField("users_count", len(users)).Info("Users retrieved successfully")
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// GetUser обрабатывает получение пользователя по имени.
func (h *UserHandler) GetUser(c echo.Context) error {
	logEntry := h.logRequest(c, "get_user")

	username, err := bindUsername(c)
	if err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("username", username)
	logEntry.Info("Getting user")

	user, err := h.userUseCase.GetUser(c.Request().Context(), username)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to get user")
	}

	logEntry.Info("User retrieved successfully")
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

// UpdateUser обрабатывает изменение собственного профиля.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	logEntry := h.logRequest(c, "update_user")

	username, err := bindUsername(c)
	if err != nil {
		return badRequest(c, logEntry, err)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("username", username)
	logEntry.Info("Updating user")

	input := domain.UpdateUserInput{
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Password:  req.Password,
		Avatar:    req.Avatar,
	}
	if req.Email != nil {
		email := string(*req.Email)
		input.Email = &email
	}

	user, err := h.userUseCase.UpdateUser(c.Request().Context(), identity.CallerID(c), username, input)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to update user")
	}

	logEntry.Info("User updated successfully")
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

func bindUsername(c echo.Context) (string, error) {
	var username string
	err := runtime.BindStyledParameterWithLocation("simple", false, "username", runtime.ParamLocationPath, c.Param("username"), &username)
	return username, err
}
