package handler

import (
	"net/http"
	"time"

	"team-roster-service/internal/domain"
	"team-roster-service/internal/identity"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*TeamHandler
	*ActivityHandler
	*UserHandler
	*AuthHandler
}

func NewAPIHandler(
	teamUseCase domain.TeamUseCase,
	activityUseCase domain.ActivityUseCase,
	userUseCase domain.UserUseCase,
	cookieName string,
	cookieTTL time.Duration,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		TeamHandler:     NewTeamHandler(teamUseCase, logger),
		ActivityHandler: NewActivityHandler(activityUseCase, logger),
		UserHandler:     NewUserHandler(userUseCase, logger),
		AuthHandler:     NewAuthHandler(userUseCase, cookieName, cookieTTL, logger),
	}
}

// RegisterHandlers регистрирует маршруты /api и /health.
func RegisterHandlers(e *echo.Echo, h *APIHandler, tokens *identity.TokenManager, cookieName string) {
	api := e.Group("/api", identity.Authenticate(tokens, cookieName))

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	users := api.Group("/user")
	users.GET("", h.ListUsers)
	users.GET("/:username", h.GetUser)
	users.PUT("/:username", h.UpdateUser, RequireAuth)

	teams := api.Group("/team")
	teams.GET("", h.GetTeam)
	teams.GET("/all", h.ListTeams)
	teams.GET("/all/:userId", h.ListTeamsByUser)
	teams.GET("/manager", h.GetManagedTeam, RequireAuth)
	teams.POST("", h.CreateTeam, RequireAuth)
	teams.POST("/user/join", h.JoinTeam, RequireAuth)
	teams.POST("/user/add", h.ConfirmMember, RequireAuth)
	teams.POST("/user/remove", h.RemoveMember, RequireAuth)
	teams.PUT("/:teamId", h.UpdateTeam, RequireAuth)
	teams.DELETE("", h.DeleteTeam, RequireAuth)

	activities := api.Group("/activity", RequireAuth)
	activities.POST("", h.CreateActivity)
	activities.GET("", h.ListActivities)
	activities.POST("/add", h.AddActivity)
	activities.PUT("/update", h.UpdateActivity)
	activities.PUT("/attendance", h.SetAttendance)
	activities.DELETE("", h.DeleteActivity)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
