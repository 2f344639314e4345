package handler

import (
	"net/http"

	"team-roster-service/internal/domain"
	"team-roster-service/internal/identity"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/sirupsen/logrus"
)

// TeamHandler обрабатывает HTTP-запросы для управления командами
type TeamHandler struct {
	*BaseHandler
	teamUseCase domain.TeamUseCase
}

// NewTeamHandler создает новый экземпляр TeamHandler
func NewTeamHandler(teamUseCase domain.TeamUseCase, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{
		BaseHandler: NewBaseHandler(logger),
		teamUseCase: teamUseCase,
	}
}

// CreateTeam обрабатывает создание команды; вызывающий становится менеджером
func (h *TeamHandler) CreateTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "create_team")

	var req CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("team_name", req.Name)
	logEntry.Info("Creating team")

	team, err := h.teamUseCase.CreateTeam(c.Request().Context(), identity.CallerID(c), req.Name, req.Sport)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to create team")
	}

	logEntry.WithField("team_id", team.ID).Info("Team created successfully")
	return c.JSON(http.StatusCreated, toTeamResponse(team))
}

// GetTeam обрабатывает получение команды по названию (?team=)
func (h *TeamHandler) GetTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "get_team")

	var name string
	if err := runtime.BindQueryParameter("form", true, true, "team", c.QueryParams(), &name); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("team_name", name)
	logEntry.Info("Getting team")

	team, err := h.teamUseCase.GetTeam(c.Request().Context(), name)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to get team")
	}

	logEntry.WithField("members_count", len(team.Members)).Info("Team retrieved successfully")
	return c.JSON(http.StatusOK, toTeamResponse(team))
}

// ListTeams обрабатывает получение всех команд
func (h *TeamHandler) ListTeams(c echo.Context) error {
	logEntry := h.logRequest(c, "list_teams")
	logEntry.Info("Listing teams")

	teams, err := h.teamUseCase.ListTeams(c.Request().Context())
	if err != nil {
		return respondError(c, logEntry, err, "Failed to list teams")
	}

	logEntry.WithField("teams_count", len(teams)).Info("Teams retrieved successfully")
	return c.JSON(http.StatusOK, toTeamResponses(teams))
}

// ListTeamsByUser обрабатывает получение команд, в которых состоит пользователь
func (h *TeamHandler) ListTeamsByUser(c echo.Context) error {
	logEntry := h.logRequest(c, "list_user_teams")

	var userID string
	err := runtime.BindStyledParameterWithLocation("simple", false, "userId", runtime.ParamLocationPath, c.Param("userId"), &userID)
	if err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("user_id", userID)
	logEntry.Info("Listing user teams")

	teams, err := h.teamUseCase.ListTeamsByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to list user teams")
	}

	logEntry.WithField("teams_count", len(teams)).Info("User teams retrieved successfully")
	return c.JSON(http.StatusOK, toTeamResponses(teams))
}

// GetManagedTeam обрабатывает получение команды текущего менеджера
func (h *TeamHandler) GetManagedTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "get_managed_team")
	logEntry.Info("Getting managed team")

	team, err := h.teamUseCase.GetTeamByManager(c.Request().Context(), identity.CallerID(c))
	if err != nil {
		return respondError(c, logEntry, err, "Failed to get managed team")
	}

	logEntry.WithField("team_id", team.ID).Info("Managed team retrieved successfully")
	return c.JSON(http.StatusOK, toTeamResponse(team))
}

// UpdateTeam обрабатывает изменение названия и вида спорта
func (h *TeamHandler) UpdateTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "update_team")

	var teamID string
	err := runtime.BindStyledParameterWithLocation("simple", false, "teamId", runtime.ParamLocationPath, c.Param("teamId"), &teamID)
	if err != nil {
		return badRequest(c, logEntry, err)
	}

	var req UpdateTeamRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("team_id", teamID)
	logEntry.Info("Updating team")

	team, err := h.teamUseCase.UpdateTeam(c.Request().Context(), identity.CallerID(c), teamID, domain.UpdateTeamInput{
		Name:  req.Name,
		Sport: req.Sport,
	})
	if err != nil {
		return respondError(c, logEntry, err, "Failed to update team")
	}

	logEntry.Info("Team updated successfully")
	return c.JSON(http.StatusOK, toTeamResponse(team))
}

// DeleteTeam обрабатывает удаление команды менеджером
func (h *TeamHandler) DeleteTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "delete_team")

	var req DeleteTeamRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("team_name", req.Name)
	logEntry.Info("Deleting team")

	if err := h.teamUseCase.DeleteTeam(c.Request().Context(), identity.CallerID(c), req.Name); err != nil {
		return respondError(c, logEntry, err, "Failed to delete team")
	}

	logEntry.Info("Team deleted successfully")
	return c.JSON(http.StatusOK, map[string]string{
		"message": "team deleted",
	})
}

// JoinTeam обрабатывает заявку на вступление по коду приглашения
func (h *TeamHandler) JoinTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "join_team")

	var req JoinTeamRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}
	if req.UserID == "" {
		req.UserID = identity.CallerID(c)
	}

	logEntry = logEntry.WithField("user_id", req.UserID)
	logEntry.Info("Requesting to join team")

	team, err := h.teamUseCase.RequestJoin(c.Request().Context(), req.UserID, req.InviteCode)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to request join")
	}

	logEntry.WithField("team_id", team.ID).Info("Join request submitted")
	return c.JSON(http.StatusOK, toTeamResponse(team))
}

// ConfirmMember обрабатывает подтверждение заявки менеджером
func (h *TeamHandler) ConfirmMember(c echo.Context) error {
	logEntry := h.logRequest(c, "confirm_member")

	var req TeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"team_name": req.TeamName,
		"user_id":   req.UserID,
	})
	logEntry.Info("Confirming member")

	team, err := h.teamUseCase.ConfirmMember(c.Request().Context(), identity.CallerID(c), req.TeamName, req.UserID)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to confirm member")
	}

	logEntry.Info("Member confirmed successfully")
	return c.JSON(http.StatusOK, toTeamResponse(team))
}

// RemoveMember обрабатывает удаление участника или заявки менеджером
func (h *TeamHandler) RemoveMember(c echo.Context) error {
	logEntry := h.logRequest(c, "remove_member")

	var req TeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"team_name": req.TeamName,
		"user_id":   req.UserID,
	})
	logEntry.Info("Removing member")

	team, err := h.teamUseCase.RemoveMember(c.Request().Context(), identity.CallerID(c), req.TeamName, req.UserID)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to remove member")
	}

	logEntry.Info("Member removed successfully")
	return c.JSON(http.StatusOK, toTeamResponse(team))
}
