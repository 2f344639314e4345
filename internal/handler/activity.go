package handler

import (
	"net/http"

	"team-roster-service/internal/domain"
	"team-roster-service/internal/identity"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/sirupsen/logrus"
)

// ActivityHandler обрабатывает HTTP-запросы для активностей и посещаемости
type ActivityHandler struct {
	*BaseHandler
	activityUseCase domain.ActivityUseCase
}

// NewActivityHandler создает новый экземпляр ActivityHandler
func NewActivityHandler(activityUseCase domain.ActivityUseCase, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler:     NewBaseHandler(logger),
		activityUseCase: activityUseCase,
	}
}

// CreateActivity обрабатывает создание активности с автоматическим списком гостей
func (h *ActivityHandler) CreateActivity(c echo.Context) error {
	logEntry := h.logRequest(c, "create_activity")

	var req CreateActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"team":     req.Team,
		"opponent": req.Opponent,
	})
	logEntry.Info("Creating activity")

	activities, err := h.activityUseCase.CreateActivity(c.Request().Context(), identity.CallerID(c), domain.CreateActivityInput{
		Team:         req.Team,
		Opponent:     req.Opponent,
		Subject:      req.Subject,
		ActivityType: req.ActivityType,
		Date:         req.Date,
		Location:     req.Location,
	})
	if err != nil {
		return respondError(c, logEntry, err, "Failed to create activity")
	}

	logEntry.WithField("activities_count", len(activities)).Info("Activity created successfully")
	return c.JSON(http.StatusCreated, toActivityResponses(activities))
}

// ListActivities обрабатывает получение активностей команды (?team=)
func (h *ActivityHandler) ListActivities(c echo.Context) error {
	logEntry := h.logRequest(c, "list_activities")

	var team string
	if err := runtime.BindQueryParameter("form", true, true, "team", c.QueryParams(), &team); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithField("team", team)
	logEntry.Info("Listing activities")

	activities, err := h.activityUseCase.ListActivities(c.Request().Context(), identity.CallerID(c), team)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to list activities")
	}

	logEntry.WithField("activities_count", len(activities)).Info("Activities retrieved successfully")
	return c.JSON(http.StatusOK, toActivityResponses(activities))
}

// AddActivity обрабатывает привязку существующей активности к команде
func (h *ActivityHandler) AddActivity(c echo.Context) error {
	logEntry := h.logRequest(c, "add_activity")

	var req TeamActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"team":        req.Team,
		"activity_id": req.ActivityID,
	})
	logEntry.Info("Adding activity to team")

	activities, err := h.activityUseCase.AddActivity(c.Request().Context(), identity.CallerID(c), req.Team, req.ActivityID)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to add activity")
	}

	logEntry.WithField("activities_count", len(activities)).Info("Activity added successfully")
	return c.JSON(http.StatusOK, toActivityResponses(activities))
}

// UpdateActivity обрабатывает изменение активности и её списка гостей
func (h *ActivityHandler) UpdateActivity(c echo.Context) error {
	logEntry := h.logRequest(c, "update_activity")

	var req UpdateActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"team":        req.Team,
		"activity_id": req.ActivityID,
	})
	logEntry.Info("Updating activity")

	input := domain.UpdateActivityInput{
		Team:         req.Team,
		ActivityID:   req.ActivityID,
		Opponent:     req.Opponent,
		Subject:      req.Subject,
		ActivityType: req.ActivityType,
		Date:         req.Date,
		Location:     req.Location,
	}
	if req.Guests != nil {
		input.Guests = make([]domain.GuestInput, len(req.Guests))
		for i, g := range req.Guests {
			input.Guests[i] = domain.GuestInput{UserID: g.ID, Attendance: g.Attendance}
		}
	}

	activities, err := h.activityUseCase.UpdateActivity(c.Request().Context(), identity.CallerID(c), input)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to update activity")
	}

	logEntry.Info("Activity updated successfully")
	return c.JSON(http.StatusOK, toActivityResponses(activities))
}

// SetAttendance обрабатывает отметку присутствия одного гостя
func (h *ActivityHandler) SetAttendance(c echo.Context) error {
	logEntry := h.logRequest(c, "set_attendance")

	var req AttendanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"activity_id": req.ActivityID,
		"user_id":     req.GuestUserID,
	})
	logEntry.Info("Setting attendance")

	activity, err := h.activityUseCase.SetAttendance(c.Request().Context(), identity.CallerID(c), req.ActivityID, req.GuestUserID, req.Attendance)
	if err != nil {
		return respondError(c, logEntry, err, "Failed to set attendance")
	}

	logEntry.Info("Attendance updated successfully")
	return c.JSON(http.StatusOK, toActivityResponse(activity))
}

// DeleteActivity обрабатывает удаление активности менеджером принимающей команды
func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	logEntry := h.logRequest(c, "delete_activity")

	var req TeamActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, logEntry, err)
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"team":        req.Team,
		"activity_id": req.ActivityID,
	})
	logEntry.Info("Deleting activity")

	if err := h.activityUseCase.DeleteActivity(c.Request().Context(), identity.CallerID(c), req.Team, req.ActivityID); err != nil {
		return respondError(c, logEntry, err, "Failed to delete activity")
	}

	logEntry.Info("Activity deleted successfully")
	return c.JSON(http.StatusOK, map[string]string{
		"message": "activity deleted",
	})
}
