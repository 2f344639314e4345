package handler

import (
	"net/http"
	"time"

	"team-roster-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "internal server error"

// Вспомогательные функции преобразования доменных моделей в модели ответа

func toUserResponse(p domain.UserProfile) UserResponse {
	return UserResponse{
		ID:        p.ID,
		Username:  p.Username,
		Firstname: p.Firstname,
		Lastname:  p.Lastname,
		Email:     p.Email,
		Avatar:    p.Avatar,
	}
}

func toUserResponses(profiles []domain.UserProfile) []UserResponse {
	result := make([]UserResponse, len(profiles))
	for i, p := range profiles {
		result[i] = toUserResponse(p)
	}
	return result
}

func toActivityResponse(a *domain.ActivityView) ActivityResponse {
	guests := make([]GuestResponse, len(a.Guests))
	for i, g := range a.Guests {
		guests[i] = GuestResponse{
			ID:         g.ID,
			Username:   g.Username,
			Firstname:  g.Firstname,
			Lastname:   g.Lastname,
			Avatar:     g.Avatar,
			Attendance: g.Attendance,
		}
	}

	var date *time.Time
	if !a.Date.IsZero() {
		d := a.Date
		date = &d
	}

	return ActivityResponse{
		ID:           a.ID,
		Subject:      a.Subject,
		ActivityType: a.Type.String(),
		HostingTeam:  TeamRefResponse{ID: a.HostingTeam.ID, Name: a.HostingTeam.Name},
		Opponent:     TeamRefResponse{ID: a.Opponent.ID, Name: a.Opponent.Name},
		Date:         date,
		Location:     a.Location,
		Guests:       guests,
	}
}

func toActivityResponses(activities []*domain.ActivityView) []ActivityResponse {
	result := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		result[i] = toActivityResponse(a)
	}
	return result
}

func toTeamResponse(t *domain.TeamView) TeamResponse {
	return TeamResponse{
		ID:             t.ID,
		Name:           t.Name,
		Sport:          t.Sport,
		Manager:        toUserResponse(t.Manager),
		Members:        toUserResponses(t.Members),
		PendingMembers: toUserResponses(t.PendingMembers),
		Activities:     toActivityResponses(t.Activities),
		InviteCode:     t.InviteCode,
	}
}

func toTeamResponses(teams []*domain.TeamView) []TeamResponse {
	result := make([]TeamResponse, len(teams))
	for i, t := range teams {
		result[i] = toTeamResponse(t)
	}
	return result
}

func getHTTPStatusCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError пишет ответ об ошибке. Текст внутренних ошибок клиенту не отдается.
func respondError(c echo.Context, logEntry *logrus.Entry, err error, msg string) error {
	status := getHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logEntry.WithError(err).Error(msg)
		return c.JSON(status, ErrorResponse{Error: internalErrorMessage})
	}

	logEntry.WithError(err).Warn(msg)
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, logEntry *logrus.Entry, err error) error {
	logEntry.WithError(err).Warn("Failed to bind request")
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
