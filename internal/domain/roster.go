package domain

// BuildRoster формирует начальный список гостей новой активности.
//
// Для активности внутри одной команды в список попадают все её участники.
// Для встречи двух команд - объединение участников обеих без повторов,
// сначала принимающая команда. Присутствие отмечено только у менеджера
// принимающей команды.
func BuildRoster(hosting, opponent *Team) []Guest {
	teams := []*Team{hosting}
	if opponent != nil && opponent.ID != hosting.ID {
		teams = append(teams, opponent)
	}

	seen := make(map[string]struct{})
	guests := make([]Guest, 0, len(hosting.Members))
	for _, team := range teams {
		for _, userID := range team.Members {
			if _, ok := seen[userID]; ok {
				continue
			}
			seen[userID] = struct{}{}
			guests = append(guests, Guest{
				UserID:     userID,
				Attendance: userID == hosting.ManagerID,
			})
		}
	}
	return guests
}
