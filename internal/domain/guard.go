package domain

// RequireManager решает, может ли вызывающий изменять структуру команды.
// Единственное правило допуска: вызывающий должен быть менеджером команды.
func RequireManager(team *Team, callerID string) bool {
	if team == nil || callerID == "" {
		return false
	}
	return team.ManagerID == callerID
}
