package roster

// RosterStore defines the interface for interacting with team and roster data.
type RosterStore interface {
	UpsertTeam(team Team) error
	GetTeam(teamID string) (*Team, error)
	GetAllTeams() ([]Team, error)
	AddMember(teamID, userID, name string) error
	RemoveMember(teamID, userID string) error
	GetRoster(teamID string) ([]Member, error)
	TeamsForUser(userID string) ([]Team, error)
	Clear()
}
