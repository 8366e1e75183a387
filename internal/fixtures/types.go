package fixtures

// SearchFixturesParams are the query parameters for fetching league
// fixtures from the league API.
type SearchFixturesParams struct {
	LeagueID string
	TeamIDs  []string
	// FromStartDate is an ISO 8601 timestamp; fixtures starting before
	// it are excluded.
	FromStartDate string
}

// Fixture is a league game as reported by the league API. Times are UTC.
type Fixture struct {
	FixtureID  string `json:"fixture_id"`
	LeagueID   string `json:"league_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	// StartDate is formatted as 2006-01-02T15:04:05.
	StartDate string `json:"start_date"`
	Status    string `json:"status"`
}

// fixturesResponse is the wire shape of the league API list endpoint.
type fixturesResponse struct {
	Fixtures []Fixture `json:"fixtures"`
	Page     int       `json:"page"`
	Total    int       `json:"total"`
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Fetched  int      `json:"fetched"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
	DryRun   bool     `json:"dry_run"`
}
