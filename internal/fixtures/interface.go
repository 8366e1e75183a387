package fixtures

// LeagueClient defines the interface for fetching fixtures from the
// external league API.
type LeagueClient interface {
	GetFixtures(params *SearchFixturesParams) ([]Fixture, error)
}
