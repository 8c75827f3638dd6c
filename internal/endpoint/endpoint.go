// Package endpoint describes the API documents plfetch saves.
package endpoint

import "fmt"

const (
	// BaseURL is the root of the Pulselive football API.
	BaseURL = "https://footballapi.pulselive.com/football"

	// DefaultSeason is the compSeasons id of the Premier League 2025/26 season.
	DefaultSeason = 777

	// DefaultTeam is the Pulselive team id for Liverpool.
	DefaultTeam = 10

	// Premier League competition id.
	premierLeague = 1

	fixturesPageSize = 10
)

// Output filenames.
const (
	StandingsFile = "standings.json"
	FixturesFile  = "fixtures.json"
)

// Endpoint pairs a source URL with the file its payload is saved to.
type Endpoint struct {
	Name     string
	URL      string
	Filename string
}

// StandingsURL returns the league table URL for a season.
func StandingsURL(season int) string {
	return fmt.Sprintf("%s/standings?compSeasons=%d", BaseURL, season)
}

// FixturesURL returns the URL for a team's next ten unplayed (U) or live (L)
// matches in the Premier League, soonest first.
func FixturesURL(season, team int) string {
	return fmt.Sprintf("%s/fixtures?comps=%d&compSeasons=%d&teams=%d&page=0&pageSize=%d&sort=asc&statuses=U,L&altIds=true",
		BaseURL, premierLeague, season, team, fixturesPageSize)
}

// Options selects what Defaults builds. Zero values fall back to the defaults;
// non-empty URL overrides replace the built URL verbatim.
type Options struct {
	Season       int
	Team         int
	StandingsURL string
	FixturesURL  string
}

// Defaults returns the standings and fixtures endpoints, in that order.
func Defaults(opts Options) []Endpoint {
	season := opts.Season
	if season == 0 {
		season = DefaultSeason
	}
	team := opts.Team
	if team == 0 {
		team = DefaultTeam
	}

	standings := opts.StandingsURL
	if standings == "" {
		standings = StandingsURL(season)
	}
	fixtures := opts.FixturesURL
	if fixtures == "" {
		fixtures = FixturesURL(season, team)
	}

	return []Endpoint{
		{Name: "standings", URL: standings, Filename: StandingsFile},
		{Name: "fixtures", URL: fixtures, Filename: FixturesFile},
	}
}

// Filenames lists the output files in the order Defaults produces them.
func Filenames() []string {
	return []string{StandingsFile, FixturesFile}
}
