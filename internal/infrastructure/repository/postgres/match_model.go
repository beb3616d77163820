package postgres

import "time"

type matchTableModel struct {
	ID         int64      `db:"id"`
	SeasonID   int64      `db:"season_id"`
	HomeTeamID *int64     `db:"home_team_id"`
	AwayTeamID *int64     `db:"away_team_id"`
	HomeScore  *int       `db:"home_score"`
	AwayScore  *int       `db:"away_score"`
	Status     string     `db:"status"`
	PlayedAt   *time.Time `db:"played_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

// playerPerformanceTableModel is read with COALESCE on the numeric
// columns so absent values reach the domain as zero.
type playerPerformanceTableModel struct {
	ID            int64   `db:"id"`
	MatchID       int64   `db:"match_id"`
	PlayerID      int64   `db:"player_id"`
	TeamID        *int64  `db:"team_id"`
	Position      *string `db:"position"`
	Goals         int     `db:"goals"`
	Assists       int     `db:"assists"`
	YellowCards   int     `db:"yellow_cards"`
	RedCards      int     `db:"red_cards"`
	MinutesPlayed int     `db:"minutes_played"`
	Saves         int     `db:"saves"`
}
