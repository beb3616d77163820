package postgres

import "time"

type fantasySeasonTableModel struct {
	ID        int64      `db:"id"`
	SeasonID  int64      `db:"season_id"`
	Name      string     `db:"name"`
	IsActive  bool       `db:"is_active"`
	LockDate  time.Time  `db:"lock_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type fantasyTeamTableModel struct {
	ID              int64      `db:"id"`
	FantasySeasonID int64      `db:"fantasy_season_id"`
	UserID          string     `db:"user_id"`
	Name            string     `db:"name"`
	TotalPoints     int        `db:"total_points"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type playerSelectionTableModel struct {
	ID            int64      `db:"id"`
	FantasyTeamID int64      `db:"fantasy_team_id"`
	PlayerID      int64      `db:"player_id"`
	Position      string     `db:"position"`
	PointsEarned  int        `db:"points_earned"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}
