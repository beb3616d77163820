package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/goalcrush/fantasy-scoring/internal/domain/match"
	qb "github.com/goalcrush/fantasy-scoring/internal/platform/querybuilder"
)

func TestCompletedSeasonFilterMatchesDomainStatuses(t *testing.T) {
	t.Parallel()

	query, args, err := qb.Select("*").
		From("matches").
		Where(
			qb.Eq("season_id", int64(7)),
			qb.In("UPPER(status)", completedStatusValues()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("played_at", "id").
		ToSQL()
	if err != nil {
		t.Fatalf("build completed matches query: %v", err)
	}

	wantQuery := "SELECT * FROM matches WHERE season_id = $1 AND UPPER(status) IN ($2, $3, $4)" +
		" AND deleted_at IS NULL ORDER BY played_at, id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}

	statuses := match.CompletedStatuses()
	if len(args) != 1+len(statuses) {
		t.Fatalf("args: got=%d want=%d", len(args), 1+len(statuses))
	}
	for i, status := range statuses {
		if got := fmt.Sprintf("%v", args[i+1]); got != status {
			t.Fatalf("arg %d: got=%q want=%q", i+1, got, status)
		}
		if !match.IsCompletedStatus(status) {
			t.Fatalf("filter value %q is not a completed status in the domain", status)
		}
	}
}

func TestMatchToDomainAllowsNullPlayedAt(t *testing.T) {
	t.Parallel()

	home, away := int64(11), int64(12)
	homeScore, awayScore := 2, 0
	row := matchTableModel{
		ID:         1,
		SeasonID:   7,
		HomeTeamID: &home,
		AwayTeamID: &away,
		HomeScore:  &homeScore,
		AwayScore:  &awayScore,
		Status:     "completed",
	}

	m := matchToDomain(row)
	if m.PlayedAt != nil {
		t.Fatalf("played at: got=%v want nil", m.PlayedAt)
	}
	if m.Status != match.StatusCompleted {
		t.Fatalf("status: got=%q want=%q", m.Status, match.StatusCompleted)
	}
	if !m.HasFullResult() {
		t.Fatal("match with both scores must report a full result")
	}

	playedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	row.PlayedAt = &playedAt
	if m := matchToDomain(row); m.PlayedAt == nil || !m.PlayedAt.Equal(playedAt) {
		t.Fatalf("played at: got=%v want=%v", m.PlayedAt, playedAt)
	}
}
