package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goalcrush/fantasy-scoring/internal/domain/fantasy"
	"github.com/goalcrush/fantasy-scoring/internal/domain/match"
	"github.com/goalcrush/fantasy-scoring/internal/domain/scoring"
	"github.com/goalcrush/fantasy-scoring/internal/infrastructure/repository/memory"
)

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

type scoringFixture struct {
	matchRepo   *memory.MatchRepository
	fantasyRepo *memory.FantasyRepository
	scoringRepo *memory.ScoringRepository
	service     *MatchScoringService
}

// newScoringFixture wires one completed 2-0 home win with a forward
// and a goalkeeper selected on the same fantasy team.
func newScoringFixture(publisher MatchScoredPublisher) scoringFixture {
	matches := []match.Match{
		{
			ID:         1,
			SeasonID:   1,
			HomeTeamID: int64Ptr(11),
			AwayTeamID: int64Ptr(12),
			HomeScore:  intPtr(2),
			AwayScore:  intPtr(0),
			Status:     match.StatusCompleted,
		},
	}
	performances := []match.PlayerPerformance{
		{
			ID:            501,
			MatchID:       1,
			PlayerID:      10,
			TeamID:        int64Ptr(11),
			Position:      strPtr("FW"),
			Goals:         2,
			Assists:       1,
			YellowCards:   1,
			MinutesPlayed: 70,
		},
		{
			ID:            502,
			MatchID:       1,
			PlayerID:      20,
			TeamID:        int64Ptr(11),
			Position:      strPtr("GK"),
			Saves:         5,
			MinutesPlayed: 90,
		},
	}
	seasons := []fantasy.Season{
		{ID: 100, SeasonID: 1, Name: "June", IsActive: true},
		{ID: 101, SeasonID: 1, Name: "May", IsActive: false},
		{ID: 102, SeasonID: 9, Name: "Other", IsActive: true},
	}
	teams := []fantasy.Team{
		{ID: 200, FantasySeasonID: 100, UserID: "user-1", Name: "Team One"},
	}
	selections := []fantasy.PlayerSelection{
		{ID: 300, FantasyTeamID: 200, PlayerID: 10, Position: "FW"},
		{ID: 301, FantasyTeamID: 200, PlayerID: 20, Position: "GK"},
		{ID: 302, FantasyTeamID: 200, PlayerID: 99, Position: "MF"},
	}

	matchRepo := memory.NewMatchRepository(matches, performances)
	fantasyRepo := memory.NewFantasyRepository(seasons, teams, selections)
	scoringRepo := memory.NewScoringRepository()

	totals := NewTeamTotalService(fantasyRepo, scoringRepo)
	service := NewMatchScoringService(matchRepo, fantasyRepo, scoringRepo, totals, publisher, scoring.DefaultRuleSet())

	return scoringFixture{
		matchRepo:   matchRepo,
		fantasyRepo: fantasyRepo,
		scoringRepo: scoringRepo,
		service:     service,
	}
}

func TestScoreMatchComputesAndAggregates(t *testing.T) {
	t.Parallel()

	fx := newScoringFixture(nil)

	result, err := fx.service.ScoreMatch(context.Background(), 1)
	if err != nil {
		t.Fatalf("score match: %v", err)
	}

	if result.MatchID != 1 {
		t.Fatalf("match id: got=%d want=%d", result.MatchID, 1)
	}
	if result.PlayersEvaluated != 2 {
		t.Fatalf("players evaluated: got=%d want=%d", result.PlayersEvaluated, 2)
	}
	if result.PerformancesProcessed != 2 {
		t.Fatalf("performances processed: got=%d want=%d", result.PerformancesProcessed, 2)
	}
	if result.FantasySeasonsTouched != 1 {
		t.Fatalf("fantasy seasons touched: got=%d want=%d", result.FantasySeasonsTouched, 1)
	}

	forward, ok := fx.scoringRepo.Row(300, 1)
	if !ok {
		t.Fatalf("missing performance row for forward selection")
	}
	if forward.Breakdown.TotalPoints != 13 {
		t.Fatalf("forward total points: got=%d want=%d", forward.Breakdown.TotalPoints, 13)
	}

	keeper, ok := fx.scoringRepo.Row(301, 1)
	if !ok {
		t.Fatalf("missing performance row for goalkeeper selection")
	}
	if keeper.Breakdown.TotalPoints != 8 {
		t.Fatalf("goalkeeper total points: got=%d want=%d", keeper.Breakdown.TotalPoints, 8)
	}

	if _, ok := fx.scoringRepo.Row(302, 1); ok {
		t.Fatalf("selection without a stat line must not get a row")
	}

	forwardSel, _ := fx.fantasyRepo.Selection(300)
	if forwardSel.PointsEarned != 13 {
		t.Fatalf("forward selection points earned: got=%d want=%d", forwardSel.PointsEarned, 13)
	}
	keeperSel, _ := fx.fantasyRepo.Selection(301)
	if keeperSel.PointsEarned != 8 {
		t.Fatalf("goalkeeper selection points earned: got=%d want=%d", keeperSel.PointsEarned, 8)
	}
	team, _ := fx.fantasyRepo.Team(200)
	if team.TotalPoints != 21 {
		t.Fatalf("team total points: got=%d want=%d", team.TotalPoints, 21)
	}
}

func TestScoreMatchIsIdempotent(t *testing.T) {
	t.Parallel()

	fx := newScoringFixture(nil)
	ctx := context.Background()

	first, err := fx.service.ScoreMatch(ctx, 1)
	if err != nil {
		t.Fatalf("first score match: %v", err)
	}
	firstForward, _ := fx.scoringRepo.Row(300, 1)

	second, err := fx.service.ScoreMatch(ctx, 1)
	if err != nil {
		t.Fatalf("second score match: %v", err)
	}

	if first != second {
		t.Fatalf("results differ between runs: first=%+v second=%+v", first, second)
	}
	if fx.scoringRepo.RowCount() != 2 {
		t.Fatalf("row count after rerun: got=%d want=%d", fx.scoringRepo.RowCount(), 2)
	}
	secondForward, _ := fx.scoringRepo.Row(300, 1)
	if firstForward.Breakdown != secondForward.Breakdown {
		t.Fatalf("breakdown changed on rerun: first=%+v second=%+v", firstForward.Breakdown, secondForward.Breakdown)
	}
	team, _ := fx.fantasyRepo.Team(200)
	if team.TotalPoints != 21 {
		t.Fatalf("team total after rerun: got=%d want=%d", team.TotalPoints, 21)
	}
}

func TestScoreMatchConvergesAfterCorrection(t *testing.T) {
	t.Parallel()

	fx := newScoringFixture(nil)
	ctx := context.Background()

	if _, err := fx.service.ScoreMatch(ctx, 1); err != nil {
		t.Fatalf("initial score match: %v", err)
	}

	fx.matchRepo.UpdatePerformance(match.PlayerPerformance{
		ID:            501,
		MatchID:       1,
		PlayerID:      10,
		TeamID:        int64Ptr(11),
		Position:      strPtr("FW"),
		Goals:         3,
		Assists:       1,
		YellowCards:   1,
		MinutesPlayed: 70,
	})

	if _, err := fx.service.ScoreMatch(ctx, 1); err != nil {
		t.Fatalf("rescore after correction: %v", err)
	}

	if fx.scoringRepo.RowCount() != 2 {
		t.Fatalf("row count after correction: got=%d want=%d", fx.scoringRepo.RowCount(), 2)
	}
	forward, _ := fx.scoringRepo.Row(300, 1)
	if forward.Breakdown.GoalPoints != 12 {
		t.Fatalf("goal points after correction: got=%d want=%d", forward.Breakdown.GoalPoints, 12)
	}
	if forward.Breakdown.TotalPoints != 17 {
		t.Fatalf("total points after correction: got=%d want=%d", forward.Breakdown.TotalPoints, 17)
	}
	team, _ := fx.fantasyRepo.Team(200)
	if team.TotalPoints != 25 {
		t.Fatalf("team total after correction: got=%d want=%d", team.TotalPoints, 25)
	}
}

func TestScoreMatchErrors(t *testing.T) {
	t.Parallel()

	incomplete := match.Match{
		ID:         2,
		SeasonID:   1,
		HomeTeamID: int64Ptr(11),
		AwayTeamID: int64Ptr(12),
		HomeScore:  intPtr(1),
		Status:     match.StatusCompleted,
	}
	noTeam := match.Match{
		ID:        3,
		SeasonID:  1,
		HomeScore: intPtr(1),
		AwayScore: intPtr(1),
		Status:    match.StatusCompleted,
	}

	matchRepo := memory.NewMatchRepository([]match.Match{incomplete, noTeam}, nil)
	fantasyRepo := memory.NewFantasyRepository(nil, nil, nil)
	scoringRepo := memory.NewScoringRepository()
	totals := NewTeamTotalService(fantasyRepo, scoringRepo)
	service := NewMatchScoringService(matchRepo, fantasyRepo, scoringRepo, totals, nil, scoring.DefaultRuleSet())

	ctx := context.Background()

	if _, err := service.ScoreMatch(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing match: got err=%v want ErrNotFound", err)
	}
	if _, err := service.ScoreMatch(ctx, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing team reference: got err=%v want ErrNotFound", err)
	}
	if _, err := service.ScoreMatch(ctx, 2); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("incomplete result: got err=%v want ErrInvalidInput", err)
	}
	if _, err := service.ScoreMatch(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero match id: got err=%v want ErrInvalidInput", err)
	}
}

func TestScoreMatchNoActiveSeasons(t *testing.T) {
	t.Parallel()

	m := match.Match{
		ID:         4,
		SeasonID:   7,
		HomeTeamID: int64Ptr(11),
		AwayTeamID: int64Ptr(12),
		HomeScore:  intPtr(0),
		AwayScore:  intPtr(0),
		Status:     match.StatusCompleted,
	}
	matchRepo := memory.NewMatchRepository([]match.Match{m}, []match.PlayerPerformance{
		{ID: 1, MatchID: 4, PlayerID: 10, TeamID: int64Ptr(11), MinutesPlayed: 90},
	})
	fantasyRepo := memory.NewFantasyRepository([]fantasy.Season{
		{ID: 100, SeasonID: 7, IsActive: false},
	}, nil, nil)
	scoringRepo := memory.NewScoringRepository()
	totals := NewTeamTotalService(fantasyRepo, scoringRepo)
	service := NewMatchScoringService(matchRepo, fantasyRepo, scoringRepo, totals, nil, scoring.DefaultRuleSet())

	result, err := service.ScoreMatch(context.Background(), 4)
	if err != nil {
		t.Fatalf("score match without active seasons: %v", err)
	}
	if result.FantasySeasonsTouched != 0 {
		t.Fatalf("fantasy seasons touched: got=%d want=%d", result.FantasySeasonsTouched, 0)
	}
	if result.PerformancesProcessed != 0 {
		t.Fatalf("performances processed: got=%d want=%d", result.PerformancesProcessed, 0)
	}
	if scoringRepo.RowCount() != 0 {
		t.Fatalf("row count: got=%d want=%d", scoringRepo.RowCount(), 0)
	}
}

type capturingPublisher struct {
	mu     sync.Mutex
	delay  time.Duration
	events []MatchScoredEvent
	err    error
}

func (p *capturingPublisher) PublishMatchScored(_ context.Context, event MatchScoredEvent) error {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *capturingPublisher) eventCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestScoreMatchPublishesEvent(t *testing.T) {
	t.Parallel()

	publisher := &capturingPublisher{}
	fx := newScoringFixture(publisher)

	if _, err := fx.service.ScoreMatch(context.Background(), 1); err != nil {
		t.Fatalf("score match: %v", err)
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.events) != 1 {
		t.Fatalf("published events: got=%d want=%d", len(publisher.events), 1)
	}
	event := publisher.events[0]
	if event.MatchID != 1 || event.SeasonID != 1 {
		t.Fatalf("event identifiers: got match=%d season=%d", event.MatchID, event.SeasonID)
	}
	if event.PerformancesProcessed != 2 {
		t.Fatalf("event performances processed: got=%d want=%d", event.PerformancesProcessed, 2)
	}
	if len(event.FantasySeasonIDs) != 1 || event.FantasySeasonIDs[0] != 100 {
		t.Fatalf("event fantasy season ids: got=%v want=[100]", event.FantasySeasonIDs)
	}
}

func TestScoreMatchIgnoresPublisherFailure(t *testing.T) {
	t.Parallel()

	publisher := &capturingPublisher{err: errors.New("webhook endpoint down")}
	fx := newScoringFixture(publisher)

	result, err := fx.service.ScoreMatch(context.Background(), 1)
	if err != nil {
		t.Fatalf("score match with failing publisher: %v", err)
	}
	if result.PerformancesProcessed != 2 {
		t.Fatalf("performances processed: got=%d want=%d", result.PerformancesProcessed, 2)
	}
}

func TestScoreMatchDeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	// The publisher runs inside the shared execution, so its delay keeps
	// the flight open long enough for every caller to join it.
	publisher := &capturingPublisher{delay: 20 * time.Millisecond}
	fx := newScoringFixture(publisher)

	const workers = 8
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			if _, err := fx.service.ScoreMatch(context.Background(), 1); err != nil {
				t.Errorf("concurrent score match: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := publisher.eventCount(); got != 1 {
		t.Fatalf("scoring executions: got=%d want=%d", got, 1)
	}
}

func TestListMatchPerformances(t *testing.T) {
	t.Parallel()

	fx := newScoringFixture(nil)
	ctx := context.Background()

	if _, err := fx.service.ScoreMatch(ctx, 1); err != nil {
		t.Fatalf("score match: %v", err)
	}

	rows, err := fx.service.ListMatchPerformances(ctx, 1)
	if err != nil {
		t.Fatalf("list match performances: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got=%d want=%d", len(rows), 2)
	}

	if _, err := fx.service.ListMatchPerformances(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing match: got err=%v want ErrNotFound", err)
	}
}

func TestRecomputeTeamTotalsConsistency(t *testing.T) {
	t.Parallel()

	seasons := []fantasy.Season{{ID: 100, SeasonID: 1, IsActive: true}}
	teams := []fantasy.Team{
		{ID: 200, FantasySeasonID: 100, UserID: "user-1"},
		{ID: 201, FantasySeasonID: 100, UserID: "user-2"},
	}
	selections := []fantasy.PlayerSelection{
		{ID: 300, FantasyTeamID: 200, PlayerID: 10},
		{ID: 301, FantasyTeamID: 200, PlayerID: 20},
		{ID: 302, FantasyTeamID: 201, PlayerID: 30},
	}
	fantasyRepo := memory.NewFantasyRepository(seasons, teams, selections)
	scoringRepo := memory.NewScoringRepository()

	records := []scoring.MatchPerformance{
		{SelectionID: 300, MatchID: 1, PlayerID: 10, Breakdown: scoring.PointBreakdown{TotalPoints: 5}},
		{SelectionID: 300, MatchID: 2, PlayerID: 10, Breakdown: scoring.PointBreakdown{TotalPoints: 7}},
		{SelectionID: 301, MatchID: 1, PlayerID: 20, Breakdown: scoring.PointBreakdown{TotalPoints: -2}},
		{SelectionID: 302, MatchID: 2, PlayerID: 30, Breakdown: scoring.PointBreakdown{TotalPoints: 9}},
	}
	if err := scoringRepo.UpsertMatchPerformances(context.Background(), records); err != nil {
		t.Fatalf("seed performance rows: %v", err)
	}

	totals := NewTeamTotalService(fantasyRepo, scoringRepo)
	if err := totals.RecomputeTeamTotals(context.Background(), []int64{100}); err != nil {
		t.Fatalf("recompute team totals: %v", err)
	}

	wantSelection := map[int64]int{300: 12, 301: -2, 302: 9}
	for selectionID, want := range wantSelection {
		selection, ok := fantasyRepo.Selection(selectionID)
		if !ok {
			t.Fatalf("missing selection %d", selectionID)
		}
		if selection.PointsEarned != want {
			t.Fatalf("selection %d points: got=%d want=%d", selectionID, selection.PointsEarned, want)
		}
	}

	teamOne, _ := fantasyRepo.Team(200)
	if teamOne.TotalPoints != 10 {
		t.Fatalf("team 200 total: got=%d want=%d", teamOne.TotalPoints, 10)
	}
	teamTwo, _ := fantasyRepo.Team(201)
	if teamTwo.TotalPoints != 9 {
		t.Fatalf("team 201 total: got=%d want=%d", teamTwo.TotalPoints, 9)
	}
}

func TestRecomputeTeamTotalsRejectsInvalidSeason(t *testing.T) {
	t.Parallel()

	totals := NewTeamTotalService(memory.NewFantasyRepository(nil, nil, nil), memory.NewScoringRepository())
	if err := totals.RecomputeTeamTotals(context.Background(), []int64{0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero fantasy season id: got err=%v want ErrInvalidInput", err)
	}
}
