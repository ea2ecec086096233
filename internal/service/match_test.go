package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitchproc/pitchproc/internal/domain"
	"github.com/pitchproc/pitchproc/internal/policy"
	"github.com/pitchproc/pitchproc/internal/store"
)

type mockMatchStore struct {
	created []*domain.Match
	matches map[uuid.UUID]*domain.Match
	err     error
}

func newMockMatchStore() *mockMatchStore {
	return &mockMatchStore{matches: make(map[uuid.UUID]*domain.Match)}
}

func (m *mockMatchStore) Create(ctx context.Context, match *domain.Match) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, match)
	m.matches[match.ID] = match
	return nil
}

func (m *mockMatchStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	if m.err != nil {
		return nil, m.err
	}
	match, ok := m.matches[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return match, nil
}

func (m *mockMatchStore) List(ctx context.Context, limit int) ([]domain.Match, error) {
	out := make([]domain.Match, 0, len(m.created))
	for _, match := range m.created {
		out = append(out, *match)
	}
	return out, nil
}

type mockEventStore struct {
	inserted map[uuid.UUID][]domain.LogEvent
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{inserted: make(map[uuid.UUID][]domain.LogEvent)}
}

func (m *mockEventStore) InsertBatch(ctx context.Context, matchID uuid.UUID, events []domain.LogEvent) (int64, error) {
	m.inserted[matchID] = append(m.inserted[matchID], events...)
	return int64(len(events)), nil
}

func (m *mockEventStore) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.LogEvent, error) {
	return m.inserted[matchID], nil
}

func (m *mockEventStore) ListByCase(ctx context.Context, matchID uuid.UUID, caseID string) ([]domain.LogEvent, error) {
	var out []domain.LogEvent
	for _, ev := range m.inserted[matchID] {
		if ev.CaseID == caseID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type mockVerdictStore struct {
	inserted map[uuid.UUID][]domain.Violation
}

func newMockVerdictStore() *mockVerdictStore {
	return &mockVerdictStore{inserted: make(map[uuid.UUID][]domain.Violation)}
}

func (m *mockVerdictStore) InsertBatch(ctx context.Context, matchID uuid.UUID, violations []domain.Violation) (int64, error) {
	m.inserted[matchID] = append(m.inserted[matchID], violations...)
	return int64(len(violations)), nil
}

func (m *mockVerdictStore) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Violation, error) {
	return m.inserted[matchID], nil
}

type mockPossessionStore struct {
	upserted []domain.PossessionVector
	similar  []domain.SimilarPossession
	err      error
}

func (m *mockPossessionStore) Upsert(ctx context.Context, v *domain.PossessionVector) error {
	m.upserted = append(m.upserted, *v)
	return nil
}

func (m *mockPossessionStore) Similar(ctx context.Context, matchID uuid.UUID, caseID string, limit int) ([]domain.SimilarPossession, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.similar, nil
}

func newTestService() (*MatchService, *mockMatchStore, *mockEventStore, *mockVerdictStore, *mockPossessionStore) {
	matches := newMockMatchStore()
	events := newMockEventStore()
	verdicts := newMockVerdictStore()
	possessions := &mockPossessionStore{}
	svc := NewMatchService(matches, events, verdicts, possessions, policy.DefaultConfig(), zap.NewNop())
	return svc, matches, events, verdicts, possessions
}

func TestSimulateRejectsBadDuration(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	for _, minutes := range []int{0, -1, 121} {
		_, err := svc.Simulate(context.Background(), SimulateRequest{Minutes: minutes})
		if !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("minutes=%d: expected ErrInvalidDuration, got %v", minutes, err)
		}
	}
}

func TestSimulateWithoutPersist(t *testing.T) {
	svc, matches, events, _, _ := newTestService()

	result, err := svc.Simulate(context.Background(), SimulateRequest{Minutes: 1, Seed: 4})
	if err != nil {
		t.Fatalf("simulating: %v", err)
	}
	if len(result.Traces) != 22 {
		t.Fatalf("expected 22 traces, got %d", len(result.Traces))
	}
	if len(matches.created) != 0 {
		t.Fatal("match persisted without persist being requested")
	}
	if len(events.inserted) != 0 {
		t.Fatal("events persisted without persist being requested")
	}
}

func TestSimulatePersistsEverything(t *testing.T) {
	svc, matches, events, verdicts, possessions := newTestService()

	result, err := svc.Simulate(context.Background(), SimulateRequest{Minutes: 1, Seed: 4, Persist: true})
	if err != nil {
		t.Fatalf("simulating: %v", err)
	}
	if len(matches.created) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches.created))
	}
	if got := len(events.inserted[result.Match.ID]); got != len(result.Events) {
		t.Fatalf("expected %d events persisted, got %d", len(result.Events), got)
	}
	if got := len(verdicts.inserted[result.Match.ID]); got != len(result.Violations) {
		t.Fatalf("expected %d verdicts persisted, got %d", len(result.Violations), got)
	}
	if len(possessions.upserted) == 0 {
		t.Fatal("expected possession vectors to be persisted")
	}
	for _, v := range possessions.upserted {
		if v.MatchID != result.Match.ID {
			t.Fatal("vector stamped with the wrong match ID")
		}
	}
}

func TestGetMapsNotFound(t *testing.T) {
	svc, matches, _, _, _ := newTestService()

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}

	m := &domain.Match{ID: uuid.New()}
	matches.matches[m.ID] = m
	got, err := svc.Get(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("getting: %v", err)
	}
	if got.ID != m.ID {
		t.Fatal("wrong match returned")
	}
}

func TestEventsRequireAKnownMatch(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	if _, err := svc.Events(context.Background(), uuid.New()); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if _, err := svc.Verdicts(context.Background(), uuid.New()); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if _, err := svc.Summary(context.Background(), uuid.New()); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestSummaryAggregatesStoredEvents(t *testing.T) {
	svc, matches, events, _, _ := newTestService()

	m := &domain.Match{ID: uuid.New()}
	matches.matches[m.ID] = m
	events.inserted[m.ID] = []domain.LogEvent{
		{CaseID: "possession_001", Team: domain.TeamHome, Activity: domain.ActionSafePass, Result: "success", PlayerRole: domain.RoleMidfielder},
		{CaseID: "possession_001", Team: domain.TeamHome, Activity: domain.ActionShoot, Result: "goal", PlayerRole: domain.RoleStriker},
	}

	summary, err := svc.Summary(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}
	if summary.Events != 2 || summary.Cases != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Teams[domain.TeamHome].Goals != 1 {
		t.Fatal("expected one home goal")
	}
}

func TestSimilarPossessionsMapsNotFound(t *testing.T) {
	svc, _, _, _, possessions := newTestService()

	possessions.err = store.ErrNotFound
	_, err := svc.SimilarPossessions(context.Background(), uuid.New(), "possession_001", 5)
	if !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}

	possessions.err = nil
	possessions.similar = []domain.SimilarPossession{{
		PossessionVector: domain.PossessionVector{CaseID: "possession_002"},
		Distance:         0.1,
	}}
	got, err := svc.SimilarPossessions(context.Background(), uuid.New(), "possession_001", 5)
	if err != nil {
		t.Fatalf("querying: %v", err)
	}
	if len(got) != 1 || got[0].CaseID != "possession_002" {
		t.Fatalf("unexpected result %+v", got)
	}
}
