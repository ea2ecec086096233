package analysis

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/pitchproc/pitchproc/internal/domain"
)

func TestVectorizeShape(t *testing.T) {
	matchID := uuid.New()
	events := []domain.LogEvent{
		{CaseID: "possession_002", Team: domain.TeamAway, StartX: 50, StartY: 40, EndX: 30, EndY: 40, Activity: domain.ActionSafePass, Result: "failure"},
		{CaseID: "possession_001", Team: domain.TeamHome, StartX: 20, StartY: 40, EndX: 50, EndY: 40, Activity: domain.ActionForwardPass, Result: "success"},
		{CaseID: "possession_001", Team: domain.TeamHome, StartX: 50, StartY: 40, EndX: 95, EndY: 40, Activity: domain.ActionShoot, Result: "goal", XGAdded: 1.0},
	}

	vectors := Vectorize(matchID, events)
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	// Cases come back in sorted order regardless of input order.
	if vectors[0].CaseID != "possession_001" || vectors[1].CaseID != "possession_002" {
		t.Fatalf("unexpected case order %s, %s", vectors[0].CaseID, vectors[1].CaseID)
	}
	for _, v := range vectors {
		if v.MatchID != matchID {
			t.Fatal("vector not stamped with the match ID")
		}
		if len(v.Features) != VectorDim {
			t.Fatalf("expected %d features, got %d", VectorDim, len(v.Features))
		}
	}
	if vectors[0].Team != domain.TeamHome || vectors[1].Team != domain.TeamAway {
		t.Fatal("vectors carry the wrong teams")
	}

	attack := vectors[0].Features
	// Zone block is L2-normalized.
	var norm float64
	for i := 0; i < 9; i++ {
		norm += float64(attack[i]) * float64(attack[i])
	}
	if math.Abs(norm-1) > 1e-5 {
		t.Fatalf("expected a unit zone block, got norm %f", norm)
	}

	if attack[9] != float32(2)/50 {
		t.Fatalf("unexpected length feature %f", attack[9])
	}
	// Net advance runs from the first start to the last end.
	if got, want := attack[10], float32(95-20)/domain.PitchLength; got != want {
		t.Fatalf("expected advance %f, got %f", want, got)
	}
	if attack[13] != 1 || attack[14] != 1 {
		t.Fatal("expected shot and goal flags set")
	}
	if attack[15] != 0 {
		t.Fatal("a scoring possession is not a lost one")
	}

	turnover := vectors[1].Features
	if turnover[13] != 0 || turnover[14] != 0 {
		t.Fatal("expected no shot flags on the turnover case")
	}
	if turnover[15] != 1 {
		t.Fatal("expected the lost-ball flag on a failed final action")
	}
}

func TestVectorizeEmptyLog(t *testing.T) {
	if got := Vectorize(uuid.New(), nil); len(got) != 0 {
		t.Fatalf("expected no vectors, got %d", len(got))
	}
}

func TestGridIndexClamps(t *testing.T) {
	if gridIndex(-5, domain.PitchLength) != 0 {
		t.Fatal("expected clamp to the first cell")
	}
	if gridIndex(domain.PitchLength, domain.PitchLength) != 2 {
		t.Fatal("expected clamp to the last cell")
	}
	if gridIndex(50, domain.PitchLength) != 1 {
		t.Fatal("expected the middle cell")
	}
}
