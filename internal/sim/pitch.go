package sim

import "github.com/pitchproc/pitchproc/internal/domain"

// Pitch zone labels used in exported event logs.
const (
	ZoneDefensiveThird = "defensive_third"
	ZoneMiddleThird    = "middle_third"
	ZoneAttackingThird = "attacking_third"

	SubZoneLeftFlank  = "left_flank"
	SubZoneCentral    = "central"
	SubZoneRightFlank = "right_flank"
)

const (
	thirdBoundary = domain.PitchLength / 3
	flankBoundary = domain.PitchWidth / 3
)

// Pitch holds the static geometry of the playing field: thirds, flanks,
// penalty areas and goal mouths. Coordinates follow the 100x80
// convention with the home goal at x=0.
type Pitch struct {
	HomePenaltyArea domain.Bounds
	AwayPenaltyArea domain.Bounds
	goalYMin        float64
	goalYMax        float64
}

// NewPitch returns the standard pitch geometry.
func NewPitch() *Pitch {
	return &Pitch{
		HomePenaltyArea: domain.Bounds{XMin: 0, XMax: 16, YMin: 29.6, YMax: 50.4},
		AwayPenaltyArea: domain.Bounds{XMin: domain.PitchLength - 16, XMax: domain.PitchLength, YMin: 29.6, YMax: 50.4},
		goalYMin:        36,
		goalYMax:        44,
	}
}

// Zone returns the third of the pitch containing p, in absolute
// (home-at-zero) terms.
func (*Pitch) Zone(p domain.Position) string {
	switch {
	case p.X <= thirdBoundary:
		return ZoneDefensiveThird
	case p.X <= 2*thirdBoundary:
		return ZoneMiddleThird
	default:
		return ZoneAttackingThird
	}
}

// SubZone returns the lateral channel containing p.
func (*Pitch) SubZone(p domain.Position) string {
	switch {
	case p.Y <= flankBoundary:
		return SubZoneLeftFlank
	case p.Y <= 2*flankBoundary:
		return SubZoneCentral
	default:
		return SubZoneRightFlank
	}
}

// PenaltyArea returns the penalty area defended by team.
func (pt *Pitch) PenaltyArea(team domain.Team) domain.Bounds {
	if team == domain.TeamHome {
		return pt.HomePenaltyArea
	}
	return pt.AwayPenaltyArea
}

// InPenaltyArea reports whether p is inside the area defended by team.
func (pt *Pitch) InPenaltyArea(p domain.Position, team domain.Team) bool {
	return pt.PenaltyArea(team).Contains(p)
}

// GoalScored reports which team scored if the ball position has crossed
// a goal mouth, or false.
func (pt *Pitch) GoalScored(ball domain.Position) (domain.Team, bool) {
	if ball.Y < pt.goalYMin || ball.Y > pt.goalYMax {
		return "", false
	}
	if ball.X <= 0 {
		return domain.TeamAway, true
	}
	if ball.X >= domain.PitchLength {
		return domain.TeamHome, true
	}
	return "", false
}

// clampToPitch keeps a position on the field of play.
func clampToPitch(p domain.Position) domain.Position {
	full := domain.Bounds{XMin: 0, XMax: domain.PitchLength, YMin: 0, YMax: domain.PitchWidth}
	return full.Clamp(p)
}
