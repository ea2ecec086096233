package domain

// Role is the closed set of player roles.
type Role string

const (
	RoleGoalkeeper Role = "goalkeeper"
	RoleCentreBack Role = "centre_back"
	RoleMidfielder Role = "midfielder"
	RoleStriker    Role = "striker"
)

// Roles lists all roles in a stable order.
func Roles() []Role {
	return []Role{RoleGoalkeeper, RoleCentreBack, RoleMidfielder, RoleStriker}
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleGoalkeeper, RoleCentreBack, RoleMidfielder, RoleStriker:
		return true
	}
	return false
}

// Team identifies a side.
type Team string

const (
	TeamHome Team = "home"
	TeamAway Team = "away"
)

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamHome {
		return TeamAway
	}
	return TeamHome
}

// Snapshot is the read-only view of another agent exposed to a decision
// call. Cross-agent coordination happens only through these fields;
// beliefs are never visible across agents.
type Snapshot struct {
	ID       string   `json:"id"`
	Team     Team     `json:"team"`
	Role     Role     `json:"role"`
	Position Position `json:"position"`
	HasBall  bool     `json:"has_ball"`
}

// AgentState is the per-agent mutable record, owned exclusively by its
// agent. It is created once at match setup and mutated in place for the
// whole match. Role-specific beliefs live on the role's policy as typed
// records rather than in a generic map.
type AgentState struct {
	ID           string             `json:"id"`
	Team         Team               `json:"team"`
	Role         Role               `json:"role"`
	Position     Position           `json:"position"`
	HomePosition Position           `json:"home_position"`
	HasBall      bool               `json:"has_ball"`
	Goals        []string           `json:"goals"`
	Plans        map[string][]Action `json:"plans"`
}

// Snapshot returns the externally visible view of the agent.
func (a *AgentState) Snapshot() Snapshot {
	return Snapshot{
		ID:       a.ID,
		Team:     a.Team,
		Role:     a.Role,
		Position: a.Position,
		HasBall:  a.HasBall,
	}
}
