package domain

// Action is an opaque label from a small closed vocabulary, partitioned
// by role. Actions are pure output: applying their physical effects is
// the simulation engine's job.
type Action string

const (
	// Goalkeeper
	ActionSaveAttempt      Action = "save_attempt"
	ActionShortPass        Action = "short_pass"
	ActionLongKick         Action = "long_kick"
	ActionMoveToPosition   Action = "move_to_position"
	ActionMaintainPosition Action = "maintain_position"

	// Centre-back
	ActionClearBall   Action = "clear_ball"
	ActionLongPass    Action = "long_pass"
	ActionForwardPass Action = "forward_pass"
	ActionSafePass    Action = "safe_pass"
	ActionIntercept   Action = "intercept"
	ActionTrackRunner Action = "track_runner"

	// Midfielder
	ActionThroughPass      Action = "through_pass"
	ActionSupportRun       Action = "support_run"
	ActionSwitchPlay       Action = "switch_play"
	ActionRetainPossession Action = "retain_possession"
	ActionPress            Action = "press"
	ActionTrackBack        Action = "track_back"
	ActionFindSpace        Action = "find_space"

	// Striker
	ActionShoot          Action = "shoot"
	ActionDribbleForward Action = "dribble_forward"
	ActionLayOff         Action = "lay_off"
	ActionHoldUp         Action = "hold_up"
	ActionRunBehind      Action = "run_behind"
	ActionPressDefender  Action = "press_defender"

	// Engine-emitted
	ActionKickoff Action = "kickoff"
)

var roleVocabularies = map[Role][]Action{
	RoleGoalkeeper: {
		ActionSaveAttempt, ActionShortPass, ActionLongKick,
		ActionMoveToPosition, ActionMaintainPosition,
	},
	RoleCentreBack: {
		ActionClearBall, ActionLongPass, ActionForwardPass, ActionSafePass,
		ActionIntercept, ActionSupportRun, ActionTrackRunner,
	},
	RoleMidfielder: {
		ActionThroughPass, ActionSupportRun, ActionSwitchPlay,
		ActionRetainPossession, ActionSafePass, ActionPress, ActionTrackBack,
		ActionFindSpace,
	},
	RoleStriker: {
		ActionShoot, ActionDribbleForward, ActionLayOff, ActionHoldUp,
		ActionRunBehind, ActionFindSpace, ActionPressDefender,
	},
}

// Vocabulary returns the closed action vocabulary for a role.
func (r Role) Vocabulary() []Action {
	vocab := roleVocabularies[r]
	out := make([]Action, len(vocab))
	copy(out, vocab)
	return out
}

// InVocabulary reports whether a belongs to role r's vocabulary.
func (r Role) InVocabulary(a Action) bool {
	for _, v := range roleVocabularies[r] {
		if v == a {
			return true
		}
	}
	return false
}

// IsDistribution reports whether a releases the ball to a teammate or
// upfield. Used by safety predicates and the possession-change rule.
func (a Action) IsDistribution() bool {
	switch a {
	case ActionShortPass, ActionLongKick, ActionClearBall, ActionLongPass,
		ActionForwardPass, ActionSafePass, ActionThroughPass, ActionSwitchPlay,
		ActionLayOff:
		return true
	}
	return false
}
