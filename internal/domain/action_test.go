package domain

import "testing"

func TestRoleVocabularies(t *testing.T) {
	cases := []struct {
		role   Role
		in     Action
		out    Action
	}{
		{RoleGoalkeeper, ActionSaveAttempt, ActionShoot},
		{RoleCentreBack, ActionClearBall, ActionSaveAttempt},
		{RoleMidfielder, ActionThroughPass, ActionClearBall},
		{RoleStriker, ActionShoot, ActionThroughPass},
	}
	for _, tc := range cases {
		if !tc.role.InVocabulary(tc.in) {
			t.Errorf("%s should include %s", tc.role, tc.in)
		}
		if tc.role.InVocabulary(tc.out) {
			t.Errorf("%s should not include %s", tc.role, tc.out)
		}
	}
}

func TestVocabulariesAreDisjointWhereExpected(t *testing.T) {
	// shared actions exist (safe_pass, support_run, find_space), but
	// the signature action of each role must stay exclusive to it
	exclusive := map[Role]Action{
		RoleGoalkeeper: ActionSaveAttempt,
		RoleCentreBack: ActionClearBall,
		RoleMidfielder: ActionThroughPass,
		RoleStriker:    ActionShoot,
	}
	for owner, action := range exclusive {
		for _, other := range Roles() {
			if other == owner {
				continue
			}
			if other.InVocabulary(action) {
				t.Errorf("%s leaked into %s vocabulary", action, other)
			}
		}
	}
}

func TestIsDistribution(t *testing.T) {
	for _, a := range []Action{ActionShortPass, ActionLongKick, ActionClearBall, ActionThroughPass, ActionLayOff} {
		if !a.IsDistribution() {
			t.Errorf("%s should be a distribution action", a)
		}
	}
	for _, a := range []Action{ActionShoot, ActionDribbleForward, ActionPress, ActionSaveAttempt} {
		if a.IsDistribution() {
			t.Errorf("%s should not be a distribution action", a)
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(string(RoleStriker)) {
		t.Fatal("striker should be valid")
	}
	if ValidRole("winger") {
		t.Fatal("winger should not be valid")
	}
}
