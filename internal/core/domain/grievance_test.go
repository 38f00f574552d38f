package domain

import "testing"

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusSubmitted, StatusAssigned, true},
		{StatusSubmitted, StatusInProgress, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusSubmitted, StatusResolved, false},
		{StatusSubmitted, StatusClosed, false},

		{StatusAssigned, StatusInProgress, true},
		{StatusAssigned, StatusResolved, true},
		{StatusAssigned, StatusRejected, true},
		{StatusAssigned, StatusSubmitted, false},

		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusRejected, true},
		{StatusInProgress, StatusAssigned, false},

		// Resolved can be reopened or closed for good.
		{StatusResolved, StatusClosed, true},
		{StatusResolved, StatusInProgress, true},
		{StatusResolved, StatusRejected, false},

		// Terminal states accept nothing.
		{StatusClosed, StatusInProgress, false},
		{StatusClosed, StatusResolved, false},
		{StatusRejected, StatusSubmitted, false},
		{StatusRejected, StatusInProgress, false},

		// Self-loops are not transitions.
		{StatusInProgress, StatusInProgress, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s → %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusClosed, StatusRejected} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusSubmitted, StatusAssigned, StatusInProgress, StatusResolved} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	if Status("escalated").Valid() {
		t.Errorf("unknown status accepted")
	}
	if !StatusInProgress.Valid() {
		t.Errorf("in_progress rejected")
	}
}

func TestPriority_Valid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if !p.Valid() {
			t.Errorf("%s rejected", p)
		}
	}
	if Priority("catastrophic").Valid() {
		t.Errorf("unknown priority accepted")
	}
}

func TestKnownDepartment(t *testing.T) {
	if !KnownDepartment("Water Department") {
		t.Errorf("configured department rejected")
	}
	if KnownDepartment("water department") {
		t.Errorf("department match must be exact")
	}
}
