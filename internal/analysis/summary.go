// Package analysis computes post-match aggregates from the event log:
// activity frequencies, per-role action distributions, and fixed-length
// possession feature vectors for similarity search.
package analysis

import (
	"sort"

	"github.com/pitchproc/pitchproc/internal/domain"
)

// TeamTotals aggregates one team's counting stats.
type TeamTotals struct {
	Events      int `json:"events"`
	Passes      int `json:"passes"`
	Shots       int `json:"shots"`
	Goals       int `json:"goals"`
	Possessions int `json:"possessions"`
}

// ActivityCount is one row of an activity frequency table.
type ActivityCount struct {
	Activity domain.Action `json:"activity"`
	Count    int           `json:"count"`
}

// Summary is the aggregate view of one match's event log.
type Summary struct {
	Events       int                             `json:"events"`
	Cases        int                             `json:"cases"`
	Activities   []ActivityCount                 `json:"activities"`
	ByRole       map[domain.Role][]ActivityCount `json:"by_role"`
	Teams        map[domain.Team]TeamTotals      `json:"teams"`
	ZoneActivity map[string]int                  `json:"zone_activity"`
}

// Summarize folds an event log into a Summary. Activity tables are
// sorted by descending count, ties broken by activity name, so output
// is deterministic for a given log.
func Summarize(events []domain.LogEvent) Summary {
	s := Summary{
		ByRole:       make(map[domain.Role][]ActivityCount),
		Teams:        make(map[domain.Team]TeamTotals),
		ZoneActivity: make(map[string]int),
	}

	activity := make(map[domain.Action]int)
	roleActivity := make(map[domain.Role]map[domain.Action]int)
	cases := make(map[string]domain.Team)

	for _, ev := range events {
		s.Events++
		activity[ev.Activity]++
		if roleActivity[ev.PlayerRole] == nil {
			roleActivity[ev.PlayerRole] = make(map[domain.Action]int)
		}
		roleActivity[ev.PlayerRole][ev.Activity]++
		cases[ev.CaseID] = ev.Team
		s.ZoneActivity[ev.PitchZone]++

		t := s.Teams[ev.Team]
		t.Events++
		if ev.Activity.IsDistribution() && ev.Result == "success" {
			t.Passes++
		}
		if ev.Activity == domain.ActionShoot {
			t.Shots++
			if ev.Result == "goal" {
				t.Goals++
			}
		}
		s.Teams[ev.Team] = t
	}

	s.Cases = len(cases)
	for _, team := range cases {
		t := s.Teams[team]
		t.Possessions++
		s.Teams[team] = t
	}

	s.Activities = sortedCounts(activity)
	for role, counts := range roleActivity {
		s.ByRole[role] = sortedCounts(counts)
	}
	return s
}

func sortedCounts(m map[domain.Action]int) []ActivityCount {
	out := make([]ActivityCount, 0, len(m))
	for a, n := range m {
		out = append(out, ActivityCount{Activity: a, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Activity < out[j].Activity
	})
	return out
}
