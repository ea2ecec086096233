package analysis

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/pitchproc/pitchproc/internal/domain"
)

// VectorDim is the fixed possession-vector length: a 3x3 grid of zone
// visit counts, four shape features, and three outcome flags.
const VectorDim = 16

// Vectorize summarizes every possession case in the log as a
// fixed-length feature vector. Vectors are L2-normalized on the zone
// block so possessions of different lengths remain comparable.
func Vectorize(matchID uuid.UUID, events []domain.LogEvent) []domain.PossessionVector {
	byCase := make(map[string][]domain.LogEvent)
	for _, ev := range events {
		byCase[ev.CaseID] = append(byCase[ev.CaseID], ev)
	}

	caseIDs := make([]string, 0, len(byCase))
	for id := range byCase {
		caseIDs = append(caseIDs, id)
	}
	sort.Strings(caseIDs)

	out := make([]domain.PossessionVector, 0, len(caseIDs))
	for _, id := range caseIDs {
		evs := byCase[id]
		out = append(out, domain.PossessionVector{
			MatchID:  matchID,
			CaseID:   id,
			Team:     evs[0].Team,
			Features: features(evs),
		})
	}
	return out
}

func features(evs []domain.LogEvent) []float32 {
	v := make([]float32, VectorDim)

	// [0..8] zone occupancy over a 3x3 grid.
	for _, ev := range evs {
		col := gridIndex(ev.StartX, domain.PitchLength)
		row := gridIndex(ev.StartY, domain.PitchWidth)
		v[row*3+col]++
	}
	var norm float64
	for i := 0; i < 9; i++ {
		norm += float64(v[i]) * float64(v[i])
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := 0; i < 9; i++ {
			v[i] *= scale
		}
	}

	first, last := evs[0], evs[len(evs)-1]

	// [9..12] shape: length, net advance, width covered, mean xG added.
	v[9] = float32(len(evs)) / 50
	v[10] = float32(last.EndX-first.StartX) / domain.PitchLength
	v[11] = float32(math.Abs(last.EndY-first.StartY)) / domain.PitchWidth
	var xg float64
	for _, ev := range evs {
		xg += ev.XGAdded
	}
	v[12] = float32(xg / float64(len(evs)))

	// [13..15] outcome flags: ended in shot, ended in goal, lost ball.
	for _, ev := range evs {
		if ev.Activity == domain.ActionShoot {
			v[13] = 1
			if ev.Result == "goal" {
				v[14] = 1
			}
		}
	}
	if last.Result == "failure" {
		v[15] = 1
	}
	return v
}

func gridIndex(coord, extent float64) int {
	i := int(coord / (extent / 3))
	if i < 0 {
		i = 0
	}
	if i > 2 {
		i = 2
	}
	return i
}
