package brackets

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dosada05/volleyball-league/models"
)

const (
	BucketPreliminary = "Preliminary"
	BucketOther       = "Other"
)

var playoffBucketNames = map[models.Stage]string{
	models.StageQuarter: "Quarterfinals",
	models.StageSemi:    "Semifinals",
	models.StageThird:   "Third place",
	models.StageFinal:   "Final",
}

// PlayoffBucketName returns the display name of a playoff stage.
func PlayoffBucketName(s models.Stage) string {
	return playoffBucketNames[s]
}

func RoundBucketName(k int) string {
	return fmt.Sprintf("Round %d", k)
}

type ScheduleBucket struct {
	Name    string         `json:"name"`
	Stage   models.Stage   `json:"stage,omitempty"`
	Round   *int           `json:"round,omitempty"`
	Matches []models.Match `json:"matches"`
}

// GroupSchedule partitions every match of the tournament into display
// buckets: Preliminary, Round 1..N, Quarterfinals, Semifinals, Third place,
// Final. Empty buckets are skipped. N is the highest REGULAR round number,
// or teams*number_of_rounds when no REGULAR match has one. REGULAR matches
// that fall outside 1..N end up in a trailing Other bucket.
func GroupSchedule(t models.Tournament, matches []models.Match) []ScheduleBucket {
	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !sameTime(a.DateTime, b.DateTime) {
			return timeLess(a.DateTime, b.DateTime)
		}
		return roundLess(a.RoundNumber, b.RoundNumber)
	})

	maxRound := 0
	for _, m := range ordered {
		if m.Stage == models.StageRegular && m.RoundNumber != nil && *m.RoundNumber > maxRound {
			maxRound = *m.RoundNumber
		}
	}
	if maxRound == 0 {
		maxRound = len(t.Teams) * t.NumberOfRounds
	}

	var (
		preliminary []models.Match
		other       []models.Match
		rounds      = make(map[int][]models.Match)
		playoff     = make(map[models.Stage][]models.Match)
	)
	for _, m := range ordered {
		switch {
		case m.Stage == models.StagePreliminary:
			preliminary = append(preliminary, m)
		case m.Stage == models.StageRegular:
			if m.RoundNumber == nil || *m.RoundNumber < 1 || *m.RoundNumber > maxRound {
				other = append(other, m)
				continue
			}
			rounds[*m.RoundNumber] = append(rounds[*m.RoundNumber], m)
		case m.Stage.IsPlayoff():
			playoff[m.Stage] = append(playoff[m.Stage], m)
		default:
			other = append(other, m)
		}
	}

	buckets := make([]ScheduleBucket, 0)
	if len(preliminary) > 0 {
		buckets = append(buckets, ScheduleBucket{Name: BucketPreliminary, Stage: models.StagePreliminary, Matches: preliminary})
	}
	for k := 1; k <= maxRound; k++ {
		if ms, ok := rounds[k]; ok {
			round := k
			buckets = append(buckets, ScheduleBucket{Name: RoundBucketName(k), Stage: models.StageRegular, Round: &round, Matches: ms})
		}
	}
	for _, stage := range models.PlayoffStages {
		if ms, ok := playoff[stage]; ok {
			buckets = append(buckets, ScheduleBucket{Name: PlayoffBucketName(stage), Stage: stage, Matches: ms})
		}
	}
	if len(other) > 0 {
		buckets = append(buckets, ScheduleBucket{Name: BucketOther, Matches: other})
	}
	return buckets
}

// PlayoffBuckets returns only the playoff part of the schedule.
func PlayoffBuckets(t models.Tournament, matches []models.Match) []ScheduleBucket {
	out := make([]ScheduleBucket, 0)
	for _, b := range GroupSchedule(t, matches) {
		if b.Stage.IsPlayoff() {
			out = append(out, b)
		}
	}
	return out
}

// timeLess orders dates ascending, undated matches last.
func timeLess(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
