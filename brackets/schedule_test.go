package brackets

import (
	"testing"

	"github.com/Dosada05/volleyball-league/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketNames(buckets []ScheduleBucket) []string {
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	return names
}

func matchIDs(ms []models.Match) []int {
	ids := make([]int, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID)
	}
	return ids
}

func withID(m models.Match, id int) models.Match {
	m.ID = id
	return m
}

func TestGroupSchedule_BucketOrder(t *testing.T) {
	tournament := models.Tournament{Teams: teamsOf("A", "B", "C", "D"), NumberOfRounds: 1}
	matches := []models.Match{
		withID(withStage(pending(1, 4), models.StageFinal), 1),
		withID(inRound(pending(1, 2), 3), 2),
		withID(withStage(pending(1, 2), models.StagePreliminary), 3),
		withID(inRound(pending(3, 4), 1), 4),
		withID(withStage(pending(2, 3), models.StageSemi), 5),
		withID(withStage(pending(2, 4), models.StageThird), 6),
		withID(withStage(pending(1, 3), models.StageSemi), 7),
	}

	buckets := GroupSchedule(tournament, matches)

	want := []string{BucketPreliminary, "Round 1", "Round 3", "Semifinals", "Third place", "Final"}
	if diff := cmp.Diff(want, bucketNames(buckets)); diff != "" {
		t.Errorf("bucket names mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{5, 7}, matchIDs(buckets[3].Matches))
	require.NotNil(t, buckets[1].Round)
	assert.Equal(t, 1, *buckets[1].Round)
}

func TestGroupSchedule_EveryMatchOnce(t *testing.T) {
	tournament := models.Tournament{Teams: teamsOf("A", "B", "C"), NumberOfRounds: 2}
	matches := []models.Match{
		withID(inRound(pending(1, 2), 1), 1),
		withID(inRound(finished(2, 3, 3, 0), 2), 2),
		withID(pending(1, 3), 3),
		withID(withStage(pending(1, 2), models.StageQuarter), 4),
		withID(withStage(pending(2, 3), models.StagePreliminary), 5),
		withID(inRound(pending(3, 1), 2), 6),
		withID(withStage(pending(1, 2), models.Stage("FRIENDLY")), 7),
	}

	buckets := GroupSchedule(tournament, matches)

	seen := make(map[int]int)
	for _, b := range buckets {
		assert.NotEmpty(t, b.Matches, "bucket %s", b.Name)
		for _, m := range b.Matches {
			seen[m.ID]++
		}
	}
	for _, m := range matches {
		assert.Equal(t, 1, seen[m.ID], "match %d", m.ID)
	}
	assert.Equal(t, []string{BucketPreliminary, "Round 1", "Round 2", "Quarterfinals", BucketOther}, bucketNames(buckets))
}

func TestGroupSchedule_FallbackRoundCeiling(t *testing.T) {
	// No REGULAR match carries a round number: N = teams * number_of_rounds.
	tournament := models.Tournament{Teams: teamsOf("A", "B"), NumberOfRounds: 2}
	matches := []models.Match{withID(pending(1, 2), 1)}

	buckets := GroupSchedule(tournament, matches)

	require.Len(t, buckets, 1)
	assert.Equal(t, BucketOther, buckets[0].Name)

	assert.Empty(t, GroupSchedule(tournament, nil))
}

func TestGroupSchedule_OrderWithinBucket(t *testing.T) {
	tournament := models.Tournament{Teams: teamsOf("A", "B", "C", "D"), NumberOfRounds: 1}
	matches := []models.Match{
		withID(withStage(pending(1, 2), models.StagePreliminary), 1),
		withID(at(withStage(pending(3, 4), models.StagePreliminary), "2025-03-02T18:00:00Z"), 2),
		withID(at(withStage(pending(1, 3), models.StagePreliminary), "2025-03-01T18:00:00Z"), 3),
		withID(at(inRound(withStage(pending(2, 4), models.StagePreliminary), 2), "2025-03-01T18:00:00Z"), 4),
		withID(at(inRound(withStage(pending(2, 3), models.StagePreliminary), 1), "2025-03-01T18:00:00Z"), 5),
		withID(withStage(pending(1, 4), models.StagePreliminary), 6),
	}

	buckets := GroupSchedule(tournament, matches)

	require.Len(t, buckets, 1)
	// same date: round number ascending, nil round last; undated matches keep input order at the end
	assert.Equal(t, []int{5, 4, 3, 2, 1, 6}, matchIDs(buckets[0].Matches))
}

func TestPlayoffBuckets(t *testing.T) {
	tournament := models.Tournament{Teams: teamsOf("A", "B", "C", "D"), NumberOfRounds: 1}
	matches := []models.Match{
		withID(inRound(pending(1, 2), 1), 1),
		withID(withStage(pending(1, 4), models.StageSemi), 2),
		withID(withStage(pending(1, 2), models.StageFinal), 3),
	}

	buckets := PlayoffBuckets(tournament, matches)

	assert.Equal(t, []string{"Semifinals", "Final"}, bucketNames(buckets))
}
