package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/repository"
)

func viewFixture() []models.Request {
	recent := fixedNow.Add(-2 * 24 * time.Hour)
	old := fixedNow.Add(-90 * 24 * time.Hour)
	return []models.Request{
		{ID: "1", ProjectName: "Website Redesign", RequestedBy: "Alice", Team: models.TeamDesign, Priority: models.PriorityHigh, Status: models.StatusNew, Deadline: "2025-05-20", TaggedUsers: []string{"u2"}},
		{ID: "2", ProjectName: "Analytics Dashboard", RequestedBy: "Bob", Team: models.TeamDesign, Priority: models.PriorityMedium, Status: models.StatusUnderReview, CreatedAt: &old},
		{ID: "3", ProjectName: "API Gateway", RequestedBy: "Carol", Team: models.TeamDev, Priority: models.PriorityLow, Status: models.StatusCompleted, Deadline: "2025-04-10", CreatedAt: &recent, TaggedUsers: []string{"u1", "ghost"}},
		{ID: "4", ProjectName: "Launch Campaign", RequestedBy: "Carol", Team: models.TeamMarketing, Priority: models.PriorityHigh, Status: models.StatusInProgress, CreatedAt: &recent},
	}
}

func ids(requests []models.Request) []string {
	out := make([]string, len(requests))
	for i, r := range requests {
		out[i] = r.ID
	}
	return out
}

func TestFilterRequests(t *testing.T) {
	requests := viewFixture()

	cases := []struct {
		name  string
		query RequestQuery
		want  []string
	}{
		{"no filter keeps order", RequestQuery{}, []string{"1", "2", "3", "4"}},
		{"search project name", RequestQuery{Search: "dash"}, []string{"2"}},
		{"search requester", RequestQuery{Search: "CAROL"}, []string{"3", "4"}},
		{"priority", RequestQuery{Priority: models.PriorityHigh}, []string{"1", "4"}},
		{"status", RequestQuery{Status: models.StatusCompleted}, []string{"3"}},
		{"team", RequestQuery{Team: models.TeamDesign}, []string{"1", "2"}},
		{"combined", RequestQuery{Team: models.TeamDesign, Priority: models.PriorityHigh}, []string{"1"}},
		{"sort by priority", RequestQuery{SortKey: SortByPriority}, []string{"1", "4", "3", "2"}},
		{"sort by status", RequestQuery{SortKey: SortByStatus}, []string{"3", "4", "1", "2"}},
		{"sort by deadline", RequestQuery{SortKey: SortByDeadline}, []string{"2", "4", "3", "1"}},
		{"unknown sort key", RequestQuery{SortKey: "name"}, []string{"1", "2", "3", "4"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterRequests(requests, tc.query)))
		})
	}

	// input is not reordered
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(requests))
}

func TestSummarize(t *testing.T) {
	users := []models.User{
		{ID: "u1", Name: "Carol", Password: "secret"},
		{ID: "u2", Name: "Alice"},
		{ID: "u3", Name: "Erin"},
	}

	summary := Summarize(viewFixture(), users, fixedNow)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.HighPriority)
	assert.Equal(t, []StatusCount{
		{Status: models.StatusNew, Count: 1},
		{Status: models.StatusUnderReview, Count: 1},
		{Status: models.StatusInProgress, Count: 1},
		{Status: models.StatusCompleted, Count: 1},
	}, summary.ByStatus)
	assert.Equal(t, map[models.Team]int{
		models.TeamDesign:    2,
		models.TeamDev:       1,
		models.TeamMarketing: 1,
	}, summary.ByTeam)
	assert.Equal(t, 2, summary.Recent)
	assert.Equal(t, 2, summary.Older)

	require.Len(t, summary.TopPerformers, 2)
	assert.Equal(t, "Carol", summary.TopPerformers[0].User.Name)
	assert.Equal(t, 2, summary.TopPerformers[0].Count)
	assert.Empty(t, summary.TopPerformers[0].User.Password)
	assert.Equal(t, "Alice", summary.TopPerformers[1].User.Name)
}

func TestTeamBreakdown(t *testing.T) {
	view := TeamBreakdown(viewFixture(), models.TeamDesign)

	assert.Equal(t, models.TeamDesign, view.Team)
	assert.Equal(t, []string{"1", "2"}, ids(view.Requests))
	assert.Equal(t, []StatusCount{
		{Status: models.StatusNew, Count: 1},
		{Status: models.StatusUnderReview, Count: 1},
	}, view.ByStatus)

	empty := TeamBreakdown(nil, models.TeamDev)
	assert.Empty(t, empty.Requests)
	assert.Empty(t, empty.ByStatus)
}

func TestTagReport(t *testing.T) {
	durable := repository.NewMemoryKVRepository()
	dir := NewUserDirectory(durable, repository.NewMemoryKVRepository(), discardLogger())
	_, err := dir.Register(models.User{ID: "u1", Name: "Carol", Email: "carol@example.com"})
	require.NoError(t, err)
	_, err = dir.Register(models.User{ID: "u2", Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	entries := TagReport(viewFixture(), dir)
	assert.Equal(t, []TagEntry{
		{Project: "Website Redesign", UserID: "u2", User: "Alice"},
		{Project: "API Gateway", UserID: "u1", User: "Carol"},
		{Project: "API Gateway", UserID: "ghost", User: "Unknown"},
	}, entries)
}
