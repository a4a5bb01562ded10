package services

import (
	"sort"
	"strings"
	"time"

	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/models"
)

// Sort keys accepted by FilterRequests.
const (
	SortByPriority = "priority"
	SortByStatus   = "status"
	SortByDeadline = "deadline"
)

// RequestQuery holds the board filter bar state. Empty fields match everything.
type RequestQuery struct {
	Search   string
	Priority models.Priority
	Status   models.RequestStatus
	Team     models.Team
	SortKey  string
}

// FilterRequests applies the query and returns a new slice. Sorting compares
// the raw strings and is stable, so an empty or unknown key keeps insertion
// order.
func FilterRequests(requests []models.Request, q RequestQuery) []models.Request {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Request, 0, len(requests))
	for _, r := range requests {
		if search != "" &&
			!strings.Contains(strings.ToLower(r.ProjectName), search) &&
			!strings.Contains(strings.ToLower(r.RequestedBy), search) {
			continue
		}
		if q.Priority != "" && r.Priority != q.Priority {
			continue
		}
		if q.Status != "" && r.Status != q.Status {
			continue
		}
		if q.Team != "" && r.Team != q.Team {
			continue
		}
		out = append(out, r)
	}

	var key func(models.Request) string
	switch q.SortKey {
	case SortByPriority:
		key = func(r models.Request) string { return string(r.Priority) }
	case SortByStatus:
		key = func(r models.Request) string { return string(r.Status) }
	case SortByDeadline:
		key = func(r models.Request) string { return r.Deadline }
	}
	if key != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return key(out[i]) < key(out[j])
		})
	}
	return out
}

// StatusCount is one bar of a status chart.
type StatusCount struct {
	Status models.RequestStatus `json:"status"`
	Count  int                  `json:"count"`
}

// Performer is a registered user ranked by submitted requests.
type Performer struct {
	User  models.User `json:"user"`
	Count int         `json:"count"`
}

// Summary is the admin analytics panel.
type Summary struct {
	Total         int                 `json:"total"`
	ByStatus      []StatusCount       `json:"by_status"`
	HighPriority  int                 `json:"high_priority"`
	ByTeam        map[models.Team]int `json:"by_team"`
	TopPerformers []Performer         `json:"top_performers"`
	Recent        int                 `json:"recent"`
	Older         int                 `json:"older"`
}

// Summarize computes the admin analytics. Attribution is by display name, so
// renamed users lose their history. Requests without a creation time count as
// older.
func Summarize(requests []models.Request, users []models.User, now time.Time) Summary {
	summary := Summary{
		Total:  len(requests),
		ByTeam: make(map[models.Team]int, len(models.Teams)),
	}
	for _, team := range models.Teams {
		summary.ByTeam[team] = 0
	}

	statusCounts := make(map[models.RequestStatus]int, len(models.StatusFlow))
	cutoff := now.Add(-constants.RecentActivityDays * 24 * time.Hour)
	for _, r := range requests {
		statusCounts[r.Status]++
		if r.Priority == models.PriorityHigh {
			summary.HighPriority++
		}
		if r.Team != "" {
			summary.ByTeam[r.Team]++
		}
		if r.CreatedAt != nil && r.CreatedAt.After(cutoff) {
			summary.Recent++
		}
	}
	summary.Older = summary.Total - summary.Recent

	for _, status := range models.StatusFlow {
		summary.ByStatus = append(summary.ByStatus, StatusCount{Status: status, Count: statusCounts[status]})
	}

	summary.TopPerformers = topPerformers(requests, users)
	return summary
}

func topPerformers(requests []models.Request, users []models.User) []Performer {
	performers := []Performer{}
	for _, u := range users {
		count := 0
		for _, r := range requests {
			if r.RequestedBy == u.Name {
				count++
			}
		}
		if count > 0 {
			u.Password = ""
			performers = append(performers, Performer{User: u, Count: count})
		}
	}
	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].Count > performers[j].Count
	})
	if len(performers) > constants.TopPerformersLimit {
		performers = performers[:constants.TopPerformersLimit]
	}
	return performers
}

// TeamView lists one team's requests with its non-empty status buckets.
type TeamView struct {
	Team     models.Team      `json:"team"`
	Requests []models.Request `json:"requests"`
	ByStatus []StatusCount    `json:"by_status"`
}

func TeamBreakdown(requests []models.Request, team models.Team) TeamView {
	view := TeamView{
		Team:     team,
		Requests: FilterRequests(requests, RequestQuery{Team: team}),
		ByStatus: []StatusCount{},
	}
	for _, status := range models.StatusFlow {
		count := 0
		for _, r := range view.Requests {
			if r.Status == status {
				count++
			}
		}
		if count > 0 {
			view.ByStatus = append(view.ByStatus, StatusCount{Status: status, Count: count})
		}
	}
	return view
}

// TagEntry is one "user tagged in project" row.
type TagEntry struct {
	Project string `json:"project"`
	UserID  string `json:"user_id"`
	User    string `json:"user"`
}

// TagReport flattens tagged users across requests. Unresolved ids are kept
// and shown as Unknown.
func TagReport(requests []models.Request, users *UserDirectory) []TagEntry {
	entries := []TagEntry{}
	for _, r := range requests {
		for _, id := range r.TaggedUsers {
			entries = append(entries, TagEntry{
				Project: r.ProjectName,
				UserID:  id,
				User:    users.ResolveName(id),
			})
		}
	}
	return entries
}
