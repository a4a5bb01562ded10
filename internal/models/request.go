package models

import (
	"encoding/json"
	"strings"
	"time"
)

type RequestStatus string

const (
	StatusNew         RequestStatus = "New"
	StatusUnderReview RequestStatus = "Under Review"
	StatusInProgress  RequestStatus = "In Progress"
	StatusCompleted   RequestStatus = "Completed"
)

// StatusFlow is the fixed advance order. Completed wraps back to New.
var StatusFlow = []RequestStatus{StatusNew, StatusUnderReview, StatusInProgress, StatusCompleted}

var statusProgress = map[RequestStatus]int{
	StatusNew:         0,
	StatusUnderReview: 25,
	StatusInProgress:  60,
	StatusCompleted:   100,
}

// Progress returns the completion percentage for the status. Unknown statuses
// report 0.
func (s RequestStatus) Progress() int {
	return statusProgress[s]
}

// Next returns the status that follows s in StatusFlow. A status outside the
// flow advances to New.
func (s RequestStatus) Next() RequestStatus {
	index := -1
	for i, status := range StatusFlow {
		if status == s {
			index = i
			break
		}
	}
	return StatusFlow[(index+1)%len(StatusFlow)]
}

func (s RequestStatus) Valid() bool {
	_, ok := statusProgress[s]
	return ok
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Team string

const (
	TeamDesign    Team = "Design Team"
	TeamDev       Team = "Dev Team"
	TeamMarketing Team = "Marketing Team"
)

var Teams = []Team{TeamDesign, TeamDev, TeamMarketing}

func (t Team) Valid() bool {
	for _, team := range Teams {
		if team == t {
			return true
		}
	}
	return false
}

// TeamFromSlug maps short path names ("dev", "design-team", ...) to a Team.
func TeamFromSlug(slug string) (Team, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = strings.TrimSuffix(strings.TrimSuffix(slug, "-team"), " team")
	for _, team := range Teams {
		name := strings.ToLower(strings.TrimSuffix(string(team), " Team"))
		if name == slug {
			return team, true
		}
	}
	return "", false
}

// Assignee is the display record attached to seeded requests.
type Assignee struct {
	Name string `json:"name"`
	Team Team   `json:"team"`
}

// Request is one submitted project ask. Progress is derived from Status and is
// never stored on the struct.
type Request struct {
	ID          string        `json:"id"`
	ProjectName string        `json:"projectName"`
	Description string        `json:"description"`
	RequestedBy string        `json:"requestedBy"`
	Team        Team          `json:"team"`
	Priority    Priority      `json:"priority"`
	Status      RequestStatus `json:"status"`
	Deadline    string        `json:"deadline,omitempty"`
	FileName    string        `json:"fileName,omitempty"`
	TaggedUsers []string      `json:"taggedUsers,omitempty"`
	AssignedTo  *Assignee     `json:"assignedTo,omitempty"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`

	// Document is a transient handle to an attached file. It is not
	// serialized and does not survive a reload.
	Document string `json:"-"`
}

func (r Request) Progress() int {
	return r.Status.Progress()
}

type requestAlias Request

// MarshalJSON adds the derived progress to the stored shape.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		requestAlias
		Progress int `json:"progress"`
	}{
		requestAlias: requestAlias(r),
		Progress:     r.Progress(),
	})
}

// UnmarshalJSON ignores any stored progress; it is recomputed from status.
func (r *Request) UnmarshalJSON(data []byte) error {
	var alias requestAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*r = Request(alias)
	return nil
}

// Clone returns a copy that shares no slices or pointers with r.
func (r Request) Clone() Request {
	out := r
	if r.TaggedUsers != nil {
		out.TaggedUsers = append([]string(nil), r.TaggedUsers...)
	}
	if r.AssignedTo != nil {
		assignee := *r.AssignedTo
		out.AssignedTo = &assignee
	}
	if r.CreatedAt != nil {
		createdAt := *r.CreatedAt
		out.CreatedAt = &createdAt
	}
	return out
}
