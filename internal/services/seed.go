package services

import "github.com/yukikurage/request-board/internal/models"

// SeedRequests is the built-in dataset used when no stored snapshot can be
// loaded.
func SeedRequests() []models.Request {
	return []models.Request{
		{
			ID:          "1",
			ProjectName: "Website Redesign",
			Description: "Client requests UI/UX overhaul of their website.",
			RequestedBy: "Alice",
			Team:        models.TeamDesign,
			Priority:    models.PriorityHigh,
			Status:      models.StatusNew,
			Deadline:    "2025-05-20",
			AssignedTo:  &models.Assignee{Name: "Alice", Team: models.TeamDesign},
		},
		{
			ID:          "2",
			ProjectName: "Analytics Dashboard",
			Description: "Add new KPIs to internal analytics dashboard.",
			RequestedBy: "Bob",
			Team:        models.TeamDesign,
			Priority:    models.PriorityMedium,
			Status:      models.StatusUnderReview,
			AssignedTo:  &models.Assignee{Name: "Bob", Team: models.TeamDesign},
		},
	}
}
