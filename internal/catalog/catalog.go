// Package catalog holds the immutable activity catalog: twelve
// preconfigured activities (A..L) with costs, durations, and
// prerequisite relations. Read-only during simulation.
package catalog

import (
	"context"
	"fmt"

	"github.com/bfilipov/warehouse-game/internal/models"
)

var activities = []models.Activity{
	{ID: "A", Title: "Structural repair of the warehouse (Activity A)", DaysNeeded: 20, Cost: 1800},
	{ID: "B", Title: "Structural repair of the office space (Activity B)", DaysNeeded: 10, Cost: 600},
	{ID: "C", Title: "Organizational and architectural design (Activity C)", DaysNeeded: 20, Cost: 300},
	{ID: "D", Title: "Warehouse facade decoration and company signage (Activity D)", DaysNeeded: 10, Cost: 1200},
	{ID: "E", Title: "Delivery of equipment and fitting materials (Activity E)", DaysNeeded: 40, Cost: 3000},
	{ID: "F", Title: "Furnishing design for the warehouse and office (Activity F)", DaysNeeded: 10, Cost: 300},
	{ID: "G", Title: "Order and delivery of warehouse furnishings (Activity G)", DaysNeeded: 20, Cost: 3000},
	{ID: "H", Title: "Order and delivery of office furnishings (Activity H)", DaysNeeded: 20, Cost: 600},
	{ID: "I", Title: "Installation of warehouse furnishings (Activity I)", DaysNeeded: 10, Cost: 300},
	{ID: "J", Title: "Installation of office furnishings (Activity J)", DaysNeeded: 10, Cost: 900},
	{ID: "K", Title: "Order and delivery of goods (Activity K)", DaysNeeded: 30, Cost: 3000},
	{ID: "L", Title: "Equipment installation and warehouse organization (Activity L)", DaysNeeded: 10, Cost: 300},
}

var requirements = map[string][]string{
	"F": {"C"},
	"G": {"A", "B", "F"},
	"H": {"A", "B", "F"},
	"I": {"A", "B", "F", "G"},
	"J": {"A", "B", "F", "H"},
	"K": {"I"},
	"L": {"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"},
}

// All returns the catalog in stable (alphabetical) order.
func All() []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	return out
}

// Get looks up one activity by its short code.
func Get(id string) (models.Activity, bool) {
	for _, a := range activities {
		if a.ID == id {
			return a, true
		}
	}
	return models.Activity{}, false
}

// Requirements returns the prerequisite codes for an activity.
// Activities without prerequisites return an empty slice.
func Requirements(id string) []string {
	reqs := requirements[id]
	out := make([]string, len(reqs))
	copy(out, reqs)
	return out
}

// Size returns the number of catalog activities; a team has completed
// the game when its finished set reaches this size.
func Size() int {
	return len(activities)
}

// Seeder is the subset of the store the catalog needs to persist
// itself.
type Seeder interface {
	UpsertActivity(ctx context.Context, a models.Activity) error
	SetActivityRequirements(ctx context.Context, activityID string, requirementIDs []string) error
}

// Seed upserts the catalog and its prerequisite relations into the
// store. Safe to run on every startup.
func Seed(ctx context.Context, s Seeder) error {
	for _, a := range activities {
		if err := s.UpsertActivity(ctx, a); err != nil {
			return fmt.Errorf("seed activity %s: %w", a.ID, err)
		}
	}
	for id, reqs := range requirements {
		if err := s.SetActivityRequirements(ctx, id, reqs); err != nil {
			return fmt.Errorf("seed requirements for %s: %w", id, err)
		}
	}
	return nil
}
