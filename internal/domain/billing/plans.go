package billing

import "time"

// Plan is a purchasable subscription tier.
type Plan struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Amount   int64         `json:"amount"`
	Currency string        `json:"currency"`
	Duration time.Duration `json:"-"`
	Days     int           `json:"durationDays"`
	Features []string      `json:"features"`
}

var catalog = []Plan{
	{
		ID: "student-monthly", Name: "Student Monthly", Amount: 29900, Currency: "INR", Days: 30,
		Features: []string{"Unlimited AI analyses", "Pitch document generation", "Project workspace sync"},
	},
	{
		ID: "student-yearly", Name: "Student Yearly", Amount: 299900, Currency: "INR", Days: 365,
		Features: []string{"Unlimited AI analyses", "Pitch document generation", "Project workspace sync", "Priority support"},
	},
}

func init() {
	for i := range catalog {
		catalog[i].Duration = time.Duration(catalog[i].Days) * 24 * time.Hour
	}
}

// Plans returns the catalog.
func Plans() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// FindPlan looks up a plan by id.
func FindPlan(id string) (Plan, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
