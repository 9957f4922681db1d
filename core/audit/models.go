package audit

import "time"

// Log is one entry of GET /audit_logs.
type Log struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultLimit is the number of entries the dashboard shows as recent activity.
const DefaultLimit = 10
