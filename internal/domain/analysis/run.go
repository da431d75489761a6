package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Run is the audit record of one completed analysis.
type Run struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	ProjectID  *uuid.UUID `json:"projectId,omitempty"`
	Capability Capability `json:"capability"`
	AIModel    string     `json:"aiModel"`
	Fallback   bool       `json:"fallback"`
	DurationMS int64      `json:"durationMs"`
	Result     string     `json:"result"` // JSON document
	CreatedAt  time.Time  `json:"createdAt"`
}

// Page is a page of runs.
type Page struct {
	Data     []*Run `json:"data"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}
