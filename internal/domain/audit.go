package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewID generates a UUIDv7 string for application-owned records.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// AuditEntry records an authorization decision or mutation outcome.
type AuditEntry struct {
	ID         string
	Username   string
	Action     string
	EntityKind EntityKind
	EntityID   *int64
	Status     string // "ALLOWED", "DENIED", "ERROR"
	Detail     *string
	CreatedAt  time.Time
}

// AuditFilter holds filter parameters for querying the audit log.
type AuditFilter struct {
	Username *string
	Action   *string
	Status   *string
	Since    *time.Time
	Page     PageRequest
}
