package audit

import (
	"time"
)

// AuditAction represents the type of action performed on a contact
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionDelete AuditAction = "delete"
	AuditActionExport AuditAction = "export"
)

// AuditLog represents a single audit log entry
type AuditLog struct {
	ID        string                 `json:"id"`
	ContactID string                 `json:"contact_id"`
	Action    AuditAction            `json:"action"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
