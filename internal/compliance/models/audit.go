package models

import "time"

// AuditAction names an auditable engine operation.
type AuditAction string

const (
	AuditCheckCompleted       AuditAction = "compliance_check_completed"
	AuditSanctionsListAdded   AuditAction = "sanctions_list_added"
	AuditSanctionsListUpdated AuditAction = "sanctions_list_updated"
)

// AuditEvent is one append-only entry in the compliance audit trail.
// Subject is the transaction id for checks and the list id for sanctions changes.
type AuditEvent struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	Subject   string      `json:"subject"`
	Operator  string      `json:"operator"`
	RequestID string      `json:"request_id,omitempty"`
	ClientIP  string      `json:"client_ip,omitempty"`
	Decision  string      `json:"decision,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
