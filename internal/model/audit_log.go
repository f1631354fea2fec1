package model

import "time"

// AuditLog records a privileged mutation. Write-only from the services'
// point of view; only admins can list entries.
type AuditLog struct {
	LogID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	ActorID   *string   `gorm:"type:uuid"                                      json:"actor_id,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null"                     json:"action"`
	Target    string    `gorm:"type:varchar(255);not null;default:''"          json:"target"`
	Detail    string    `gorm:"type:text;not null;default:''"                  json:"detail"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (AuditLog) TableName() string { return "audit_logs" }
