package model

// Sig is a Special Interest Group, the club's organizational sub-unit.
type Sig struct {
	SigID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sig_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	Timestamps
}

// TableName sets the table name.
func (Sig) TableName() string { return "sigs" }
