package models

import "time"

// Settings is the persisted reCAPTCHA Enterprise configuration. There is a
// single row; Integrations lists the enabled form adapters by name.
type Settings struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	SiteKey      string     `gorm:"not null;default:''" json:"site_key"`
	APIKey       string     `gorm:"not null;default:''" json:"api_key"`
	ProjectID    string     `gorm:"not null;default:''" json:"project_id"`
	Risk         float64    `gorm:"not null;default:0.5" json:"risk"`
	Integrations StringList `gorm:"type:jsonb" json:"integrations"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
