package models

import "time"

// FormSubmission is a submission that passed the risk gate.
type FormSubmission struct {
	ID        uint      `gorm:"primarykey"`
	Reference string    `gorm:"uniqueIndex;not null"`
	Form      string    `gorm:"index;not null"`
	Fields    FieldList `gorm:"type:jsonb"`
	ClientIP  string
	UserAgent string
	RiskScore float64
	CreatedAt time.Time
}
