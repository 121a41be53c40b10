package model

import "time"

// QARecord is one append-only audit entry per generated answer.
type QARecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	TokensUsed int       `gorm:"default:0" json:"tokens_used"`
	CreatedAt  time.Time `json:"created_at"`
}

func (QARecord) TableName() string {
	return "request_history"
}
