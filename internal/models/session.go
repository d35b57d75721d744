package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sessão de fotos. ClientName é cópia do nome do cliente.
type Session struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID   string `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientName string `gorm:"size:120;not null" json:"client_name"`

	Type     string    `gorm:"size:20;not null" json:"type"`
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`
	Time     string    `gorm:"size:5;not null" json:"time"`
	Duration int       `gorm:"not null;default:1" json:"duration"`
	Location string    `gorm:"size:255" json:"location"`
	Value    float64   `gorm:"type:numeric(12,2);not null;default:0" json:"value"`

	Status        string `gorm:"size:20;not null;default:'agendado'" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'pendente'" json:"payment_status"`
	Notes         string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
