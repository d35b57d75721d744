package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente do estúdio
type Client struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name    string `gorm:"size:120;not null;index" json:"name"`
	Email   string `gorm:"size:120;not null" json:"email"`
	Phone   string `gorm:"size:30;not null" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	Notes   string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
