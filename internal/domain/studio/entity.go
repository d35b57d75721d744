package studio

import (
	"errors"
	"time"
)

// ErrNotFound é devolvido pelo armazenamento quando o id não existe.
var ErrNotFound = errors.New("not found")

// ===============================
// Cliente
// ===============================

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientPatch carrega só os campos informados.
type ClientPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Address == nil && p.Notes == nil
}

// Apply devolve uma cópia do cliente com o patch aplicado.
func (p ClientPatch) Apply(c Client) Client {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	return c
}

// ===============================
// Sessão
// ===============================

// Session é um ensaio agendado. ClientName é cópia do nome do cliente
// e precisa acompanhar renomeações.
type Session struct {
	ID            string        `json:"id"`
	ClientID      string        `json:"client_id"`
	ClientName    string        `json:"client_name"`
	Type          SessionType   `json:"type"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Duration      int           `json:"duration"`
	Location      string        `json:"location"`
	Value         float64       `json:"value"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type SessionPatch struct {
	ClientID      *string
	ClientName    *string
	Type          *SessionType
	Date          *string
	Time          *string
	Duration      *int
	Location      *string
	Value         *float64
	Status        *Status
	PaymentStatus *PaymentStatus
	Notes         *string
}

func (p SessionPatch) IsEmpty() bool {
	return p == SessionPatch{}
}

func (p SessionPatch) Apply(s Session) Session {
	if p.ClientID != nil {
		s.ClientID = *p.ClientID
	}
	if p.ClientName != nil {
		s.ClientName = *p.ClientName
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Time != nil {
		s.Time = *p.Time
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Value != nil {
		s.Value = *p.Value
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		s.PaymentStatus = *p.PaymentStatus
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	return s
}
