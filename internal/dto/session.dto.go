package dto

import (
	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/format"
)

// ======================================================
// REQUESTS
// ======================================================

type CreateSessionRequest struct {
	ClientID      string  `json:"client_id"`
	Type          string  `json:"type"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Duration      int     `json:"duration"`
	Location      string  `json:"location"`
	Value         float64 `json:"value"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Notes         string  `json:"notes"`
}

func (r CreateSessionRequest) ToSession() domain.Session {
	return domain.Session{
		ClientID:      r.ClientID,
		Type:          domain.SessionType(r.Type),
		Date:          r.Date,
		Time:          r.Time,
		Duration:      r.Duration,
		Location:      r.Location,
		Value:         r.Value,
		Status:        domain.Status(r.Status),
		PaymentStatus: domain.PaymentStatus(r.PaymentStatus),
		Notes:         r.Notes,
	}
}

// UpdateSessionRequest não aceita client_name: o nome vem sempre do cliente.
type UpdateSessionRequest struct {
	ClientID      *string  `json:"client_id"`
	Type          *string  `json:"type"`
	Date          *string  `json:"date"`
	Time          *string  `json:"time"`
	Duration      *int     `json:"duration"`
	Location      *string  `json:"location"`
	Value         *float64 `json:"value"`
	Status        *string  `json:"status"`
	PaymentStatus *string  `json:"payment_status"`
	Notes         *string  `json:"notes"`
}

func (r UpdateSessionRequest) ToPatch() domain.SessionPatch {
	p := domain.SessionPatch{
		ClientID: r.ClientID,
		Date:     r.Date,
		Time:     r.Time,
		Duration: r.Duration,
		Location: r.Location,
		Value:    r.Value,
		Notes:    r.Notes,
	}
	if r.Type != nil {
		t := domain.SessionType(*r.Type)
		p.Type = &t
	}
	if r.Status != nil {
		s := domain.Status(*r.Status)
		p.Status = &s
	}
	if r.PaymentStatus != nil {
		ps := domain.PaymentStatus(*r.PaymentStatus)
		p.PaymentStatus = &ps
	}
	return p
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type CheckoutRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// ======================================================
// RESPONSES
// ======================================================

// SessionDTO acrescenta à sessão os textos prontos para exibição.
type SessionDTO struct {
	domain.Session

	TypeLabel          string `json:"type_label"`
	StatusLabel        string `json:"status_label"`
	PaymentStatusLabel string `json:"payment_status_label"`
	DateFormatted      string `json:"date_formatted"`
	DateTimeFormatted  string `json:"date_time_formatted"`
	ValueFormatted     string `json:"value_formatted"`
}

func NewSessionDTO(s domain.Session) SessionDTO {
	return SessionDTO{
		Session:            s,
		TypeLabel:          format.SessionTypeLabel(s.Type),
		StatusLabel:        format.StatusLabel(s.Status),
		PaymentStatusLabel: format.PaymentStatusLabel(s.PaymentStatus),
		DateFormatted:      format.DateSafe(s.Date),
		DateTimeFormatted:  format.DateTime(s.Date, s.Time),
		ValueFormatted:     format.Currency(s.Value),
	}
}

func NewSessionDTOs(sessions []domain.Session) []SessionDTO {
	out := make([]SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSessionDTO(s))
	}
	return out
}

type SessionSummaryDTO struct {
	domain.SessionSummary
	TotalValueFormatted string `json:"total_value_formatted"`
}

type SessionListResponse struct {
	Data    []SessionDTO      `json:"data"`
	Total   int               `json:"total"`
	Summary SessionSummaryDTO `json:"summary"`
}

func NewSessionListResponse(sessions []domain.Session, summary domain.SessionSummary) SessionListResponse {
	return SessionListResponse{
		Data:  NewSessionDTOs(sessions),
		Total: len(sessions),
		Summary: SessionSummaryDTO{
			SessionSummary:      summary,
			TotalValueFormatted: format.Currency(summary.TotalValue),
		},
	}
}

// ======================================================
// DASHBOARD
// ======================================================

type DashboardStatsDTO struct {
	domain.DashboardStats
	RevenueThisMonthFormatted string `json:"revenue_this_month_formatted"`
	PendingPaymentsFormatted  string `json:"pending_payments_formatted"`
}

type DashboardResponse struct {
	Stats    DashboardStatsDTO `json:"stats"`
	Upcoming []SessionDTO      `json:"upcoming"`
}

func NewDashboardResponse(stats domain.DashboardStats, upcoming []domain.Session) DashboardResponse {
	return DashboardResponse{
		Stats: DashboardStatsDTO{
			DashboardStats:            stats,
			RevenueThisMonthFormatted: format.Currency(stats.RevenueThisMonth),
			PendingPaymentsFormatted:  format.Currency(stats.PendingPayments),
		},
		Upcoming: NewSessionDTOs(upcoming),
	}
}
