package studio

import (
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/photo-studio/internal/timezone"
)

const DefaultUpcomingLimit = 5

// FilterAll desliga o filtro correspondente em SessionFilter.
const FilterAll = "todos"

type DashboardStats struct {
	TotalClients      int     `json:"total_clients"`
	SessionsThisMonth int     `json:"sessions_this_month"`
	RevenueThisMonth  float64 `json:"revenue_this_month"`
	PendingPayments   float64 `json:"pending_payments"`
}

// ======================================================
// DASHBOARD
// ======================================================

// CalculateDashboardStats agrega clientes e sessões. O mês corrente é o
// mês/ano de now no fuso de now. Valores não são arredondados aqui.
func CalculateDashboardStats(clients []Client, sessions []Session, now time.Time) DashboardStats {
	stats := DashboardStats{TotalClients: len(clients)}

	loc := now.Location()
	year, month, _ := now.Date()

	for _, s := range sessions {
		if s.PaymentStatus == PaymentPendente {
			stats.PendingPayments += s.Value
		}

		d, err := timezone.ParseDate(s.Date, loc)
		if err != nil {
			continue
		}
		if d.Year() != year || d.Month() != month {
			continue
		}

		stats.SessionsThisMonth++
		if s.PaymentStatus == PaymentPago {
			stats.RevenueThisMonth += s.Value
		}
	}

	return stats
}

// ======================================================
// PRÓXIMAS SESSÕES
// ======================================================

// UpcomingSessions devolve as sessões não canceladas cujo início (data +
// horário, no fuso de now) ainda não passou, em ordem crescente de data,
// limitadas a limit (limit <= 0 usa 5). Empates mantêm a ordem de entrada.
func UpcomingSessions(sessions []Session, now time.Time, limit int) []Session {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	type candidate struct {
		session Session
		day     time.Time
	}

	loc := now.Location()
	picked := make([]candidate, 0, len(sessions))
	for _, s := range sessions {
		if s.Status == StatusCancelado {
			continue
		}
		start, err := timezone.ParseDateTime(s.Date, s.Time, loc)
		if err != nil || start.Before(now) {
			continue
		}
		picked = append(picked, candidate{session: s, day: timezone.StartOfDay(start)})
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].day.Before(picked[j].day)
	})

	if len(picked) > limit {
		picked = picked[:limit]
	}

	out := make([]Session, len(picked))
	for i, c := range picked {
		out[i] = c.session
	}
	return out
}

// ======================================================
// RESUMO E FILTROS (tela de sessões)
// ======================================================

type SessionSummary struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Scheduled  int     `json:"scheduled"`
	TotalValue float64 `json:"total_value"`
}

func SummarizeSessions(sessions []Session) SessionSummary {
	sum := SessionSummary{Total: len(sessions)}
	for _, s := range sessions {
		switch {
		case s.Status == StatusRealizado:
			sum.Completed++
		case s.Status.Scheduled():
			sum.Scheduled++
		}
		sum.TotalValue += s.Value
	}
	return sum
}

type SessionFilter struct {
	Status        string
	PaymentStatus string
}

func (f SessionFilter) matches(s Session) bool {
	if f.Status != "" && f.Status != FilterAll && string(s.Status) != f.Status {
		return false
	}
	if f.PaymentStatus != "" && f.PaymentStatus != FilterAll && string(s.PaymentStatus) != f.PaymentStatus {
		return false
	}
	return true
}

// FilterSessions aplica o filtro e ordena por data crescente. Datas
// inválidas vão para o fim.
func FilterSessions(sessions []Session, f SessionFilter) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if f.matches(s) {
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, erri := timezone.ParseDate(out[i].Date, time.UTC)
		dj, errj := timezone.ParseDate(out[j].Date, time.UTC)
		switch {
		case erri != nil:
			return false
		case errj != nil:
			return true
		}
		return di.Before(dj)
	})
	return out
}

// SearchClients busca sem diferenciar maiúsculas em nome, email e telefone.
func SearchClients(clients []Client, query string) []Client {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(c.Phone, q) {
			out = append(out, c)
		}
	}
	return out
}
