package format

import (
	"math"
	"testing"

	"github.com/BruksfildServices01/photo-studio/internal/domain/studio"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$\u00a00,00"},
		{1.5, "R$\u00a01,50"},
		{1234.56, "R$\u00a01.234,56"},
		{1234567.891, "R$\u00a01.234.567,89"},
		{-350, "-R$\u00a0350,00"},
		{math.NaN(), "R$\u00a0NaN"},
	}
	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateSafe(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Data não informada"},
		{"not-a-date", "Data inválida"},
		{"2024-13-01", "Data inválida"},
		{"2024-03-05", "05/03/2024"},
		{"2024-03-05T23:59:00-03:00", "05/03/2024"},
	}
	for _, tt := range tests {
		if got := DateSafe(tt.in); got != tt.want {
			t.Errorf("DateSafe(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateTime(t *testing.T) {
	if got := DateTime("2024-03-05", "14:30"); got != "05/03/2024 às 14:30" {
		t.Errorf("got %q", got)
	}
	if got := DateTime("", "09:00"); got != "Data não informada às 09:00" {
		t.Errorf("got %q", got)
	}
}

func TestLabels(t *testing.T) {
	if got := SessionTypeLabel(studio.TypeFamilia); got != "Família" {
		t.Errorf("SessionTypeLabel = %q", got)
	}
	if got := StatusLabel(studio.StatusConfirmado); got != "Confirmado" {
		t.Errorf("StatusLabel = %q", got)
	}
	if got := PaymentStatusLabel(studio.PaymentSinal); got != "50% Pago" {
		t.Errorf("PaymentStatusLabel = %q", got)
	}
	if got := PaymentStatusLabel("estornado"); got != "estornado" {
		t.Errorf("unknown label should pass through, got %q", got)
	}
}
