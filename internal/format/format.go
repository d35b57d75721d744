// Package format converte valores crus em textos de exibição pt-BR.
package format

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/BruksfildServices01/photo-studio/internal/timezone"
)

const (
	DateNotProvided = "Data não informada"
	DateInvalid     = "Data inválida"

	dateLayoutBR = "02/01/2006"
	currencySign = "R$\u00a0"
	brlPattern   = "#.###,##"
)

// Currency formata em reais: 1234.5 -> "R$ 1.234,50" (com espaço inseparável).
func Currency(value float64) string {
	switch {
	case math.IsNaN(value):
		return currencySign + "NaN"
	case math.IsInf(value, 1):
		return currencySign + "∞"
	case math.IsInf(value, -1):
		return "-" + currencySign + "∞"
	}

	if value < 0 {
		return "-" + currencySign + humanize.FormatFloat(brlPattern, -value)
	}
	return currencySign + humanize.FormatFloat(brlPattern, value)
}

// DateSafe nunca falha: devolve mensagens fixas para data ausente ou inválida.
func DateSafe(date string) string {
	if date == "" {
		return DateNotProvided
	}
	d, err := timezone.ParseDate(date, time.UTC)
	if err != nil {
		return DateInvalid
	}
	return d.Format(dateLayoutBR)
}

func DateTime(date, hour string) string {
	return DateSafe(date) + " às " + hour
}
