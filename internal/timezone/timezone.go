package timezone

import (
	"errors"
	"strings"
	"time"
)

const (
	DefaultTimezone = "America/Sao_Paulo"

	// DateLayout é o formato de data de calendário trafegado pela API.
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var ErrInvalidDate = errors.New("invalid date")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// Clock devolve uma função "agora" fixada no fuso informado.
func Clock(tz string) func() time.Time {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// ParseDate lê uma data de calendário ("2006-01-02") ou um timestamp RFC 3339.
// O resultado é meia-noite da data escrita, no fuso loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}

	if d, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return d, nil
	}

	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc), nil
	}

	return time.Time{}, ErrInvalidDate
}

// ParseDateTime combina data e "HH:MM". Se o horário não for válido,
// devolve a meia-noite da data.
func ParseDateTime(date, hm string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(TimeLayout, strings.TrimSpace(hm))
	if err != nil {
		return d, nil
	}

	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location()), nil
}

// StartOfDay trunca para 00:00 no fuso de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
