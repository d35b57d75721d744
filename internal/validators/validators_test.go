package validators

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/photo-studio/internal/domain/studio"
)

func TestValidateEmail(t *testing.T) {
	tests := map[string]bool{
		"a@b.com":           true,
		"ana.paula@foto.br": true,
		"a@b":               false,
		"notanemail":        false,
		"a b@c.com":         false,
		"a@@b.com":          false,
		"":                  false,
	}
	for in, want := range tests {
		if got := ValidateEmail(in); got != want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tests := map[string]bool{
		"(11) 98765-4321": true,
		"(11) 8765-4321":  true,
		"11987654321":     true,
		"aaaaaaaaaa":      true, // regra frouxa mantida
		"123456789":       false,
		"":                false,
	}
	for in, want := range tests {
		if got := ValidatePhone(in); got != want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidatePhoneStrict(t *testing.T) {
	tests := map[string]bool{
		"(11) 98765-4321": true,
		"(11) 8765-4321":  true,
		"aaaaaaaaaa":      false,
		"12-34-56-78-9":   false,
	}
	for in, want := range tests {
		if got := ValidatePhoneStrict(in); got != want {
			t.Errorf("ValidatePhoneStrict(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidator_Client(t *testing.T) {
	v := New(false)

	if err := v.Client(studio.Client{Name: "Ana", Email: "ana@foto.com", Phone: "(11) 98765-4321"}); err != nil {
		t.Fatalf("valid client rejected: %v", err)
	}

	err := v.Client(studio.Client{Name: "   ", Email: "ana@foto", Phone: ""})
	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %T %v", err, err)
	}
	want := FieldErrors{
		"name":  "Nome é obrigatório",
		"email": "Email inválido",
		"phone": "Telefone é obrigatório",
	}
	for k, msg := range want {
		if fields[k] != msg {
			t.Errorf("fields[%q] = %q, want %q", k, fields[k], msg)
		}
	}
	if !strings.HasPrefix(err.Error(), "validation failed: email:") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidator_StrictPhone(t *testing.T) {
	c := studio.Client{Name: "Ana", Email: "ana@foto.com", Phone: "aaaaaaaaaa"}

	if err := New(false).Client(c); err != nil {
		t.Errorf("loose validator should accept: %v", err)
	}
	err := New(true).Client(c)
	fields, ok := err.(FieldErrors)
	if !ok || fields["phone"] != "Telefone deve ter pelo menos 10 dígitos" {
		t.Errorf("strict validator: %v", err)
	}
}

func TestValidator_Session(t *testing.T) {
	v := New(false)
	now := time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC)

	valid := studio.Session{
		ClientID: "c1", Type: studio.TypeNewborn, Date: "2024-03-15",
		Time: "09:00", Duration: 2, Value: 450,
	}

	tests := []struct {
		name      string
		mutate    func(*studio.Session)
		checkPast bool
		want      FieldErrors
	}{
		{name: "valid today", mutate: func(*studio.Session) {}, checkPast: true},
		{name: "missing client", mutate: func(s *studio.Session) { s.ClientID = "" }, want: FieldErrors{"client_id": "Cliente é obrigatório"}},
		{name: "missing type", mutate: func(s *studio.Session) { s.Type = "" }, want: FieldErrors{"type": "Tipo de sessão é obrigatório"}},
		{name: "unknown type", mutate: func(s *studio.Session) { s.Type = "aniversario" }, want: FieldErrors{"type": "Tipo de sessão inválido"}},
		{name: "missing date", mutate: func(s *studio.Session) { s.Date = "" }, checkPast: true, want: FieldErrors{"date": "Data é obrigatória"}},
		{name: "bad date", mutate: func(s *studio.Session) { s.Date = "ontem" }, want: FieldErrors{"date": "Data inválida"}},
		{name: "past date", mutate: func(s *studio.Session) { s.Date = "2024-03-14" }, checkPast: true, want: FieldErrors{"date": "Data não pode ser no passado"}},
		{name: "past date allowed on edit", mutate: func(s *studio.Session) { s.Date = "2024-03-14" }},
		{name: "missing time", mutate: func(s *studio.Session) { s.Time = " " }, want: FieldErrors{"time": "Horário é obrigatório"}},
		{name: "time out of range", mutate: func(s *studio.Session) { s.Time = "25:99" }, want: FieldErrors{"time": "Horário inválido"}},
		{name: "time with seconds", mutate: func(s *studio.Session) { s.Time = "10:00:00" }, want: FieldErrors{"time": "Horário inválido"}},
		{name: "time in words", mutate: func(s *studio.Session) { s.Time = "de manhã" }, want: FieldErrors{"time": "Horário inválido"}},
		{name: "single digit hour", mutate: func(s *studio.Session) { s.Time = "9:30" }},
		{name: "location too long", mutate: func(s *studio.Session) { s.Location = strings.Repeat("l", 256) }, want: FieldErrors{"location": "Local deve ter no máximo 255 caracteres"}},
		{name: "duration zero", mutate: func(s *studio.Session) { s.Duration = 0 }, want: FieldErrors{"duration": "Duração deve ser entre 1 e 12 horas"}},
		{name: "duration thirteen", mutate: func(s *studio.Session) { s.Duration = 13 }, want: FieldErrors{"duration": "Duração deve ser entre 1 e 12 horas"}},
		{name: "negative value", mutate: func(s *studio.Session) { s.Value = -1 }, want: FieldErrors{"value": "Valor não pode ser negativo"}},
		{name: "zero value ok", mutate: func(s *studio.Session) { s.Value = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			err := v.Session(s, now, tt.checkPast)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			fields, ok := err.(FieldErrors)
			if !ok {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if len(fields) != len(tt.want) {
				t.Errorf("fields = %v, want %v", fields, tt.want)
			}
			for k, msg := range tt.want {
				if fields[k] != msg {
					t.Errorf("fields[%q] = %q, want %q", k, fields[k], msg)
				}
			}
		})
	}
}

func TestValidator_ClientLengths(t *testing.T) {
	v := New(false)
	valid := studio.Client{Name: "Ana", Email: "ana@foto.com", Phone: "(11) 98765-4321"}

	tests := []struct {
		name   string
		mutate func(*studio.Client)
		field  string
		msg    string
	}{
		{"name at limit", func(c *studio.Client) { c.Name = strings.Repeat("a", 120) }, "", ""},
		{"accented name at limit", func(c *studio.Client) { c.Name = strings.Repeat("ã", 120) }, "", ""},
		{"name too long", func(c *studio.Client) { c.Name = strings.Repeat("a", 200) }, "name", "Nome deve ter no máximo 120 caracteres"},
		{"email too long", func(c *studio.Client) { c.Email = strings.Repeat("a", 115) + "@x.com" }, "email", "Email deve ter no máximo 120 caracteres"},
		{"phone too long", func(c *studio.Client) { c.Phone = strings.Repeat("9", 40) }, "phone", "Telefone deve ter no máximo 30 caracteres"},
		{"address too long", func(c *studio.Client) { c.Address = strings.Repeat("r", 256) }, "address", "Endereço deve ter no máximo 255 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)

			err := v.Client(c)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			fields, ok := err.(FieldErrors)
			if !ok {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if len(fields) != 1 || fields[tt.field] != tt.msg {
				t.Errorf("fields = %v, want %s=%q", fields, tt.field, tt.msg)
			}
		})
	}
}

func TestValidator_CheckKeepsNonFieldErrors(t *testing.T) {
	err := New(false).check(nil)
	if err == nil {
		t.Fatal("expected error for a nil form")
	}
	if _, ok := err.(FieldErrors); ok {
		t.Errorf("non-validation errors must not become FieldErrors: %v", err)
	}
}
