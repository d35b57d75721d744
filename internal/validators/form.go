package validators

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/timezone"
)

// FieldErrors mapeia campo (nome json) para a mensagem exibida ao usuário.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ======================================================
// FORMULÁRIOS
// ======================================================

// Os limites de tamanho acompanham as colunas de models.Client e models.Session.
type clientForm struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,max=120,studio_email"`
	Phone   string `json:"phone" validate:"required,max=30,studio_phone"`
	Address string `json:"address" validate:"max=255"`
}

type sessionForm struct {
	ClientID string  `json:"client_id" validate:"required"`
	Type     string  `json:"type" validate:"required,studio_session_type"`
	Date     string  `json:"date" validate:"required,studio_date"`
	Time     string  `json:"time" validate:"required,studio_time"`
	Location string  `json:"location" validate:"max=255"`
	Duration int     `json:"duration" validate:"min=1,max=12"`
	Value    float64 `json:"value" validate:"gte=0"`
}

var messages = map[string]string{
	"name.required":            "Nome é obrigatório",
	"name.max":                 "Nome deve ter no máximo 120 caracteres",
	"email.max":                "Email deve ter no máximo 120 caracteres",
	"phone.max":                "Telefone deve ter no máximo 30 caracteres",
	"address.max":              "Endereço deve ter no máximo 255 caracteres",
	"email.required":           "Email é obrigatório",
	"email.studio_email":       "Email inválido",
	"phone.required":           "Telefone é obrigatório",
	"phone.studio_phone":       "Telefone deve ter pelo menos 10 dígitos",
	"client_id.required":       "Cliente é obrigatório",
	"type.required":            "Tipo de sessão é obrigatório",
	"type.studio_session_type": "Tipo de sessão inválido",
	"date.required":            "Data é obrigatória",
	"date.studio_date":         "Data inválida",
	"time.required":            "Horário é obrigatório",
	"time.studio_time":         "Horário inválido",
	"location.max":             "Local deve ter no máximo 255 caracteres",
	"duration.min":             "Duração deve ser entre 1 e 12 horas",
	"duration.max":             "Duração deve ser entre 1 e 12 horas",
	"value.gte":                "Valor não pode ser negativo",
}

const msgDateInPast = "Data não pode ser no passado"

// ======================================================
// VALIDATOR
// ======================================================

type Validator struct {
	validate *validator.Validate
}

// New monta o validador. strictPhone troca a regra frouxa de telefone
// pela contagem de dígitos.
func New(strictPhone bool) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	phoneRule := ValidatePhone
	if strictPhone {
		phoneRule = ValidatePhoneStrict
	}

	mustRegister(v, "studio_email", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
	mustRegister(v, "studio_phone", func(fl validator.FieldLevel) bool {
		return phoneRule(fl.Field().String())
	})
	mustRegister(v, "studio_session_type", func(fl validator.FieldLevel) bool {
		return studio.SessionType(fl.Field().String()).Valid()
	})
	mustRegister(v, "studio_time", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(timezone.TimeLayout, fl.Field().String())
		return err == nil
	})
	mustRegister(v, "studio_date", func(fl validator.FieldLevel) bool {
		_, err := timezone.ParseDate(fl.Field().String(), time.UTC)
		return err == nil
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Client valida os campos obrigatórios de um cliente. Devolve nil ou FieldErrors.
func (v *Validator) Client(c studio.Client) error {
	return v.check(clientForm{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	})
}

// Session valida o formulário de sessão. Com checkPast, datas anteriores
// ao dia de now são recusadas.
func (v *Validator) Session(s studio.Session, now time.Time, checkPast bool) error {
	err := v.check(sessionForm{
		ClientID: strings.TrimSpace(s.ClientID),
		Type:     string(s.Type),
		Date:     strings.TrimSpace(s.Date),
		Time:     strings.TrimSpace(s.Time),
		Location: strings.TrimSpace(s.Location),
		Duration: s.Duration,
		Value:    s.Value,
	})

	fields, ok := err.(FieldErrors)
	if err != nil && !ok {
		return err
	}
	if checkPast && (fields == nil || fields["date"] == "") {
		if d, perr := timezone.ParseDate(s.Date, now.Location()); perr == nil && d.Before(timezone.StartOfDay(now)) {
			if fields == nil {
				fields = FieldErrors{}
			}
			fields["date"] = msgDateInPast
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (v *Validator) check(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := FieldErrors{}
	for _, fe := range verrs {
		key := fe.Field()
		if _, seen := fields[key]; seen {
			continue
		}
		if msg, ok := messages[key+"."+fe.Tag()]; ok {
			fields[key] = msg
		} else {
			fields[key] = "Valor inválido"
		}
	}
	return fields
}
