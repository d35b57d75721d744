package studio

import "github.com/BruksfildServices01/photo-studio/internal/httperr"

// ===============================
// Tipo de sessão
// ===============================

type SessionType string

const (
	TypeNewborn     SessionType = "newborn"
	TypeGestante    SessionType = "gestante"
	TypeCasamento   SessionType = "casamento"
	TypeCorporativo SessionType = "corporativo"
	TypeFamilia     SessionType = "familia"
	TypeEvento      SessionType = "evento"
	TypeProduto     SessionType = "produto"
)

var SessionTypes = []SessionType{
	TypeNewborn, TypeGestante, TypeCasamento, TypeCorporativo,
	TypeFamilia, TypeEvento, TypeProduto,
}

func (t SessionType) Valid() bool {
	for _, v := range SessionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ===============================
// Status da sessão
// ===============================

type Status string

const (
	StatusAgendado   Status = "agendado"
	StatusConfirmado Status = "confirmado"
	StatusRealizado  Status = "realizado"
	StatusCancelado  Status = "cancelado"
)

var Statuses = []Status{StatusAgendado, StatusConfirmado, StatusRealizado, StatusCancelado}

func (s Status) Valid() bool {
	switch s {
	case StatusAgendado, StatusConfirmado, StatusRealizado, StatusCancelado:
		return true
	}
	return false
}

// Terminal indica que a sessão já foi encerrada.
func (s Status) Terminal() bool {
	return s == StatusRealizado || s == StatusCancelado
}

// Scheduled cobre agendado e confirmado.
func (s Status) Scheduled() bool {
	return s == StatusAgendado || s == StatusConfirmado
}

// ===============================
// Status de pagamento
// ===============================

type PaymentStatus string

const (
	PaymentPendente PaymentStatus = "pendente"
	PaymentSinal    PaymentStatus = "sinal"
	PaymentPago     PaymentStatus = "pago"
)

var PaymentStatuses = []PaymentStatus{PaymentPendente, PaymentSinal, PaymentPago}

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPendente, PaymentSinal, PaymentPago:
		return true
	}
	return false
}

// ===============================
// Validações
// ===============================

// CanTransition define se a sessão pode ir de current para next.
// Repetir o status atual é permitido (no-op); sessões realizadas ou
// canceladas não mudam mais.
func CanTransition(current, next Status) error {
	if !next.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if current == next {
		return nil
	}
	if current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanChangePayment aceita qualquer transição entre valores válidos.
func CanChangePayment(next PaymentStatus) error {
	if !next.Valid() {
		return httperr.ErrBusiness("invalid_payment_status")
	}
	return nil
}

func InitialStatus() Status {
	return StatusAgendado
}

func InitialPaymentStatus() PaymentStatus {
	return PaymentPendente
}
