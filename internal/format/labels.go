package format

import "github.com/BruksfildServices01/photo-studio/internal/domain/studio"

var sessionTypeLabels = map[studio.SessionType]string{
	studio.TypeNewborn:     "Newborn",
	studio.TypeGestante:    "Gestante",
	studio.TypeCasamento:   "Casamento",
	studio.TypeCorporativo: "Corporativo",
	studio.TypeFamilia:     "Família",
	studio.TypeEvento:      "Evento",
	studio.TypeProduto:     "Produto",
}

var statusLabels = map[studio.Status]string{
	studio.StatusAgendado:   "Agendado",
	studio.StatusConfirmado: "Confirmado",
	studio.StatusRealizado:  "Realizado",
	studio.StatusCancelado:  "Cancelado",
}

var paymentLabels = map[studio.PaymentStatus]string{
	studio.PaymentPendente: "Pendente",
	studio.PaymentSinal:    "50% Pago",
	studio.PaymentPago:     "Pago Completo",
}

// Valores desconhecidos voltam sem tradução.

func SessionTypeLabel(t studio.SessionType) string {
	if l, ok := sessionTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func StatusLabel(s studio.Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func PaymentStatusLabel(p studio.PaymentStatus) string {
	if l, ok := paymentLabels[p]; ok {
		return l
	}
	return string(p)
}
