package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/format"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
)

// ErrProvider indica falha na comunicação com o Mercado Pago.
var ErrProvider = errors.New("payment provider failure")

const (
	methodPix      = "pix"
	statusApproved = "approved"
	refSeparator   = ":"
)

// Kind é a parcela cobrada: o sinal de 50% ou o valor restante.
type Kind string

const (
	KindDeposit Kind = "deposit"
	KindFull    Kind = "full"
)

func (k Kind) Valid() bool {
	return k == KindDeposit || k == KindFull
}

// paymentAPI é o recorte do cliente do SDK usado aqui.
type paymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// Sessions é o que o serviço precisa da camada de orquestração.
type Sessions interface {
	FindSession(id string) (domain.Session, bool)
	FindClient(id string) (domain.Client, bool)
	UpdatePaymentStatus(ctx context.Context, id string, payment domain.PaymentStatus) (*domain.Session, error)
}

type Checkout struct {
	PaymentID         int     `json:"payment_id"`
	Status            string  `json:"status"`
	Amount            float64 `json:"amount"`
	AmountFormatted   string  `json:"amount_formatted"`
	ExternalReference string  `json:"external_reference"`
	QRCode            string  `json:"qr_code,omitempty"`
	QRCodeBase64      string  `json:"qr_code_base64,omitempty"`
	TicketURL         string  `json:"ticket_url,omitempty"`
}

type Service struct {
	api             paymentAPI
	sessions        Sessions
	notificationURL string
	log             *applog.Logger
}

// NewMercadoPago monta o serviço com o cliente real do SDK.
func NewMercadoPago(accessToken, notificationURL string, sessions Sessions, logger *applog.Logger) (*Service, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return New(payment.NewClient(cfg), notificationURL, sessions, logger), nil
}

func New(api paymentAPI, notificationURL string, sessions Sessions, logger *applog.Logger) *Service {
	return &Service{
		api:             api,
		sessions:        sessions,
		notificationURL: notificationURL,
		log:             logger.WithComponent(applog.ComponentPayments),
	}
}

// ======================================================
// COBRANÇA
// ======================================================

// CreateCheckout gera um PIX para o sinal ou para o restante da sessão.
func (s *Service) CreateCheckout(ctx context.Context, sessionID string, kind Kind) (*Checkout, error) {
	if !kind.Valid() {
		return nil, httperr.ErrBusiness("invalid_payment_kind")
	}

	sess, ok := s.sessions.FindSession(sessionID)
	if !ok {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if sess.Status == domain.StatusCancelado {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	amount, err := amountFor(sess, kind)
	if err != nil {
		return nil, err
	}

	req := payment.Request{
		TransactionAmount: amount,
		Description:       describe(sess, kind),
		PaymentMethodID:   methodPix,
		ExternalReference: externalReference(sess.ID, kind),
		NotificationURL:   s.notificationURL,
	}
	if client, ok := s.sessions.FindClient(sess.ClientID); ok {
		req.Payer = &payment.PayerRequest{Email: client.Email, FirstName: client.Name}
	}

	res, err := s.api.Create(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to create payment",
			applog.FieldSessionID, sess.ID,
			applog.FieldError, err.Error(),
		)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	s.log.InfoContext(ctx, "payment created",
		applog.FieldSessionID, sess.ID,
		"payment_id", res.ID,
		"kind", string(kind),
		"status", res.Status,
	)

	return &Checkout{
		PaymentID:         res.ID,
		Status:            res.Status,
		Amount:            amount,
		AmountFormatted:   format.Currency(amount),
		ExternalReference: req.ExternalReference,
		QRCode:            res.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64:      res.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:         res.PointOfInteraction.TransactionData.TicketURL,
	}, nil
}

// ======================================================
// NOTIFICAÇÃO
// ======================================================

// HandleNotification consulta o pagamento notificado e, se aprovado,
// atualiza o status de pagamento da sessão. Pagamentos não aprovados ou
// de outra origem devolvem (nil, nil).
func (s *Service) HandleNotification(ctx context.Context, paymentID int) (*domain.Session, error) {
	res, err := s.api.Get(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if res.Status != statusApproved {
		s.log.DebugContext(ctx, "payment not approved yet", "payment_id", paymentID, "status", res.Status)
		return nil, nil
	}

	sessionID, kind, ok := parseExternalReference(res.ExternalReference)
	if !ok {
		s.log.WarnContext(ctx, "payment with unknown reference", "payment_id", paymentID, "reference", res.ExternalReference)
		return nil, nil
	}

	sess, found := s.sessions.FindSession(sessionID)
	if !found {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	next := domain.PaymentPago
	if kind == KindDeposit {
		next = domain.PaymentSinal
	}
	// notificações repetidas ou fora de ordem não rebaixam um pagamento completo
	if sess.PaymentStatus == domain.PaymentPago {
		return &sess, nil
	}

	updated, err := s.sessions.UpdatePaymentStatus(ctx, sessionID, next)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "payment confirmed",
		applog.FieldSessionID, sessionID,
		"payment_id", paymentID,
		"payment_status", string(next),
	)
	return updated, nil
}

// ======================================================
// AUXILIARES
// ======================================================

func amountFor(sess domain.Session, kind Kind) (float64, error) {
	if sess.PaymentStatus == domain.PaymentPago {
		return 0, httperr.ErrBusiness("already_paid")
	}

	var amount float64
	switch kind {
	case KindDeposit:
		if sess.PaymentStatus == domain.PaymentSinal {
			return 0, httperr.ErrBusiness("deposit_already_paid")
		}
		amount = sess.Value / 2
	case KindFull:
		amount = sess.Value
		if sess.PaymentStatus == domain.PaymentSinal {
			amount = sess.Value - roundCents(sess.Value/2)
		}
	}

	amount = roundCents(amount)
	if amount <= 0 {
		return 0, httperr.ErrBusiness("invalid_amount")
	}
	return amount, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func describe(sess domain.Session, kind Kind) string {
	part := "Sessão"
	if kind == KindDeposit {
		part = "Sinal 50%"
	}
	return fmt.Sprintf("%s - %s - %s", part, format.SessionTypeLabel(sess.Type), format.DateSafe(sess.Date))
}

func externalReference(sessionID string, kind Kind) string {
	return sessionID + refSeparator + string(kind)
}

func parseExternalReference(ref string) (string, Kind, bool) {
	id, kind, ok := strings.Cut(ref, refSeparator)
	if !ok || id == "" || !Kind(kind).Valid() {
		return "", "", false
	}
	return id, Kind(kind), true
}
