package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/dto"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
	"github.com/BruksfildServices01/photo-studio/internal/httpresp"
	"github.com/BruksfildServices01/photo-studio/internal/infra/payments"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
)

type PaymentService interface {
	CreateCheckout(ctx context.Context, sessionID string, kind payments.Kind) (*payments.Checkout, error)
	HandleNotification(ctx context.Context, paymentID int) (*domain.Session, error)
}

type PaymentHandler struct {
	payments PaymentService
	log      *applog.Logger
}

// NewPaymentHandler aceita svc nil: as rotas respondem 503 quando o
// Mercado Pago não está configurado.
func NewPaymentHandler(svc PaymentService, logger *applog.Logger) *PaymentHandler {
	return &PaymentHandler{payments: svc, log: logger.WithComponent(applog.ComponentPayments)}
}

func (h *PaymentHandler) Checkout(c *gin.Context) {
	if h.payments == nil {
		httperr.Unavailable(c, "payments_disabled", "Pagamentos online não estão habilitados.")
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	out, err := h.payments.CreateCheckout(c.Request.Context(), c.Param("id"), payments.Kind(req.Kind))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// Webhook recebe notificações do Mercado Pago. O id vem no corpo
// (data.id) ou na query (data.id / id). Tudo que não for pagamento é
// confirmado com 200 para o provedor não reenviar.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	if h.payments == nil {
		httperr.Unavailable(c, "payments_disabled", "Pagamentos online não estão habilitados.")
		return
	}

	var n dto.MercadoPagoNotification
	_ = c.ShouldBindJSON(&n)

	kind := firstNonEmpty(n.Type, c.Query("type"), c.Query("topic"))
	rawID := firstNonEmpty(n.Data.ID, c.Query("data.id"), c.Query("id"))

	if kind != "payment" {
		c.Status(http.StatusOK)
		return
	}

	paymentID, err := strconv.Atoi(rawID)
	if err != nil {
		httperr.BadRequest(c, "invalid_payment_id", "Identificador de pagamento inválido.")
		return
	}

	updated, err := h.payments.HandleNotification(c.Request.Context(), paymentID)
	if err != nil {
		applog.FromGin(c, h.log).ErrorContext(c.Request.Context(), "payment notification failed",
			"payment_id", paymentID,
			applog.FieldError, err.Error(),
		)
		respondError(c, err)
		return
	}

	if updated == nil {
		c.Status(http.StatusOK)
		return
	}
	httpresp.OK(c, dto.NewSessionDTO(*updated))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
