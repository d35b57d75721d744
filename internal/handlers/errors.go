package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/photo-studio/internal/auth"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
	"github.com/BruksfildServices01/photo-studio/internal/infra/payments"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
	"github.com/BruksfildServices01/photo-studio/internal/validators"
)

type businessResponse struct {
	status  int
	message string
}

var businessErrors = map[string]businessResponse{
	"client_not_found":       {http.StatusNotFound, "Cliente não encontrado."},
	"session_not_found":      {http.StatusNotFound, "Sessão não encontrada."},
	"invalid_state":          {http.StatusConflict, "Sessões realizadas ou canceladas não podem ser alteradas."},
	"invalid_status":         {http.StatusBadRequest, "Status inválido."},
	"invalid_payment_status": {http.StatusBadRequest, "Status de pagamento inválido."},
	"invalid_payment_kind":   {http.StatusBadRequest, "Tipo de cobrança inválido."},
	"already_paid":           {http.StatusConflict, "Sessão já está paga."},
	"deposit_already_paid":   {http.StatusConflict, "O sinal desta sessão já foi pago."},
	"invalid_amount":         {http.StatusBadRequest, "Valor da sessão não permite cobrança."},
}

// respondError traduz os erros das camadas internas para JSON.
func respondError(c *gin.Context, err error) {
	var fields validators.FieldErrors
	if errors.As(err, &fields) {
		httperr.Validation(c, fields)
		return
	}

	if code, ok := httperr.AsBusiness(err); ok {
		if r, known := businessErrors[code]; known {
			httperr.Write(c, r.status, code, r.message)
			return
		}
		httperr.BadRequest(c, code, "Operação inválida.")
		return
	}

	var opErr *ucStudio.OperationError
	if errors.As(err, &opErr) {
		httperr.Internal(c, "failed_to_"+opErr.Op, opErr.Message)
		return
	}

	if errors.Is(err, payments.ErrProvider) {
		httperr.Write(c, http.StatusBadGateway, "payment_provider_error", "Erro ao comunicar com o provedor de pagamento.")
		return
	}

	applog.FromGin(c, applog.Discard()).ErrorContext(c.Request.Context(), "unhandled error", applog.FieldError, err.Error())
	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
}

var authStatus = map[string]int{
	auth.CodeInvalidEmail:        http.StatusBadRequest,
	auth.CodeWeakPassword:        http.StatusBadRequest,
	auth.CodeUserNotFound:        http.StatusNotFound,
	auth.CodeWrongPassword:       http.StatusUnauthorized,
	auth.CodeInvalidCredential:   http.StatusUnauthorized,
	auth.CodeEmailAlreadyInUse:   http.StatusConflict,
	auth.CodeUserDisabled:        http.StatusForbidden,
	auth.CodeOperationNotAllowed: http.StatusForbidden,
	auth.CodeTooManyRequests:     http.StatusTooManyRequests,
	auth.CodeNetworkFailed:       http.StatusServiceUnavailable,
}

func respondAuthError(c *gin.Context, res auth.Result) {
	status, ok := authStatus[res.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	httperr.Write(c, status, res.Code, res.Error)
}

func badRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
}
