package auth

// Códigos devolvidos pelo serviço de autenticação.
const (
	CodeUserNotFound        = "auth/user-not-found"
	CodeWrongPassword       = "auth/wrong-password"
	CodeEmailAlreadyInUse   = "auth/email-already-in-use"
	CodeWeakPassword        = "auth/weak-password"
	CodeInvalidEmail        = "auth/invalid-email"
	CodeTooManyRequests     = "auth/too-many-requests"
	CodeNetworkFailed       = "auth/network-request-failed"
	CodeUserDisabled        = "auth/user-disabled"
	CodeOperationNotAllowed = "auth/operation-not-allowed"
	CodeInvalidCredential   = "auth/invalid-credential"
)

// codeInternal fica fora da tabela e cai na mensagem genérica.
const codeInternal = "auth/internal-error"

const unknownErrorMessage = "Erro desconhecido. Tente novamente"

var messages = map[string]string{
	CodeUserNotFound:        "Usuário não encontrado",
	CodeWrongPassword:       "Senha incorreta",
	CodeEmailAlreadyInUse:   "Este email já está em uso",
	CodeWeakPassword:        "A senha deve ter pelo menos 6 caracteres",
	CodeInvalidEmail:        "Email inválido",
	CodeTooManyRequests:     "Muitas tentativas. Tente novamente mais tarde",
	CodeNetworkFailed:       "Erro de conexão. Verifique sua internet",
	CodeUserDisabled:        "Esta conta foi desabilitada",
	CodeOperationNotAllowed: "Operação não permitida",
	CodeInvalidCredential:   "Credenciais inválidas",
}

// MessageFor traduz um código; códigos desconhecidos caem na mensagem genérica.
func MessageFor(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return unknownErrorMessage
}

// Error carrega o código para quem precisa decidir o status HTTP.
type Error struct {
	Code string
}

func (e *Error) Error() string {
	return e.Code
}

func (e *Error) Message() string {
	return MessageFor(e.Code)
}

func newError(code string) *Error {
	return &Error{Code: code}
}
