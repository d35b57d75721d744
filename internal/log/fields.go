package log

// Nomes de campos usados nos logs estruturados
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldClientID   = "client_id"
	FieldSessionID  = "session_id"
	FieldUserID     = "user_id"
	FieldCount      = "count"
)

// Componentes
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStudio   = "studio"
	ComponentStorage  = "storage"
	ComponentAuth     = "auth"
	ComponentAudit    = "audit"
	ComponentAMQP     = "amqp"
	ComponentKV       = "kv"
	ComponentPayments = "payments"
	ComponentBackup   = "backup"
)

// Operações
const (
	OpLoad     = "load"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpRename   = "rename"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
	return f
}

func (f LogFields) ToSlice() []any {
	out := make([]any, 0, len(f)*2)
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
