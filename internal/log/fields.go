package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldUserID     = "user_id"
	FieldAction     = "action"
	FieldLang       = "lang"
	FieldCategory   = "category"
	FieldAmount     = "amount_paise"
	FieldExpenseID  = "expense_id"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldTranscript = "transcript"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentEngine     = "engine"
	ComponentClassifier = "classifier"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentForecast   = "forecast"
	ComponentBackend    = "backend"
)
