package dto

// ErrorResponse cuerpo de error HTTP: { code, message, error }.
// Error lleva el detalle técnico (p. ej. el mensaje del host de imágenes).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ValidationErrorResponse error 400 con el detalle por campo.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
