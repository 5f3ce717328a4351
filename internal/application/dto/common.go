package dto

// ErrorResponse cuerpo de error HTTP. Lleva success=false y error para que un fallo del
// ledger tenga la misma forma que ResultResponse.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Fail construye el cuerpo de un fallo.
func Fail(code, msg string) ErrorResponse {
	return ErrorResponse{Error: msg, Code: code, Message: msg}
}

// ResultResponse resultado de una operación del ledger: success + mensaje o error.
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK construye un resultado exitoso.
func OK(msg string) ResultResponse { return ResultResponse{Success: true, Message: msg} }
