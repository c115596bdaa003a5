package dto

// ErrorResponse cuerpo de error HTTP (rutas JSON).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Flash mensaje de un solo uso que se muestra en la siguiente página.
type Flash struct {
	Category string // success | error
	Message  string
}
