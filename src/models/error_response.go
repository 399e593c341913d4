package models

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}
