package http

// GenericErrorResponse is the error payload for routes without a richer
// error shape.
type GenericErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
