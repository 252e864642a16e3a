package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// PortalResponse is the flat success/error shape the client portal expects.
type PortalResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
