package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	// Stack is only populated for server errors in development.
	Stack string `json:"stack,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// DeletedResponse is returned by delete endpoints.
type DeletedResponse struct {
	Success bool `json:"success"`
}
