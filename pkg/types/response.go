package types

// SuccessEnvelope is the JSON shape of every 2xx response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError carries a stable machine-readable code alongside the human
// message. Details is optional structured context, such as a portal
// redirect target on access denials.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the JSON shape of every non-2xx response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
