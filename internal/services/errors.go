package services

// Checkout failure codes.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeProductNotFound = "product_not_found"
	CodePaymentRejected = "payment_rejected"
)

// CheckoutError is a caller error from the checkout engine. Message becomes
// the response "error" field; Hints are merged into the response body so every
// failure is self-explanatory to an automated caller.
type CheckoutError struct {
	Code    string
	Message string
	Hints   map[string]any
}

func (e *CheckoutError) Error() string { return e.Message }

func invalidRequest(msg string, hints map[string]any) *CheckoutError {
	return &CheckoutError{Code: CodeInvalidRequest, Message: msg, Hints: hints}
}
