package pricing

// Machine-readable error codes returned to clients in the "error" field.
// Messages are Portuguese display text, rendered as-is by the frontends.
const (
	CodeValidation          = "validation_error"
	CodeItemNotFound        = "item_not_found"
	CodeItemUnavailable     = "item_unavailable"
	CodeZoneNotFound        = "zone_not_found"
	CodeStoreClosed         = "store_closed"
	CodeCategoryClosed      = "category_closed"
	CodeOrderCancelled      = "order_cancelled"
	CodeCancelWindowExpired = "cancel_window_expired"
)

// Error is a rejected-order error with a stable code and a display message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an *Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}
