package constants

const (
	ERROR_INTERNAL_ERROR     = "Internal server error"
	DATA_INPUT_IS_NOT_NUMBER = "Id must be a number"
	INVALID_INPUT            = "Invalid input"
	INVALID_LOGIN            = "Invalid email or password"
	EMAIL_ALREADY_USED       = "Email is already registered"
	UNAUTHORIZED             = "Please log in"
	FORBIDDEN                = "You are not allowed to do this"
	ORDER_NOT_FOUND          = "Order not found"
	MENU_ITEM_NOT_FOUND      = "Menu item not found"
	PAYMENT_ALREADY_DONE     = "Payment has already been confirmed"
	PAYMENT_MISSING_PROOF    = "Proof of payment is required"
	ORDER_CANNOT_TRANSITION  = "Order cannot be changed from its current status"
	INVALID_TIME_FORMAT      = "Invalid reservation time"
)

// Locals keys
const (
	LOCALS_ACCOUNT = "account"
	LOCALS_INPUT   = "input"
	LOCALS_ID      = "inputId"
)
