package response

var (
	ErrValidation      = newError(40001, "Please correct the highlighted fields")
	ErrBusinessRule    = newError(40002, "The request conflicts with existing data")
	ErrInvalidPassword = newError(40100, "Invalid username or password")
	ErrAuthRequired    = newError(40101, "Login required")
	ErrCSRFRejected    = newError(40300, "Invalid or missing CSRF token")
	ErrNotFound        = newError(40400, "Not found")
	ErrServerInternal  = newError(50000, "Internal server error")
	ErrDatabase        = newError(50001, "Internal server error")
	ErrStorage         = newError(50002, "Internal server error")
)
