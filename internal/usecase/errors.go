package usecase

// DomainError is a business-rule failure the client can act on. The code
// selects the HTTP status at the handler boundary.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
)

func NewValidationError(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}

func NewAuthError(message string) *DomainError {
	return &DomainError{Code: CodeAuth, Message: message}
}

func NewNotFoundError(message string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: message}
}

func NewConflictError(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError wraps store or infrastructure failures. Handlers map it to a
// generic 500 without echoing the underlying error text.
type TechnicalError struct {
	Code    string
	Message string
	Cause   error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Cause
}

func NewStoreError(message string, cause error) *TechnicalError {
	return &TechnicalError{Code: "STORE_ERROR", Message: message, Cause: cause}
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
