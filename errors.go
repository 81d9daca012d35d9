package checkout

import "net/http"

type ErrorCode string

const (
	CodeInvalidParameter            ErrorCode = "invalid_parameter"
	CodeAuthLookupFailure           ErrorCode = "auth_lookup_failure"
	CodeCustomerLookupFailure       ErrorCode = "customer_lookup_failure"
	CodeMappingPersistenceError     ErrorCode = "mapping_persistence_error"
	CodeSubscriptionRecordError     ErrorCode = "subscription_record_error"
	CodeProviderError               ErrorCode = "provider_error"
	CodeSignatureError              ErrorCode = "signature_error"
	CodeCustomerRollbackFailure     ErrorCode = "customer_rollback_failure"
	CodeSubscriptionRollbackFailure ErrorCode = "subscription_rollback_failure"
)

// Error carries the taxonomy class plus a caller-safe message. The wrapped
// cause is for logs only and never reaches the HTTP response.
type Error struct {
	Code    ErrorCode
	Message string
	err     error
}

func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		err:     err,
	}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidParameter, CodeSignatureError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
