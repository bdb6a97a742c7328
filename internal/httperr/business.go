package httperr

import "errors"

// BusinessError is returned by usecases and mapped to an HTTP response at
// the handler boundary.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// FieldErrors carries per-field validation messages out of a usecase.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "validation_failed"
}

func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
