package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	ErrCredential            = errors.New("credential error")
	ErrCatalogUnavailable    = errors.New("catalog unavailable")
	ErrBundledCatalogCorrupt = errors.New("bundled catalog corrupt")
	ErrBookingPersistFailed  = errors.New("booking persist failed")
	ErrUserRecordInvalid     = errors.New("user record invalid")
)

// KindError pairs one of the error kinds above with the underlying cause.
// errors.Is matches both the kind and anything in the cause chain.
type KindError struct {
	Kind error
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *KindError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Wrap tags err with kind. A nil err still yields a kind-only error.
func Wrap(kind, err error) error {
	return &KindError{Kind: kind, Err: err}
}

// Cause returns the underlying error of a KindError, or err itself.
func Cause(err error) error {
	var ke *KindError
	if errors.As(err, &ke) && ke.Err != nil {
		return ke.Err
	}
	return err
}

// CredentialError carries a message meant to be shown to the user verbatim.
func CredentialError(msg string) error {
	return Wrap(ErrCredential, errors.New(msg))
}
