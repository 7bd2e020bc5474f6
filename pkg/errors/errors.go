// Package errors provides the structured error type for the keychain.
// Every exported keychain operation returns a *KeychainError carrying one
// of the stable numeric codes from the wire-level error taxonomy, so a
// foreign-language binding can switch on Code without parsing messages.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Code is a stable, ABI-facing error kind. Negative and fixed values mirror
// the taxonomy that existing encrypted blobs and foreign bindings expect;
// never renumber an existing constant.
type Code int

const (
	Panic                 Code = -1
	WrongPassword         Code = 0
	NotEnoughData         Code = 1
	SeedIsNotSaved        Code = 2
	CantCalculateSeedSize Code = 3
	DataError             Code = 4
	InvalidSeedSize       Code = 5
	KeyDoesNotExist       Code = 6
	KeyAlreadyExist       Code = 7
	NetworkIsNotSupported Code = 8
	KeyError              Code = 9
	KeyPathError          Code = 10
	MnemonicError         Code = 11
)

//nolint:gochecknoglobals // stable label table for Code.String
var codeNames = map[Code]string{
	Panic:                 "Panic",
	WrongPassword:         "WrongPassword",
	NotEnoughData:         "NotEnoughData",
	SeedIsNotSaved:        "SeedIsNotSaved",
	CantCalculateSeedSize: "CantCalculateSeedSize",
	DataError:             "DataError",
	InvalidSeedSize:       "InvalidSeedSize",
	KeyDoesNotExist:       "KeyDoesNotExist",
	KeyAlreadyExist:       "KeyAlreadyExist",
	NetworkIsNotSupported: "NetworkIsNotSupported",
	KeyError:              "KeyError",
	KeyPathError:          "KeyPathError",
	MnemonicError:         "MnemonicError",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// KeychainError is the structured error type returned by every exported
// operation in this module.
type KeychainError struct {
	Code       Code
	Message    string
	Network    *uint32 // set when the error is scoped to a network code
	Details    map[string]string
	Suggestion string
	Cause      error
}

func (e *KeychainError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)

	if e.Network != nil {
		msg = fmt.Sprintf("%s (network: 0x%08x)", msg, *e.Network)
	}

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *KeychainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KeychainError: two KeychainErrors match if
// their Code matches, regardless of message/details/cause.
func (e *KeychainError) Is(target error) bool {
	var t *KeychainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates a KeychainError with the given code and message.
func New(code Code, message string) *KeychainError {
	return &KeychainError{Code: code, Message: message}
}

// Newf creates a KeychainError with a formatted message.
func Newf(code Code, format string, args ...any) *KeychainError {
	return &KeychainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithNetwork returns a copy of err scoped to the given network code. If
// err is not a *KeychainError, it is wrapped as KeyError.
func WithNetwork(err error, network uint32) error {
	if err == nil {
		return nil
	}

	var ke *KeychainError
	if errors.As(err, &ke) {
		n := network
		return &KeychainError{
			Code:       ke.Code,
			Message:    ke.Message,
			Network:    &n,
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      ke.Cause,
		}
	}

	n := network
	return &KeychainError{
		Code:    KeyError,
		Message: err.Error(),
		Network: &n,
		Cause:   err,
	}
}

// Wrap adds context to err, preserving its Code when err is a
// *KeychainError, otherwise producing a generic DataError.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ke *KeychainError
	if errors.As(err, &ke) {
		return &KeychainError{
			Code:       ke.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ke.Message),
			Network:    ke.Network,
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      err,
		}
	}

	return &KeychainError{Code: DataError, Message: msg, Cause: err}
}

// WithDetails attaches key/value context to err. Details already on err
// are kept; a key present in both takes the value from details.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ke *KeychainError
	if errors.As(err, &ke) {
		merged := make(map[string]string, len(ke.Details)+len(details))
		for k, v := range ke.Details {
			merged[k] = v
		}
		for k, v := range details {
			merged[k] = v
		}
		return &KeychainError{
			Code:       ke.Code,
			Message:    ke.Message,
			Network:    ke.Network,
			Details:    merged,
			Suggestion: ke.Suggestion,
			Cause:      ke.Cause,
		}
	}

	return &KeychainError{Code: DataError, Message: err.Error(), Details: details, Cause: err}
}

// WithSuggestion attaches an actionable suggestion to err.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ke *KeychainError
	if errors.As(err, &ke) {
		return &KeychainError{
			Code:       ke.Code,
			Message:    ke.Message,
			Network:    ke.Network,
			Details:    ke.Details,
			Suggestion: suggestion,
			Cause:      ke.Cause,
		}
	}

	return &KeychainError{Code: DataError, Message: err.Error(), Suggestion: suggestion, Cause: err}
}

// GetCode returns the Code carried by err, or DataError if err does not
// carry a *KeychainError.
func GetCode(err error) Code {
	var ke *KeychainError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return DataError
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Recover converts a recovered panic value into a *KeychainError of kind
// Panic. Intended to be called from a deferred recover() at a
// foreign-language boundary, never internally.
func Recover(r any) error {
	if r == nil {
		return nil
	}
	return &KeychainError{Code: Panic, Message: fmt.Sprintf("%v", r)}
}
