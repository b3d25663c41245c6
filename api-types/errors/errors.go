package errors

import (
	"encoding/json"
	"fmt"
)

// Code classifies why a value was rejected.
type Code string

const (
	// Schema: the type descriptor itself cannot be interpreted
	// (unrecognized tag, missing inner descriptor).
	Schema Code = "schema"

	// Mismatch: the value's runtime kind or shape does not fit the
	// descriptor.
	Mismatch Code = "mismatch"

	// Range: a numeric value is outside the legal range of its
	// declared bit width.
	Range Code = "range"

	// UnknownCase: a variant key, enum value, or flags element is not
	// among the declared names.
	UnknownCase Code = "unknown-case"
)

// ErrorMessage is the first violation found while checking a value
// against a type descriptor.
//
// Reason is a complete sentence fragment meant to be shown to the user
// as is. Path locates the violation inside the checked value, like
// "config.items[2].name"; it is empty when the root value itself is
// rejected and the root has no name.
type ErrorMessage struct {
	Reason string `json:"reason"`
	Path   string `json:"path,omitempty"`
	Code   Code   `json:"code,omitempty"`
	Cause  error  `json:"-"`
}

func (em *ErrorMessage) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Reason *string `json:"reason"`
		Path   *string `json:"path,omitempty"`
		Code   *Code   `json:"code,omitempty"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Reason == nil {
		return fmt.Errorf(`required field missing: "reason"`)
	}
	em.Reason = *f.Reason

	if f.Path != nil {
		em.Path = *f.Path
	}

	if f.Code != nil {
		em.Code = *f.Code
	}

	return nil
}

func (e ErrorMessage) String() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

func (e ErrorMessage) Error() string {
	return e.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}
