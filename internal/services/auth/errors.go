package auth

import "fmt"

// Provider error types. Only these carry a discriminator the login form can
// branch on; any other error from a provider is unclassified.
const (
	CredentialsSignin  = "CredentialsSignin"
	CallbackRouteError = "CallbackRouteError"
	InvalidProvider    = "InvalidProvider"
)

// Error is a classified provider failure.
type Error struct {
	Type string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return e.Type
}

func (e *Error) Unwrap() error {
	return e.Err
}
