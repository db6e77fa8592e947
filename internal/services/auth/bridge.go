package auth

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

type Outcome int

const (
	SignedIn Outcome = iota
	Rejected
	Failed
)

// Attempt is the result of a login. Exactly one of Session, Message or Err
// is set, matching Outcome.
type Attempt struct {
	Outcome Outcome
	Session *Session
	Message string
	Err     error
}

// Bridge forwards login forms to the identity provider and turns its
// classified failures into messages for the login form.
type Bridge struct {
	provider Provider
}

func NewBridge(provider Provider) *Bridge {
	return &Bridge{provider: provider}
}

func (b *Bridge) Authenticate(ctx context.Context, fields url.Values) Attempt {
	session, err := b.provider.SignIn(ctx, StrategyCredentials, fields)
	if err == nil {
		return Attempt{Outcome: SignedIn, Session: session}
	}

	var classified *Error
	if !errors.As(err, &classified) {
		return Attempt{Outcome: Failed, Err: err}
	}
	switch classified.Type {
	case CredentialsSignin:
		return Attempt{Outcome: Rejected, Message: "Invalid credentials."}
	default:
		return Attempt{Outcome: Rejected, Message: "Something went wrong."}
	}
}
