package auth

import (
	"context"
	"net/url"

	"invoice-dashboard-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StrategyCredentials is the only sign-in strategy the dashboard offers.
const StrategyCredentials = "credentials"

// Provider signs a user in with a named strategy.
type Provider interface {
	SignIn(ctx context.Context, strategy string, fields url.Values) (*Session, error)
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// CredentialsProvider checks an email and password against stored bcrypt
// hashes and issues a session on success.
type CredentialsProvider struct {
	users    UserFinder
	tokens   *Tokens
	validate *validator.Validate
}

func NewCredentialsProvider(users UserFinder, tokens *Tokens) *CredentialsProvider {
	return &CredentialsProvider{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
	}
}

func (p *CredentialsProvider) SignIn(ctx context.Context, strategy string, fields url.Values) (*Session, error) {
	if strategy != StrategyCredentials {
		return nil, &Error{Type: InvalidProvider, Err: errors.Errorf("unknown strategy %q", strategy)}
	}

	creds := credentials{Email: fields.Get("email"), Password: fields.Get("password")}
	if err := p.validate.Struct(creds); err != nil {
		return nil, &Error{Type: CredentialsSignin, Err: err}
	}

	user, err := p.users.FindByEmail(ctx, creds.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &Error{Type: CredentialsSignin}
	}
	if err != nil {
		return nil, &Error{Type: CallbackRouteError, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return nil, &Error{Type: CredentialsSignin}
	}

	return p.tokens.Issue(user)
}

// HashPassword returns the bcrypt hash stored for a new user.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}
