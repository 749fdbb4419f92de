package roosterteeth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/s0up4200/roosterteeth/schema"
)

// Credential selects how a Client identifies itself. It is either Anonymous
// or a Login.
type Credential interface {
	credential()
}

type anonymous struct{}

func (anonymous) credential() {}

func (anonymous) String() string { return "anonymous" }

// Anonymous makes unauthenticated requests. Gated videos answer with
// ErrVideoUnavailable.
var Anonymous Credential = anonymous{}

// Login exchanges a username and password for a bearer token when the client
// is constructed.
type Login struct {
	Username string
	Password string
}

func (Login) credential() {}

// String keeps the password out of logs and %v output.
func (l Login) String() string {
	return fmt.Sprintf("login(%s)", l.Username)
}

func (l Login) validate() error {
	if l.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidConfig)
	}
	if l.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidConfig)
	}
	return nil
}

type tokenRequest struct {
	ClientID  string `json:"client_id"`
	GrantType string `json:"grant_type"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Scope     string `json:"scope"`
}

// Token is the response of the password-grant exchange. Only AccessToken is
// kept by the client.
type Token struct {
	AccessToken  string                  `json:"access_token"`
	TokenType    string                  `json:"token_type"`
	ExpiresIn    int64                   `json:"expires_in"`
	RefreshToken schema.Optional[string] `json:"refresh_token"`
	UserID       schema.Optional[uint32] `json:"user_id"`
	UUID         schema.Optional[string] `json:"uuid"`
}

// authenticate performs the password-grant token request.
func (c *Client) authenticate(ctx context.Context, login Login, authURL, clientID string) (*Token, error) {
	payload, err := json.Marshal(tokenRequest{
		ClientID:  clientID,
		GrantType: "password",
		Username:  login.Username,
		Password:  login.Password,
		Scope:     "user public",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, authURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		apiErr := newAPIError(status, authURL, body)
		if status == http.StatusBadRequest || status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, apiErr)
		}
		return nil, apiErr
	}

	token, err := schema.Decode[Token](body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, errors.New("token response carried an empty access_token")
	}

	c.logger.Debug().
		Str("user", login.Username).
		Str("token_type", token.TokenType).
		Int64("expires_in", token.ExpiresIn).
		Msg("Obtained Rooster Teeth access token")

	return &token, nil
}
