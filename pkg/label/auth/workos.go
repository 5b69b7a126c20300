package auth

import (
	"context"
	"strings"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
)

// WorkOS authenticates credentials against WorkOS User Management.
type WorkOS struct {
	clientID string
}

var _ Authenticator = (*WorkOS)(nil)

// NewWorkOS keys the client library and returns the adapter.
func NewWorkOS(apiKey, clientID string) (*WorkOS, error) {
	if apiKey == "" || clientID == "" {
		return nil, core.NewAuthenticationError("workos api key and client id are required")
	}
	usermanagement.SetAPIKey(apiKey)
	return &WorkOS{clientID: clientID}, nil
}

func (w *WorkOS) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	resp, err := usermanagement.AuthenticateWithPassword(ctx, usermanagement.AuthenticateWithPasswordOpts{
		ClientID: w.clientID,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return types.User{}, core.NewAuthenticationError("credentials rejected: " + err.Error())
	}

	name := strings.TrimSpace(resp.User.FirstName + " " + resp.User.LastName)
	return types.User{Email: resp.User.Email, Name: name}, nil
}
