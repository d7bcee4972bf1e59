package rest

import (
	"context"
	"net/http"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

type AuthAPI struct {
	transport *Transport
}

func NewAuthAPI(transport *Transport) *AuthAPI {
	return &AuthAPI{transport: transport}
}

type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         *domain.User `json:"user"`
}

func (r authResponse) toResult() *ports.AuthResult {
	return &ports.AuthResult{
		Tokens: domain.TokenPair{
			AccessToken:  r.AccessToken,
			RefreshToken: r.RefreshToken,
		},
		TokenType: r.TokenType,
		ExpiresIn: r.ExpiresIn,
		User:      r.User,
	}
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	var out authResponse
	err := a.transport.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": email, "password": password},
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out.toResult(), nil
}

type registerRequest struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Role      domain.UserRole `json:"role"`
}

func (a *AuthAPI) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	var out authResponse
	err := a.transport.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body: registerRequest{
			Email:     input.Email,
			Password:  input.Password,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Role:      input.Role,
		},
		Out: &out,
	})
	if err != nil {
		return nil, err
	}
	return out.toResult(), nil
}

func (a *AuthAPI) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	err := a.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.transport.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
	})
}
