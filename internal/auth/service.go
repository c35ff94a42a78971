package auth

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/internal/shared/session"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

var validate = validator.New()

// IdentityProvider is the injected federated sign-in capability: it returns
// an identity token the backend can exchange for a session.
type IdentityProvider interface {
	IdentityToken(ctx context.Context) (string, error)
}

// Service signs principals in and installs the resulting token into the
// session boundary.
type Service struct {
	api     *api.Client
	session *session.Session
	log     *logger.Logger
}

// NewService creates an auth Service.
func NewService(apiClient *api.Client, sess *session.Session, log *logger.Logger) *Service {
	return &Service{
		api:     apiClient,
		session: sess,
		log:     log,
	}
}

// SignIn authenticates with email/password against the endpoint for the
// given role and stores the returned token in the session.
func (s *Service) SignIn(ctx context.Context, role Role, req LoginRequest) (*UserResponse, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid credentials payload: %w", err)
	}

	var resp AuthResponse
	if err := s.api.Post(ctx, "/auth/"+role.String()+"/login", req, &resp); err != nil {
		s.log.LogAuthFailure(ctx, err.Error())
		return nil, err
	}

	if err := s.session.SetToken(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}

	s.log.LogAuthSuccess(ctx, resp.User.ID, resp.User.Role)
	return &resp.User, nil
}

// SignInFederated obtains an identity token from the sign-in collaborator
// and exchanges it for a session.
func (s *Service) SignInFederated(ctx context.Context, provider IdentityProvider) (*UserResponse, error) {
	identityToken, err := provider.IdentityToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("federated sign-in: %w", err)
	}

	var resp AuthResponse
	if err := s.api.Post(ctx, "/auth/federated", FederatedLoginRequest{IdentityToken: identityToken}, &resp); err != nil {
		s.log.LogAuthFailure(ctx, err.Error())
		return nil, err
	}

	if err := s.session.SetToken(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}

	s.log.LogAuthSuccess(ctx, resp.User.ID, resp.User.Role)
	return &resp.User, nil
}

// SignOut discards the current session.
func (s *Service) SignOut() {
	s.session.Clear()
}
