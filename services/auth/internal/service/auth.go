package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/hash"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/tokens"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/client"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/events"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/models"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/transport"
)

const passwordResetTTL = time.Hour

// AuthService orchestrates the credential store, the token signer and the
// refresh token ledger. Users client and Events producer may be nil; both
// are best-effort collaborators.
type AuthService struct {
	Repo   repo.GormRepo
	Signer *tokens.Signer
	Users  *client.UserServiceClient
	Events *events.Producer

	now func() time.Time
}

func New(r repo.GormRepo, signer *tokens.Signer, users *client.UserServiceClient, producer *events.Producer) *AuthService {
	return &AuthService{
		Repo:   r,
		Signer: signer,
		Users:  users,
		Events: producer,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if fields := validateRegister(req); len(fields) > 0 {
		return nil, httperr.Validation(fields)
	}

	roleName := strings.ToUpper(strings.TrimSpace(req.Role))
	role, err := s.Repo.FindRoleByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrAlreadyExists
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:         req.Email,
		PasswordHash:  pwHash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PhoneNumber:   req.PhoneNumber,
		EmailVerified: false,
		Roles:         []models.Role{*role},
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	resp, err := s.issuePair(ctx, &user)
	if err != nil {
		return nil, err
	}

	// Propagation to the profile store is a best-effort notification. A
	// downstream outage is logged and swallowed so the two services'
	// failure domains stay independent.
	if err := s.Users.CreateProfile(ctx, client.CreateProfileRequest{
		AuthUserID:  user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Role:        roleName,
	}); err != nil {
		l.Error("user service propagation failed", "email", user.Email, "error", err)
	}

	if err := s.Events.Publish(ctx, events.UserEvent{
		Type:      events.TypeUserRegistered,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
	}); err != nil {
		l.Error("publish user.registered failed", "email", user.Email, "error", err)
	}

	l.Info("user registered", "email", user.Email, "role", roleName)
	return resp, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindActiveByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login failed", "email", req.Email, "reason", "bad password")
		return nil, httperr.ErrInvalidCredentials
	}

	// Prior sessions are invalidated: only the tokens from the latest
	// login survive.
	if err := s.Repo.DeleteAllForUser(ctx, user.ID); err != nil {
		return nil, err
	}

	resp, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	l.Info("login successful", "email", user.Email)
	return resp, nil
}

// Refresh redeems a refresh token for a new pair. A refresh token is
// single-use: the consumed row is replaced atomically, so of two concurrent
// calls with the same token exactly one succeeds.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")
	now := s.now()

	row, err := s.Repo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if row.Expired(now) {
		// Delete-on-discovery: the expired row is reaped here rather
		// than waiting for a sweep that does not exist.
		if delErr := s.Repo.DeleteRefreshToken(ctx, row); delErr != nil {
			l.Error("deleting expired refresh token failed", "error", delErr)
		}
		return nil, httperr.ErrTokenExpired
	}

	user := row.User
	access, accessExp, err := s.Signer.IssueAccess(user.Email, user.RoleNames())
	if err != nil {
		return nil, err
	}
	newRefresh, refreshExp, err := s.Signer.IssueRefresh(user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.ReplaceRefreshToken(ctx, row.ID, user.ID, newRefresh, refreshExp); err != nil {
		return nil, err
	}

	l.Info("token pair rotated", "email", user.Email)
	return s.buildResponse(&user, access, newRefresh, accessExp), nil
}

// Logout revokes a single refresh token. Unknown tokens are fine: the end
// state, token absent from the ledger, is the same.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	row, err := s.Repo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		if err == httperr.ErrInvalidToken {
			return nil
		}
		return err
	}
	return s.Repo.DeleteRefreshToken(ctx, row)
}

func (s *AuthService) GetCurrentUser(ctx context.Context, email string) (*transport.UserDTO, error) {
	user, err := s.Repo.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	dto := mapUser(user)
	return &dto, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, email string) error {
	user, err := s.Repo.FindActiveByEmail(ctx, email)
	if err != nil {
		return err
	}

	now := s.now()
	user.EmailVerified = true
	user.EmailVerifiedAt = &now
	user.VerificationToken = ""
	user.VerificationTokenExpiry = nil
	return s.Repo.SaveUser(ctx, user)
}

func (s *AuthService) InitiatePasswordReset(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.password_reset")

	user, err := s.Repo.FindActiveByEmail(ctx, email)
	if err != nil {
		return err
	}

	expiry := s.now().Add(passwordResetTTL)
	user.PasswordResetToken = uuid.NewString()
	user.PasswordResetTokenExpiry = &expiry
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}

	if err := s.Events.Publish(ctx, events.UserEvent{
		Type:   events.TypePasswordResetRequested,
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		l.Error("publish password reset event failed", "email", user.Email, "error", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 8 {
		return httperr.Validation(map[string]string{"newPassword": "must be at least 8 characters"})
	}

	user, err := s.Repo.FindActiveByEmail(ctx, email)
	if err != nil {
		return err
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = pwHash
	user.PasswordResetToken = ""
	user.PasswordResetTokenExpiry = nil
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}

	// A password change invalidates every outstanding session.
	return s.Repo.DeleteAllForUser(ctx, user.ID)
}

// issuePair mints an access/refresh pair and persists the refresh token.
// The wall clock is read once per operation inside the signer.
func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*transport.AuthResponse, error) {
	access, accessExp, err := s.Signer.IssueAccess(user.Email, user.RoleNames())
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.Signer.IssueRefresh(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefreshToken(ctx, user.ID, refresh, refreshExp); err != nil {
		return nil, err
	}
	return s.buildResponse(user, access, refresh, accessExp), nil
}

func (s *AuthService) buildResponse(user *models.User, access, refresh string, accessExp time.Time) *transport.AuthResponse {
	return &transport.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.Signer.AccessTTL().Seconds()),
		User:         mapUser(user),
	}
}

func mapUser(user *models.User) transport.UserDTO {
	return transport.UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		PhoneNumber:   user.PhoneNumber,
		EmailVerified: user.EmailVerified,
		Roles:         user.RoleNames(),
		CreatedAt:     user.CreatedAt,
	}
}

func validateRegister(req transport.RegisterRequest) map[string]string {
	fields := map[string]string{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(req.Password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["firstName"] = "is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["lastName"] = "is required"
	}
	if strings.TrimSpace(req.Role) == "" {
		fields["role"] = "is required"
	}
	return fields
}
