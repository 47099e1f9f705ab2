package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenIssuer = "robofest"
)

// AuthUseCase handles back-office authentication and user management.
// Tokens are HS256-signed JWTs carrying the user ID as subject and the
// token kind ("access" or "refresh") as a claim.
type AuthUseCase struct {
	repo   interfaces.Repository
	secret []byte
	now    func() time.Time
}

func NewAuthUseCase(repo interfaces.Repository, secret []byte) *AuthUseCase {
	return &AuthUseCase{
		repo:   repo,
		secret: secret,
		now:    time.Now,
	}
}

// TokenPair is the result of a successful login or refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Login verifies the credentials and issues a token pair. The failure
// reason is not distinguished to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*TokenPair, *model.AdminUser, error) {
	user, err := uc.repo.User().GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to look up user", goerr.V(EmailKey, email))
	}
	if user == nil {
		return nil, nil, goerr.Wrap(ErrInvalidCredentials, "unknown email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, goerr.Wrap(ErrInvalidCredentials, "password mismatch", goerr.V(UserIDKey, user.ID))
	}

	if !user.IsActive {
		return nil, nil, goerr.Wrap(ErrUserInactive, "login rejected", goerr.V(UserIDKey, user.ID))
	}

	now := uc.now()
	user.LastLogin = &now
	if _, err := uc.repo.User().Update(ctx, user); err != nil {
		// Login still succeeds when the timestamp write fails
		logging.From(ctx).Warn("failed to record last login", "error", err, "user_id", user.ID)
	}

	pair, err := uc.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	user, err := uc.validate(ctx, refreshToken, "refresh")
	if err != nil {
		return nil, err
	}
	return uc.issueTokens(user)
}

// ValidateAccess checks an access token and returns the active user it
// belongs to
func (uc *AuthUseCase) ValidateAccess(ctx context.Context, accessToken string) (*model.AdminUser, error) {
	return uc.validate(ctx, accessToken, "access")
}

func (uc *AuthUseCase) validate(ctx context.Context, raw, kind string) (*model.AdminUser, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, uc.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAcceptableSkew(10*time.Second),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidToken, "token parse failed")
	}

	typ, ok := token.Get("typ")
	if !ok || typ != kind {
		return nil, goerr.Wrap(ErrInvalidToken, "unexpected token kind")
	}

	userID, err := strconv.ParseInt(token.Subject(), 10, 64)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidToken, "malformed subject")
	}

	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidToken, "user lookup failed", goerr.V(UserIDKey, userID))
	}
	if !user.IsActive {
		return nil, goerr.Wrap(ErrUserInactive, "token rejected", goerr.V(UserIDKey, user.ID))
	}
	return user, nil
}

func (uc *AuthUseCase) issueTokens(user *model.AdminUser) (*TokenPair, error) {
	now := uc.now()

	access, err := uc.sign(user, "access", now, now.Add(accessTokenTTL))
	if err != nil {
		return nil, err
	}
	refresh, err := uc.sign(user, "refresh", now, now.Add(refreshTokenTTL))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (uc *AuthUseCase) sign(user *model.AdminUser, kind string, iat, exp time.Time) (string, error) {
	token, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(strconv.FormatInt(user.ID, 10)).
		IssuedAt(iat).
		Expiration(exp).
		Claim("typ", kind).
		Claim("role", user.Role.String()).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, uc.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// CreateUserInput carries the fields for creating or updating a
// back-office account
type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     types.UserRole
	IsActive bool
}

// CreateUser adds a back-office account. Only super admins may create
// users.
func (uc *AuthUseCase) CreateUser(ctx context.Context, actor *model.AdminUser, input CreateUserInput) (*model.AdminUser, error) {
	if !actor.IsSuperAdmin() {
		return nil, goerr.Wrap(ErrPermissionDenied, "only super admins can create users", goerr.V(UserIDKey, actor.ID))
	}
	if input.Email == "" || input.Password == "" {
		return nil, goerr.New("email and password are required")
	}
	if !input.Role.IsValid() {
		return nil, goerr.New("invalid role", goerr.V("role", input.Role))
	}

	existing, err := uc.repo.User().GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check email uniqueness")
	}
	if existing != nil {
		return nil, goerr.New("email already in use", goerr.V(EmailKey, input.Email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	return uc.repo.User().Create(ctx, &model.AdminUser{
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Phone:        input.Phone,
		Role:         input.Role,
		IsActive:     input.IsActive,
	})
}

// UpdateUser modifies a back-office account. Admins may edit their own
// profile; everything else requires the super admin role.
func (uc *AuthUseCase) UpdateUser(ctx context.Context, actor *model.AdminUser, id int64, input CreateUserInput) (*model.AdminUser, error) {
	if !actor.IsSuperAdmin() && actor.ID != id {
		return nil, goerr.Wrap(ErrPermissionDenied, "cannot edit other users", goerr.V(UserIDKey, actor.ID))
	}

	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		existing, err := uc.repo.User().GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to check email uniqueness")
		}
		if existing != nil && existing.ID != id {
			return nil, goerr.New("email already in use", goerr.V(EmailKey, input.Email))
		}
		user.Email = input.Email
	}

	user.FullName = input.FullName
	user.Phone = input.Phone

	// Role and activation changes are super admin only, and a super
	// admin cannot deactivate or demote themselves.
	if actor.IsSuperAdmin() && actor.ID != id {
		if input.Role.IsValid() {
			user.Role = input.Role
		}
		user.IsActive = input.IsActive
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	}

	return uc.repo.User().Update(ctx, user)
}

// DeleteUser removes a back-office account. Super admins only, and never
// their own account.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, actor *model.AdminUser, id int64) error {
	if !actor.IsSuperAdmin() {
		return goerr.Wrap(ErrPermissionDenied, "only super admins can delete users", goerr.V(UserIDKey, actor.ID))
	}
	if actor.ID == id {
		return goerr.Wrap(ErrPermissionDenied, "cannot delete own account", goerr.V(UserIDKey, actor.ID))
	}
	return uc.repo.User().Delete(ctx, id)
}

// ListUsers returns all back-office accounts
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]*model.AdminUser, error) {
	return uc.repo.User().List(ctx)
}

// EnsureDefaultAdmin creates a super admin account when no users exist.
// Used by the seed command on a fresh database.
func (uc *AuthUseCase) EnsureDefaultAdmin(ctx context.Context, email, password string) (*model.AdminUser, error) {
	count, err := uc.repo.User().Count(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count users")
	}
	if count > 0 {
		return nil, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	return uc.repo.User().Create(ctx, &model.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         types.RoleSuperAdmin,
		IsActive:     true,
	})
}
