package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/J-Ferr/ecommerce-api/internal/config"
	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserDTO struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

type AuthResult struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type AuthUsecase struct {
	users     repo.UserRepository
	validator AuthValidator
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
	log       *slog.Logger
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository, validator AuthValidator, log *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		validator: validator,
		secret:    []byte(cfg.JWTSecret),
		ttl:       cfg.JWTTTL,
		now:       time.Now,
		log:       log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register は一般ユーザーを作成してトークンを返す。roleは常にuser
func (u *AuthUsecase) Register(ctx context.Context, email string, password string) (AuthResult, error) {
	email = normalizeEmail(email)

	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, email, password); err != nil {
		return AuthResult{}, err
	}

	user, err := u.createUser(ctx, email, password, model.RoleUser)
	if err != nil {
		return AuthResult{}, err
	}
	return u.authResult(ctx, user)
}

// CreateAdmin は管理者の初期作成用（cmd/migrate から使う）。既にあれば何もしない
func (u *AuthUsecase) CreateAdmin(ctx context.Context, email string, password string) (bool, error) {
	email = normalizeEmail(email)
	if err := u.validator.ValidateRegister(ctx, email, password); err != nil {
		return false, err
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	if _, err := u.createUser(ctx, email, password, model.RoleAdmin); err != nil {
		if ae, ok := AsAppError(err); ok && ae.Kind == KindAlreadyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (u *AuthUsecase) createUser(ctx context.Context, email string, password string, role model.Role) (model.User, error) {
	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.ErrorContext(ctx, "hash password failed", "error", err)
		return model.User{}, Internal("failed to register")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(pwHash),
		Role:         role,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return model.User{}, AlreadyExists("email already registered")
		}
		u.log.ErrorContext(ctx, "create user failed", "error", err)
		return model.User{}, Internal("failed to register")
	}
	return *user, nil
}

func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (AuthResult, error) {
	email = normalizeEmail(email)

	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return AuthResult{}, err
	}

	//ユーザーが居なくてもパスワード違いでも同じエラー
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthResult{}, Unauthenticated("invalid credentials")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "find user failed", "error", err)
		return AuthResult{}, Internal("failed to login")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, Unauthenticated("invalid credentials")
	}

	return u.authResult(ctx, user)
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, errUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, NotFound("user not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "find user failed", "user_id", userID, "error", err)
		return UserDTO{}, Internal("failed to load user")
	}
	return toUserDTO(user), nil
}

func (u *AuthUsecase) authResult(ctx context.Context, user model.User) (AuthResult, error) {
	token, err := u.IssueToken(user)
	if err != nil {
		u.log.ErrorContext(ctx, "sign token failed", "user_id", user.ID, "error", err)
		return AuthResult{}, Internal("failed to issue token")
	}
	return AuthResult{User: toUserDTO(user), Token: token}, nil
}

// IssueToken はHS256のアクセストークンを発行する（sub, role, iat, exp）
func (u *AuthUsecase) IssueToken(user model.User) (string, error) {
	now := u.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(u.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(u.secret)
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u model.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
