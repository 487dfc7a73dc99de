// Package auth はサインアップ・サインインとベアラートークンの発行・検証を提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/linkman/internal/model"
	"github.com/hitoshi/linkman/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	BcryptCost int // パスワードハッシュのコスト。0の場合はbcrypt.DefaultCost
}

// AuthMetrics は認証イベントのメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type AuthMetrics interface {
	RecordSignup()
	RecordSigninFailure()
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	metrics  AuthMetrics
	config   ServiceConfig
}

// NewService はServiceを生成する。
// metricsはnilでもよく、その場合はメトリクスを記録しない。
func NewService(userRepo repository.UserRepository, tokens *TokenService, metrics AuthMetrics, config ServiceConfig) *Service {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		metrics:  metrics,
		config:   config,
	}
}

// Signup は新規ユーザーを登録し、アクセストークンを発行する。
// メールアドレスが登録済みの場合はEMAIL_TAKENエラーを返す。
// 重複判定はリポジトリの一意制約に委ね、事前チェックは行わない。
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", model.NewEmptyPasswordError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", model.NewEmailTakenError()
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new user signed up",
		slog.String("user_id", user.ID),
	)
	if s.metrics != nil {
		s.metrics.RecordSignup()
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// Signin はメールアドレスとパスワードを検証し、アクセストークンを発行する。
// 未登録メールアドレスとパスワード不一致は同一のエラーとして報告する。
func (s *Service) Signin(ctx context.Context, email, password string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", model.NewEmptyPasswordError()
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return "", s.signinFailed()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", s.signinFailed()
	}

	slog.Info("user signed in",
		slog.String("user_id", user.ID),
	)

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// signinFailed はサインイン失敗を記録し、原因を区別しないエラーを返す。
func (s *Service) signinFailed() error {
	if s.metrics != nil {
		s.metrics.RecordSigninFailure()
	}
	return model.NewInvalidCredentialsError()
}

// validateEmail はメールアドレスの形式を検証する。
func validateEmail(email string) error {
	if email == "" {
		return model.NewInvalidEmailError()
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return model.NewInvalidEmailError()
	}
	return nil
}
