package usecase

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"task_backend/internal/feature/users/domain/entity"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/apperr"
)

// dummyPassword is hashed once at startup; Login compares against it when the
// username is unknown so both failure paths cost one bcrypt comparison.
const dummyPassword = "dummy-password-for-timing"

// UserFinder はユーザーの検索を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserFinder interface {
	// FindByUsername はユーザー名でユーザーを取得します。存在しない場合はNotFound種別のエラーを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID はIDでユーザーを取得します。存在しない場合はNotFound種別のエラーを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を抽象化します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenService はアクセストークンの発行と検証を抽象化します。
type TokenService interface {
	Issue(userID uint) (string, error)
	Decode(token string) (uint, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users     UserFinder
	hasher    PasswordHasher
	tokens    TokenService
	dummyHash string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// タイミング攻撃緩和用のダミーハッシュを、設定されたコストでここで一度だけ計算します。
func NewAuthUsecase(users UserFinder, hasher PasswordHasher, tokens TokenService) (*authUsecase, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "compute dummy hash")
	}
	return &authUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}, nil
}

// Login はユーザーを認証し、成功時にアクセストークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		return "", err
	}

	passwordHash := u.dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// 常にパスワードを検証
	verified := u.hasher.Verify(password, passwordHash)

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || !verified {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", pkgerrors.Wrap(err, "issue token")
	}
	return token, nil
}

// Authenticate はトークンを検証し、対応するユーザーを返します（アクセスガード）。
// 結果はキャッシュせず、リクエストごとに評価します。
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrAuthenticationRequired
	}

	userID, err := u.tokens.Decode(token)
	if err != nil {
		if errors.Is(err, jwtmw.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, ErrAuthenticationRequired
		}
		return nil, err
	}
	return user, nil
}
