package usecase

import (
	"context"

	"github.com/pkg/errors"

	"task_backend/internal/feature/users/domain/entity"
	"task_backend/internal/platform/validation"
)

// maxPasswordLength はbcryptが扱える入力の上限（バイト数）です。
const maxPasswordLength = 72

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを保存します。ユーザー名が重複する場合はErrUsernameTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByID はIDでユーザーを取得します（タスクは含みません）。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindWithTasks はIDでユーザーを取得し、所有タスクをID順で読み込みます。
	FindWithTasks(ctx context.Context, id uint) (*entity.User, error)

	// Update はpatchで指定されたカラムのみを更新します。
	Update(ctx context.Context, id uint, patch entity.UserPatch) error

	// Delete はユーザーと所有タスクを削除し、削除したタスクのIDを返します。
	Delete(ctx context.Context, id uint) ([]uint, error)
}

// TxRunner はトランザクションにバインドされたUserRepositoryで処理を実行します。
type TxRunner interface {
	Execute(ctx context.Context, fn func(repo UserRepository) error) error
}

// PasswordHasher はパスワードのハッシュ化を抽象化します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// TaskCacheInvalidator はユーザー削除で消えたタスクのキャッシュを破棄します。
type TaskCacheInvalidator interface {
	Invalidate(ctx context.Context, ids ...uint)
}

// UpdateUserInput は部分更新の入力値です。nilのフィールドは変更しません。
type UpdateUserInput struct {
	Username *string
	Password *string
}

// userUsecase はユーザー管理のビジネスロジックを実装します。
type userUsecase struct {
	users  UserRepository
	tx     TxRunner
	hasher PasswordHasher
	cache  TaskCacheInvalidator
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, tx TxRunner, hasher PasswordHasher, cache TaskCacheInvalidator) *userUsecase {
	return &userUsecase{
		users:  users,
		tx:     tx,
		hasher: hasher,
		cache:  cache,
	}
}

func validatePassword(password string) error {
	if len(password) == 0 || len(password) > maxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

func validateUsername(username string) error {
	if !validation.ValidUsername(username) {
		return ErrInvalidUsername
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *userUsecase) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "register user")
	}

	user := &entity.User{Username: username, Password: hashed}
	if err := u.tx.Execute(ctx, func(repo UserRepository) error {
		return repo.Create(ctx, user)
	}); err != nil {
		return nil, err
	}
	return user, nil
}

// Get はユーザーを所有タスク付きで取得します。
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindWithTasks(ctx, id)
}

// Update はユーザー名・パスワードを部分更新します。パスワードは再ハッシュされます。
func (u *userUsecase) Update(ctx context.Context, id uint, in UpdateUserInput) (*entity.User, error) {
	var patch entity.UserPatch
	if in.Username != nil {
		if err := validateUsername(*in.Username); err != nil {
			return nil, err
		}
		patch.Username = in.Username
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return nil, errors.Wrap(err, "update user")
		}
		patch.PasswordHash = &hashed
	}

	var updated *entity.User
	err := u.tx.Execute(ctx, func(repo UserRepository) error {
		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}
		if !patch.IsEmpty() {
			if err := repo.Update(ctx, id, patch); err != nil {
				return err
			}
		}
		var err error
		updated, err = repo.FindWithTasks(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete はユーザーを削除します。所有タスクも同じトランザクションで削除されます。
func (u *userUsecase) Delete(ctx context.Context, id uint) error {
	var taskIDs []uint
	err := u.tx.Execute(ctx, func(repo UserRepository) error {
		var err error
		taskIDs, err = repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	u.cache.Invalidate(ctx, taskIDs...)
	return nil
}
