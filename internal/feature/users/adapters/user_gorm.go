// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	taskentity "task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/users/domain/entity"
	"task_backend/internal/feature/users/usecase"
	"task_backend/internal/platform/db"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB（またはトランザクション）でuserGormを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// BindUserRepository はトランザクションをUserRepositoryとして包みます。
func BindUserRepository(tx *gorm.DB) usecase.UserRepository {
	return NewUserGorm(tx)
}

// Create はユーザーをデータベースに追加します。
// 同じユーザー名が既に存在する場合、usecase.ErrUsernameTakenを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrUsernameTaken
		}
		return pkgerrors.Wrap(err, "create user failed")
	}
	return nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByUsername はユーザー名でユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindWithTasks はユーザーと所有タスク（ID順）を取得します。
func (r *userGorm) FindWithTasks(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	if u.Tasks == nil {
		u.Tasks = []taskentity.Task{}
	}
	return &u, nil
}

// Update はpatchで指定されたカラムのみをUPDATEします。
func (r *userGorm) Update(ctx context.Context, id uint, patch entity.UserPatch) error {
	fields := map[string]any{}
	if patch.Username != nil {
		fields["username"] = *patch.Username
	}
	if patch.PasswordHash != nil {
		fields["password"] = *patch.PasswordHash
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return usecase.ErrUsernameTaken
		}
		return pkgerrors.Wrap(res.Error, "update user failed")
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete はユーザーの所有タスクを削除してからユーザーを削除し、削除したタスクIDを返します。
// 呼び出し側のトランザクション内で使用してください。
func (r *userGorm) Delete(ctx context.Context, id uint) ([]uint, error) {
	tx := r.db.WithContext(ctx)

	var taskIDs []uint
	if err := tx.Model(&taskentity.Task{}).Where("owner_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list owned tasks failed")
	}
	if err := tx.Where("owner_id = ?", id).Delete(&taskentity.Task{}).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "delete owned tasks failed")
	}

	res := tx.Where("id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return nil, pkgerrors.Wrap(res.Error, "delete user failed")
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return taskIDs, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.ErrUserNotFound
	}
	return pkgerrors.Wrap(err, "find user failed")
}
