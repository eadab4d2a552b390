// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// taskGorm はTaskRepositoryインターフェースのGORM実装です。
// トランザクション内ではtxにバインドされたインスタンスが使われます。
type taskGorm struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm は指定されたgorm.DB（またはトランザクション）でtaskGormを生成します。
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// BindTaskRepository はトランザクションをTaskRepositoryとして包みます。
func BindTaskRepository(tx *gorm.DB) usecase.TaskRepository {
	return NewTaskGorm(tx)
}

// Create はタスクを追加し、IDとタイムスタンプを設定します。
func (r *taskGorm) Create(ctx context.Context, t *entity.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return pkgerrors.Wrap(err, "create task failed")
	}
	return nil
}

// FindByID はIDでタスクを取得します。
// タスクが存在しない場合、usecase.ErrTaskNotFoundを返します。
func (r *taskGorm) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var t entity.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, pkgerrors.Wrap(err, "find task failed")
	}
	return &t, nil
}

// List は全タスクをID昇順で返します。該当がなければ空のスライスです。
func (r *taskGorm) List(ctx context.Context) ([]entity.Task, error) {
	tasks := make([]entity.Task, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list tasks failed")
	}
	return tasks, nil
}

// Update はpatchで指定されたカラムのみをUPDATEします。
func (r *taskGorm) Update(ctx context.Context, id uint, patch entity.TaskPatch) error {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Completed != nil {
		fields["completed"] = *patch.Completed
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&entity.Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "update task failed")
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// Delete はタスクを削除します。
func (r *taskGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Task{})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "delete task failed")
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
