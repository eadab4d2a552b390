package usecase

import (
	"context"
	"unicode/utf8"

	"task_backend/internal/feature/tasks/domain/entity"
)

const maxTitleLength = 255

// TaskReader は読み取り専用のタスク取得を抽象化します。
// キャッシュ付き実装（platform/cache）とGORM実装の両方がこれを満たします。
type TaskReader interface {
	// FindByID はIDでタスクを取得します。存在しない場合はErrTaskNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Task, error)

	// List は全ユーザーのタスクをID順で返します。
	List(ctx context.Context) ([]entity.Task, error)
}

// TaskRepository はタスクの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TaskRepository interface {
	TaskReader

	// Create は新しいタスクを保存し、IDを設定します。
	Create(ctx context.Context, task *entity.Task) error

	// Update はpatchで指定されたカラムのみを更新します。
	Update(ctx context.Context, id uint, patch entity.TaskPatch) error

	// Delete はタスクを削除します。存在しない場合はErrTaskNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// TxRunner はトランザクションにバインドされたTaskRepositoryで処理を実行します。
type TxRunner interface {
	Execute(ctx context.Context, fn func(repo TaskRepository) error) error
}

// CacheInvalidator はコミット後に古くなった読み取りキャッシュを破棄します。
type CacheInvalidator interface {
	Invalidate(ctx context.Context, ids ...uint)
}

// CreateTaskInput は新規タスクの入力値です。
type CreateTaskInput struct {
	Title       string
	Description *string
	Completed   bool
}

// taskUsecase はタスクのビジネスロジックを実装します。
type taskUsecase struct {
	reader TaskReader
	tx     TxRunner
	cache  CacheInvalidator
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
// 読み取りはreader経由、変更はtx内で行い、コミット後にcacheを無効化します。
func NewTaskUsecase(reader TaskReader, tx TxRunner, cache CacheInvalidator) *taskUsecase {
	return &taskUsecase{
		reader: reader,
		tx:     tx,
		cache:  cache,
	}
}

func validTitle(title string) bool {
	n := utf8.RuneCountInString(title)
	return n >= 1 && n <= maxTitleLength
}

// Create はownerIDが所有するタスクを作成します。
func (u *taskUsecase) Create(ctx context.Context, ownerID uint, in CreateTaskInput) (*entity.Task, error) {
	if !validTitle(in.Title) {
		return nil, ErrInvalidTitle
	}

	task := &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		OwnerID:     ownerID,
	}
	if err := u.tx.Execute(ctx, func(repo TaskRepository) error {
		return repo.Create(ctx, task)
	}); err != nil {
		return nil, err
	}

	u.cache.Invalidate(ctx)
	return task, nil
}

// List は全タスクを返します。所有者による絞り込みは行いません。
func (u *taskUsecase) List(ctx context.Context) ([]entity.Task, error) {
	return u.reader.List(ctx)
}

// Get はIDでタスクを取得します。
func (u *taskUsecase) Get(ctx context.Context, id uint) (*entity.Task, error) {
	return u.reader.FindByID(ctx, id)
}

// Update はcallerIDが所有するタスクを部分更新します。
// タスクが存在しない場合はErrTaskNotFound、所有者でない場合はErrNotTaskOwnerを返します。
// 入力値の検証は所有者の確認後に行うため、所有者以外には常にErrNotTaskOwnerが返ります。
func (u *taskUsecase) Update(ctx context.Context, callerID, id uint, patch entity.TaskPatch) (*entity.Task, error) {
	var updated *entity.Task
	err := u.tx.Execute(ctx, func(repo TaskRepository) error {
		task, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !task.OwnedBy(callerID) {
			return ErrNotTaskOwner
		}
		if patch.Title != nil && !validTitle(*patch.Title) {
			return ErrInvalidTitle
		}
		if patch.IsEmpty() {
			updated = task
			return nil
		}
		if err := repo.Update(ctx, id, patch); err != nil {
			return err
		}
		updated, err = repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.cache.Invalidate(ctx, id)
	return updated, nil
}

// Delete はcallerIDが所有するタスクを削除します。
func (u *taskUsecase) Delete(ctx context.Context, callerID, id uint) error {
	err := u.tx.Execute(ctx, func(repo TaskRepository) error {
		task, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !task.OwnedBy(callerID) {
			return ErrNotTaskOwner
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	u.cache.Invalidate(ctx, id)
	return nil
}
