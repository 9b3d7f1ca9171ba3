package repo

import (
	"FileKeeper/internal/model"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize фиксированный размер страницы при листинге.
const PageSize = 20

// ContentProber сообщает, существует ли содержимое по локатору.
type ContentProber interface {
	Exists(locator string) bool
}

// FileRepository запросы и обновления метаданных файлов.
// Отсутствие записи (в т.ч. синтаксически неверный id или чужой файл)
// всегда сообщается как gorm.ErrRecordNotFound.
type FileRepository interface {
	Create(ctx context.Context, f *model.File) error
	FindByID(ctx context.Context, id string) (*model.File, error)
	FindOwnedByID(ctx context.Context, ownerID int64, id string) (*model.File, error)
	// FindVisible отдаёт публичный файл любому, приватный — только владельцу.
	// Для не-папок содержимое должно существовать на момент запроса.
	FindVisible(ctx context.Context, callerID *int64, id string) (*model.File, error)
	// ListChildren страница из PageSize записей владельца с данным родителем.
	ListChildren(ctx context.Context, ownerID int64, parent model.ParentRef, page int) ([]model.File, error)
	// SetVisibility одно условное обновление по (id, user_id).
	SetVisibility(ctx context.Context, ownerID int64, id string, isPublic bool) (*model.File, error)
	Count(ctx context.Context) (int64, error)
}

type fileRepo struct {
	db       *gorm.DB
	contents ContentProber
}

// NewFileRepository создаёт gorm-реализацию FileRepository.
func NewFileRepository(db *gorm.DB, contents ContentProber) FileRepository {
	return &fileRepo{db: db, contents: contents}
}

// canonicalID приводит id к каноническому виду UUID; ok=false для мусора.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func (r *fileRepo) Create(ctx context.Context, f *model.File) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fileRepo) FindByID(ctx context.Context, id string) (*model.File, error) {
	cid, ok := canonicalID(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var f model.File
	if err := r.db.WithContext(ctx).Where("id = ?", cid).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) FindOwnedByID(ctx context.Context, ownerID int64, id string) (*model.File, error) {
	cid, ok := canonicalID(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var f model.File
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", cid, ownerID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) FindVisible(ctx context.Context, callerID *int64, id string) (*model.File, error) {
	f, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.IsPublic && (callerID == nil || *callerID != f.UserID) {
		return nil, gorm.ErrRecordNotFound
	}
	if !f.IsFolder() && r.contents != nil && !r.contents.Exists(f.LocalPath) {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *fileRepo) ListChildren(ctx context.Context, ownerID int64, parent model.ParentRef, page int) ([]model.File, error) {
	if page < 0 {
		page = 0
	}

	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if parent.IsRoot() {
		q = q.Where("parent_id IS NULL")
	} else {
		p, err := r.FindOwnedByID(ctx, ownerID, parent.ID())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.File{}, nil
		}
		if err != nil {
			return nil, err
		}
		if !p.IsFolder() {
			return []model.File{}, nil
		}
		q = q.Where("parent_id = ?", p.ID)
	}

	// порядок выборки: по времени создания, при равенстве — по id
	files := make([]model.File, 0, PageSize)
	err := q.Order("created_at ASC").Order("id ASC").
		Offset(page * PageSize).
		Limit(PageSize).
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepo) SetVisibility(ctx context.Context, ownerID int64, id string, isPublic bool) (*model.File, error) {
	cid, ok := canonicalID(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	tx := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ? AND user_id = ?", cid, ownerID).
		Update("is_public", isPublic)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindOwnedByID(ctx, ownerID, cid)
}

func (r *fileRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.File{}).Count(&n).Error
	return n, err
}
