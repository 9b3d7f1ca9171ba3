package service

import (
	"FileKeeper/internal/model"
	"FileKeeper/internal/repo"
	"FileKeeper/internal/storage"
	"FileKeeper/internal/thumbnail"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"mime"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContentStore дисковое хранилище содержимого (см. storage.Disk).
type ContentStore interface {
	EnsureRoot() error
	Write(data []byte) (string, error)
	Remove(locator string) error
	Read(locator string, tier storage.Tier) ([]byte, error)
}

// FileService операции над файлами пользователя.
type FileService struct {
	files    repo.FileRepository
	contents ContentStore
	queue    thumbnail.Queue
	logger   *zap.SugaredLogger
}

func NewFileService(files repo.FileRepository, contents ContentStore, queue thumbnail.Queue, logger *zap.SugaredLogger) *FileService {
	return &FileService{files: files, contents: contents, queue: queue, logger: logger}
}

// CreateFileRequest входные данные создания файла или папки.
type CreateFileRequest struct {
	Name     string
	Type     model.FileType
	Parent   model.ParentRef
	IsPublic bool
	// Data содержимое в base64; для папок не требуется.
	Data string
}

// FileEntity создаваемый файл: проверка и сохранение.
type FileEntity struct {
	OwnerID  int64
	Name     string
	Type     model.FileType
	Parent   model.ParentRef
	IsPublic bool
	Data     string

	svc *FileService
}

// NewEntity готовит файл к созданию от имени ownerID.
func (s *FileService) NewEntity(ownerID int64, req CreateFileRequest) *FileEntity {
	return &FileEntity{
		OwnerID:  ownerID,
		Name:     req.Name,
		Type:     req.Type,
		Parent:   req.Parent,
		IsPublic: req.IsPublic,
		Data:     req.Data,
		svc:      s,
	}
}

// Create NewEntity + Save.
func (s *FileService) Create(ctx context.Context, ownerID int64, req CreateFileRequest) (model.FileView, error) {
	return s.NewEntity(ownerID, req).Save(ctx)
}

// Validate проверяет правила строго по порядку; первая ошибка прекращает проверку.
func (e *FileEntity) Validate(ctx context.Context) error {
	if e.Name == "" {
		return ErrMissingName
	}
	if !e.Type.Valid() {
		return ErrMissingType
	}
	if e.Data == "" && e.Type != model.TypeFolder {
		return ErrMissingData
	}
	if !e.Parent.IsRoot() {
		parent, err := e.svc.files.FindByID(ctx, e.Parent.ID())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			return fmt.Errorf("lookup parent: %w", err)
		}
		if !parent.IsFolder() {
			return ErrParentNotFolder
		}
		// сохраняем id в том виде, в каком он лежит в базе
		e.Parent = model.ParentOf(parent.ID)
	}
	return nil
}

// Save сохраняет файл. Для не-папок метаданные пишутся только после успешной
// записи содержимого; при ошибке на любом шаге следов не остаётся.
func (e *FileEntity) Save(ctx context.Context) (model.FileView, error) {
	if err := e.Validate(ctx); err != nil {
		return model.FileView{}, err
	}

	f := &model.File{
		ID:       uuid.NewString(),
		UserID:   e.OwnerID,
		Name:     e.Name,
		Type:     e.Type,
		ParentID: e.Parent.Column(),
		IsPublic: e.IsPublic,
	}

	if e.Type == model.TypeFolder {
		if err := e.svc.files.Create(ctx, f); err != nil {
			e.svc.logger.Errorw("create folder: metadata write failed", "user_id", e.OwnerID, "error", err)
			return model.FileView{}, fmt.Errorf("save folder: %w", err)
		}
		return f.View(), nil
	}

	data, err := decodeData(e.Data)
	if err != nil {
		return model.FileView{}, ErrInvalidData
	}

	if err := e.svc.contents.EnsureRoot(); err != nil {
		e.svc.logger.Errorw("create file: storage root unavailable", "error", err)
		return model.FileView{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	locator, err := e.svc.contents.Write(data)
	if err != nil {
		e.svc.logger.Errorw("create file: content write failed", "user_id", e.OwnerID, "error", err)
		return model.FileView{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	f.LocalPath = locator

	if err := e.svc.files.Create(ctx, f); err != nil {
		e.svc.logger.Errorw("create file: metadata write failed", "user_id", e.OwnerID, "error", err)
		if rmErr := e.svc.contents.Remove(locator); rmErr != nil {
			e.svc.logger.Errorw("create file: orphan content cleanup failed", "error", rmErr)
		}
		return model.FileView{}, fmt.Errorf("save file: %w", err)
	}

	if f.Type == model.TypeImage {
		e.svc.requestThumbnails(ctx, f)
	}
	return f.View(), nil
}

// decodeData принимает base64 с выравниванием и без.
func decodeData(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

// requestThumbnails ставит задание в очередь. Отказ не откатывает сохранение.
// Файл уже сохранён, поэтому отмена запроса клиентом задание не отменяет.
func (s *FileService) requestThumbnails(ctx context.Context, f *model.File) {
	if s.queue == nil {
		return
	}
	job := thumbnail.Job{OwnerID: f.UserID, FileID: f.ID}
	if err := s.queue.Enqueue(context.WithoutCancel(ctx), job); err != nil {
		s.logger.Errorw("thumbnail job rejected", "user_id", f.UserID, "file_id", f.ID, "error", err)
	}
}

// Show возвращает файл владельца.
func (s *FileService) Show(ctx context.Context, ownerID int64, id string) (model.FileView, error) {
	f, err := s.files.FindOwnedByID(ctx, ownerID, id)
	if err != nil {
		return model.FileView{}, notFound(err)
	}
	return f.View(), nil
}

// List возвращает страницу дочерних записей владельца.
func (s *FileService) List(ctx context.Context, ownerID int64, parent model.ParentRef, page int) ([]model.FileView, error) {
	files, err := s.files.ListChildren(ctx, ownerID, parent, page)
	if err != nil {
		return nil, err
	}
	return model.Views(files), nil
}

// SetVisibility публикует или скрывает файл владельца.
func (s *FileService) SetVisibility(ctx context.Context, ownerID int64, id string, isPublic bool) (model.FileView, error) {
	f, err := s.files.SetVisibility(ctx, ownerID, id, isPublic)
	if err != nil {
		return model.FileView{}, notFound(err)
	}
	return f.View(), nil
}

// Content содержимое файла для отдачи клиенту.
type Content struct {
	Name        string
	ContentType string
	Data        []byte
}

// Content читает содержимое файла, видимого вызывающему (callerID=nil — аноним).
// size из фиксированного набора выбирает миниатюру, всё остальное — исходник.
func (s *FileService) Content(ctx context.Context, callerID *int64, id, size string) (*Content, error) {
	f, err := s.files.FindVisible(ctx, callerID, id)
	if err != nil {
		return nil, notFound(err)
	}
	if f.IsFolder() {
		return nil, ErrFolderHasNoContent
	}
	data, err := s.contents.Read(f.LocalPath, storage.ParseTier(size))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Errorw("read content failed", "file_id", f.ID, "error", err)
		return nil, err
	}
	return &Content{Name: f.Name, ContentType: ContentTypeFor(f.Name), Data: data}, nil
}

// ContentTypeFor определяет тип по расширению имени, а не по байтам.
func ContentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

const maxPage = math.MaxInt32

// ParsePage нормализует номер страницы: нечисловое или отрицательное — 0.
func ParsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	if n > maxPage {
		return maxPage
	}
	return n
}
