package thumbnail

import (
	"FileKeeper/internal/model"
	"FileKeeper/internal/storage"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// FileLookup ищет файл в области видимости владельца.
type FileLookup interface {
	FindOwnedByID(ctx context.Context, ownerID int64, id string) (*model.File, error)
}

// VariantStore читает исходник и пишет производные файлы рядом с ним.
type VariantStore interface {
	Read(locator string, tier storage.Tier) ([]byte, error)
	WriteVariant(locator string, tier storage.Tier, data []byte) error
}

// Renderer потребитель очереди: строит миниатюры всех размеров.
type Renderer struct {
	files  FileLookup
	store  VariantStore
	logger *zap.SugaredLogger
}

// NewRenderer создаёт обработчик заданий.
func NewRenderer(files FileLookup, store VariantStore, logger *zap.SugaredLogger) *Renderer {
	return &Renderer{files: files, store: store, logger: logger}
}

// Handle строит варианты <locator>_<tier> для каждого размера.
func (r *Renderer) Handle(ctx context.Context, job Job) error {
	if job.FileID == "" {
		return errors.New("missing fileId")
	}
	if job.OwnerID == 0 {
		return errors.New("missing userId")
	}

	f, err := r.files.FindOwnedByID(ctx, job.OwnerID, job.FileID)
	if err != nil {
		return fmt.Errorf("load file %s: %w", job.FileID, err)
	}
	if f.Type != model.TypeImage {
		return nil
	}

	data, err := r.store.Read(f.LocalPath, storage.TierOriginal)
	if err != nil {
		return fmt.Errorf("read original: %w", err)
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if src.Bounds().Dx() == 0 || src.Bounds().Dy() == 0 {
		return errors.New("empty image")
	}

	for _, tier := range storage.Tiers() {
		out, err := encode(scaleToWidth(src, int(tier)), format)
		if err != nil {
			return fmt.Errorf("encode %d: %w", tier, err)
		}
		if err := r.store.WriteVariant(f.LocalPath, tier, out); err != nil {
			return fmt.Errorf("write %d: %w", tier, err)
		}
	}
	r.logger.Infow("thumbnails generated", "file_id", f.ID, "format", format)
	return nil
}

// scaleToWidth масштабирует изображение до ширины width с сохранением пропорций.
func scaleToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
