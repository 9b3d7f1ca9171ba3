// Package storage хранит содержимое файлов на диске в плоском каталоге со случайными именами.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound содержимого по локатору нет.
var ErrNotFound = errors.New("storage: content not found")

// Disk файловое хранилище содержимого в каталоге root.
type Disk struct {
	root string
}

// NewDisk создаёт хранилище. Каталог создаётся лениво в EnsureRoot.
func NewDisk(root string) *Disk {
	return &Disk{root: root}
}

// Root возвращает корневой каталог хранилища.
func (d *Disk) Root() string { return d.root }

// EnsureRoot создаёт корневой каталог, если его нет. Идемпотентна.
func (d *Disk) EnsureRoot() error {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("create storage root %q: %w", d.root, err)
	}
	return nil
}

// Write сохраняет байты под новым случайным именем и возвращает локатор.
// Имя на диске не зависит от пользовательского имени файла.
// При ошибке частично записанный файл удаляется.
func (d *Disk) Write(data []byte) (string, error) {
	locator := filepath.Join(d.root, uuid.NewString())
	if err := writeExclusive(locator, data); err != nil {
		return "", err
	}
	return locator, nil
}

// WriteVariant сохраняет производный файл рядом с исходным.
func (d *Disk) WriteVariant(locator string, tier Tier, data []byte) error {
	return os.WriteFile(VariantLocator(locator, tier), data, 0o644)
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create content file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write content file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close content file: %w", err)
	}
	return nil
}

// Remove удаляет содержимое по локатору. Отсутствие файла ошибкой не считается.
func (d *Disk) Remove(locator string) error {
	if err := os.Remove(locator); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Exists сообщает, что по локатору лежит обычный файл.
func (d *Disk) Exists(locator string) bool {
	if locator == "" {
		return false
	}
	st, err := os.Stat(locator)
	return err == nil && st.Mode().IsRegular()
}

// Read читает исходное содержимое или его вариант нужного размера.
func (d *Disk) Read(locator string, tier Tier) ([]byte, error) {
	if locator == "" {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(VariantLocator(locator, tier))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
