package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrUnauthorized единый ответ на любую неудачу аутентификации.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound записи нет, она чужая или её содержимое пропало.
	ErrNotFound = errors.New("not found")
	// ErrFolderHasNoContent у папки нет содержимого.
	ErrFolderHasNoContent = errors.New("a folder doesn't have content")
	// ErrStorage не удалось записать содержимое на диск.
	ErrStorage = errors.New("storage write failed")
)

// ValidationError нарушение правила при создании; Msg отдаётся клиенту как есть.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var (
	ErrMissingName     = &ValidationError{Msg: "Missing name"}
	ErrMissingType     = &ValidationError{Msg: "Missing type"}
	ErrMissingData     = &ValidationError{Msg: "Missing data"}
	ErrParentNotFound  = &ValidationError{Msg: "Parent not found"}
	ErrParentNotFolder = &ValidationError{Msg: "Parent is not a folder"}
	ErrInvalidData     = &ValidationError{Msg: "Invalid data"}

	ErrMissingEmail    = &ValidationError{Msg: "Missing email"}
	ErrMissingPassword = &ValidationError{Msg: "Missing password"}
	ErrUserExists      = &ValidationError{Msg: "Already exist"}
)

// notFound сворачивает отсутствие записи в ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
