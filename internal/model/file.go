package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// FileType вид записи файлового дерева.
type FileType string

const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// Valid сообщает, является ли тип одним из поддерживаемых.
func (t FileType) Valid() bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}

// File серверная модель файла или папки.
type File struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id, не меняется после создания

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name     string   `gorm:"not null"`
	Type     FileType `gorm:"type:varchar(16);not null"`
	ParentID *string  `gorm:"type:uuid;index"` // nil — корень
	IsPublic bool     `gorm:"not null;default:false"`

	// LocalPath локатор содержимого на диске. У папок всегда пустой.
	LocalPath string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// IsFolder сообщает, является ли запись папкой.
func (f *File) IsFolder() bool {
	return f.Type == TypeFolder
}

// Parent возвращает ссылку на родителя.
func (f *File) Parent() ParentRef {
	return ParentFromColumn(f.ParentID)
}

// FileView уходит наружу вместо File. Локатор содержимого сюда не попадает никогда.
type FileView struct {
	ID       string    `json:"id"`
	UserID   int64     `json:"userId"`
	Name     string    `json:"name"`
	Type     FileType  `json:"type"`
	IsPublic bool      `json:"isPublic"`
	ParentID ParentRef `json:"parentId"`
}

// View проецирует запись в публичное представление.
func (f *File) View() FileView {
	return FileView{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: f.Parent(),
	}
}

// Views проецирует список записей.
func Views(files []File) []FileView {
	out := make([]FileView, 0, len(files))
	for i := range files {
		out = append(out, files[i].View())
	}
	return out
}

// ParentRef ссылка на родителя: либо корень, либо id существующей папки.
// Нулевое значение — корень.
type ParentRef struct {
	id string
}

// NoParent корень дерева.
func NoParent() ParentRef { return ParentRef{} }

// ParentOf ссылка на конкретную папку. Пустой id и "0" трактуются как корень.
func ParentOf(id string) ParentRef {
	if id == "0" {
		return ParentRef{}
	}
	return ParentRef{id: id}
}

// ParentFromColumn строит ссылку из значения колонки parent_id.
func ParentFromColumn(col *string) ParentRef {
	if col == nil {
		return ParentRef{}
	}
	return ParentOf(*col)
}

// IsRoot сообщает, что родителя нет.
func (p ParentRef) IsRoot() bool { return p.id == "" }

// ID возвращает id родителя (пустая строка для корня).
func (p ParentRef) ID() string { return p.id }

// Column возвращает значение для колонки parent_id.
func (p ParentRef) Column() *string {
	if p.IsRoot() {
		return nil
	}
	id := p.id
	return &id
}

// MarshalJSON: корень отдаётся как 0, как и в исходном API.
func (p ParentRef) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(p.id)
}

// UnmarshalJSON принимает null, 0, "0", "" как корень, строку или число — как id.
func (p *ParentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = NoParent()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = ParentOf(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if v, err := n.Int64(); err == nil && v == 0 {
		*p = NoParent()
		return nil
	}
	*p = ParentOf(n.String())
	return nil
}
