package model

import "time"

// User серверная модель пользователя. Пароль хранится только в виде bcrypt-хэша.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// UserView публичное представление пользователя.
type UserView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// View проецирует пользователя в публичное представление (без хэша пароля).
func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email}
}
