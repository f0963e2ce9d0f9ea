package models

import "time"

// User represents a registered account. Passwords are stored as bcrypt hashes
// only and are excluded from every JSON projection.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:WriterID" json:"-"`
	Comments  []Comment `gorm:"foreignKey:WriterID" json:"-"`
}
