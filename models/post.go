package models

import "time"

// Post is a piece of content authored by a user. WriterID is set once from the
// authenticated caller at creation and never from client input.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WriterID  uint      `gorm:"index;not null" json:"writer_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Writer    User      `gorm:"foreignKey:WriterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"writer"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}
