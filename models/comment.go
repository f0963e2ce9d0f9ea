package models

import "time"

// Comment is a reply to a post. PostID is immutable after creation.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	WriterID  uint      `gorm:"index;not null" json:"writer_id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Writer    User      `gorm:"foreignKey:WriterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"writer"`
}
