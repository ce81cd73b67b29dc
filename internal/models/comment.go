package models

import "time"

type Comment struct {
	ID        int        `gorm:"primaryKey" json:"id"`
	PostID    int        `gorm:"not null;index" json:"post_id"`
	ParentID  *int       `gorm:"index" json:"parent_id,omitempty"`
	Parent    *Comment   `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"not null" json:"email"`
	Text      string     `gorm:"size:5000;not null" json:"text"`
	Views     int        `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time  `json:"created_at"`
	Replies   []*Comment `gorm:"-" json:"replies,omitempty"`
}

type CreateCommentRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Text     string `json:"text" binding:"required,max=5000"`
	ParentID *int   `json:"parent_id"`
}
