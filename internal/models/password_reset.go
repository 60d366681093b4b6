package models

import "gorm.io/gorm"

// PasswordReset holds a single-use reset token. A user has at most one
// live row; requesting a new reset replaces the previous one. Tokens
// expire two minutes after CreatedAt and expired rows are deleted on use.
type PasswordReset struct {
	gorm.Model

	UserID uint   `gorm:"not null;index"`
	Token  string `gorm:"uniqueIndex;not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
