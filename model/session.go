package model

import (
	"time"

	"gorm.io/gorm"
)

// Session is a login session issued by POST /login.
type Session struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"column:user_id;index;not null"`
	SessionToken string    `json:"session_token" gorm:"column:session_token;type:varchar(512);uniqueIndex;not null"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"column:expires_at"`
	ClientIP     string    `json:"client_ip" gorm:"column:client_ip;type:varchar(45)"`
	Browser      string    `json:"browser" gorm:"column:browser;type:varchar(512)"`
}

// FindActiveSession returns the unexpired session for the token.
func FindActiveSession(db *gorm.DB, token string, now time.Time) (Session, error) {
	var session Session
	err := db.Where("session_token = ? AND expires_at > ?", token, now).First(&session).Error
	return session, err
}
