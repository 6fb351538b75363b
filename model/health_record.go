package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrUnknownUser is returned when a record references a profile that does not exist.
	ErrUnknownUser = errors.New("health record references an unknown user")
	// ErrRecordImmutable is returned on any attempt to update a stored health record.
	ErrRecordImmutable = errors.New("health records are immutable")
)

// HealthRecord is one consultation: the user's message and the generated advice.
// @Description Health consultation record
type HealthRecord struct {
	ID          uint           `json:"id" gorm:"primaryKey" example:"1"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	UserID      *uint          `json:"user_id" gorm:"column:user_id;index"`
	User        *UserProfile   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Message     string         `json:"message" gorm:"column:message;type:text" example:"Fever and sore throat since yesterday"`
	Image       *string        `json:"image,omitempty" gorm:"column:image;type:varchar(255)"`
	BotResponse *string        `json:"bot_response" gorm:"column:bot_response;type:text"`
}

// BeforeCreate enforces that an owned record points to an existing profile.
func (r *HealthRecord) BeforeCreate(tx *gorm.DB) error {
	if r.UserID == nil {
		return nil
	}
	var count int64
	if err := tx.Session(&gorm.Session{NewDB: true}).Model(&UserProfile{}).Where("id = ?", *r.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownUser
	}
	return nil
}

// BeforeUpdate rejects updates; records are written once.
func (r *HealthRecord) BeforeUpdate(tx *gorm.DB) error {
	return ErrRecordImmutable
}

// CreateHealthRecord persists a new consultation record for the user.
func CreateHealthRecord(db *gorm.DB, user *UserProfile, message, botResponse string) (HealthRecord, error) {
	record := HealthRecord{
		Message:     message,
		BotResponse: &botResponse,
	}
	if user != nil {
		record.UserID = &user.ID
	}
	if err := db.Omit("User").Create(&record).Error; err != nil {
		return HealthRecord{}, err
	}
	record.User = user
	return record, nil
}

// ListHealthRecords returns the user's records, newest first.
func ListHealthRecords(db *gorm.DB, userID uint, limit, offset int) ([]HealthRecord, int64, error) {
	var total int64
	q := db.Model(&HealthRecord{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []HealthRecord
	err := db.Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, total, err
}

// HealthRecordResponse is the serialized form of a record returned to clients.
// BotReply mirrors BotResponse for clients that read the older field name.
type HealthRecordResponse struct {
	ID          uint         `json:"id" example:"1"`
	User        *UserProfile `json:"user"`
	Message     string       `json:"message" example:"Fever and sore throat since yesterday"`
	BotResponse string       `json:"bot_response"`
	BotReply    string       `json:"bot_reply"`
}

// Response converts the record to its client representation.
func (r HealthRecord) Response() HealthRecordResponse {
	var reply string
	if r.BotResponse != nil {
		reply = *r.BotResponse
	}
	return HealthRecordResponse{
		ID:          r.ID,
		User:        r.User,
		Message:     r.Message,
		BotResponse: reply,
		BotReply:    reply,
	}
}
