package model

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile represents a registered user with contact and medical metadata
// @Description User profile information
type UserProfile struct {
	ID         uint           `json:"id" gorm:"primaryKey" example:"1"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	Username   string         `json:"username" gorm:"column:username;type:varchar(150);uniqueIndex;not null" example:"asha"`
	Email      string         `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex;not null" example:"asha@example.com"`
	Password   string         `json:"-" gorm:"column:password;type:varchar(255);not null"`
	Phone      string         `json:"phone" gorm:"column:phone;type:varchar(20)" example:"9876543210"`
	Address    string         `json:"address" gorm:"column:address;type:text" example:"Ongole, Andhra Pradesh"`
	Age        int            `json:"age" gorm:"column:age" example:"29"`
	Gender     string         `json:"gender" gorm:"column:gender;type:varchar(10)" example:"female"`
	BloodGroup string         `json:"blood_group" gorm:"column:blood_group;type:varchar(5)" example:"O+"`
	Height     float64        `json:"height" gorm:"column:height" example:"162.5"`
	Weight     float64        `json:"weight" gorm:"column:weight" example:"58"`
}

// FindUserProfile loads a profile by primary key.
func FindUserProfile(db *gorm.DB, id uint) (UserProfile, error) {
	var user UserProfile
	err := db.First(&user, id).Error
	return user, err
}

// FindUserProfileByUsername loads a profile by its unique username.
func FindUserProfileByUsername(db *gorm.DB, username string) (UserProfile, error) {
	var user UserProfile
	err := db.Where("username = ?", username).First(&user).Error
	return user, err
}

// UsernameTaken reports whether a profile already uses the username.
func UsernameTaken(db *gorm.DB, username string) (bool, error) {
	return exists(db.Model(&UserProfile{}).Where("username = ?", username))
}

// EmailTaken reports whether a profile already uses the email.
func EmailTaken(db *gorm.DB, email string) (bool, error) {
	return exists(db.Model(&UserProfile{}).Where("LOWER(email) = LOWER(?)", email))
}

func exists(q *gorm.DB) (bool, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteUserProfile removes a profile together with its health records and sessions.
// Rows are removed permanently so the unique username and email become available again.
func DeleteUserProfile(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&HealthRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&Session{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&UserProfile{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
