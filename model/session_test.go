package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFindActiveSession(t *testing.T) {
	db := setupTestDB(t, "session_active", &Session{})
	now := time.Now()

	require.NoError(t, db.Create(&Session{UserID: 1, SessionToken: "live", ExpiresAt: now.Add(time.Hour)}).Error)
	require.NoError(t, db.Create(&Session{UserID: 1, SessionToken: "stale", ExpiresAt: now.Add(-time.Minute)}).Error)

	session, err := FindActiveSession(db, "live", now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), session.UserID)

	_, err = FindActiveSession(db, "stale", now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = FindActiveSession(db, "missing", now)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSession_UniqueToken(t *testing.T) {
	db := setupTestDB(t, "session_unique", &Session{})
	require.NoError(t, db.Create(&Session{UserID: 1, SessionToken: "same"}).Error)
	assert.Error(t, db.Create(&Session{UserID: 2, SessionToken: "same"}).Error)
}
