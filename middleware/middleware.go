package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/ariebrainware/healthassist/model"
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	dbContextKey = "db"
	// UserIDKey holds the authenticated user's ID (uint).
	UserIDKey = "user_id"
	// SessionTokenKey holds the raw session token of the authenticated request.
	SessionTokenKey = "session_token"
	// SessionHeader carries the token issued by POST /login.
	SessionHeader = "session-token"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", SessionHeader}
	cfg.MaxAge = 24 * time.Hour
	return cors.New(cfg)
}

// DatabaseMiddleware makes db available to handlers through GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the request's database handle, or nil when none was set.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbContextKey)
	if !ok {
		return nil
	}
	db, _ := v.(*gorm.DB)
	return db
}

// GetUserID returns the authenticated user's ID set by ValidateLoginToken.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// ValidateLoginToken requires a valid session-token header. The Redis session
// cache is consulted first; on a miss the sessions table is.
func ValidateLoginToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionHeader)
		if token == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Unauthorized",
				Err: errors.New("session token is required"),
			})
			c.Abort()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database not available",
				Err: errors.New("database connection missing from context"),
			})
			c.Abort()
			return
		}

		if userID, ok := util.LookupCachedSession(c.Request.Context(), token); ok {
			setIdentity(c, userID, token)
			c.Next()
			return
		}

		session, err := model.FindActiveSession(db, token, time.Now())
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				util.CallServerError(c, util.APIErrorParams{
					Msg: "Failed to validate session",
					Err: err,
				})
				c.Abort()
				return
			}
			util.LogSecurityEvent(util.SecurityEvent{
				EventType: util.EventUnauthorizedAccess,
				IP:        c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
				Message:   "Invalid or expired session token on " + c.Request.URL.Path,
			})
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Unauthorized",
				Err: errors.New("invalid or expired session token"),
			})
			c.Abort()
			return
		}

		setIdentity(c, session.UserID, token)
		c.Next()
	}
}

func setIdentity(c *gin.Context, userID uint, token string) {
	c.Set(UserIDKey, userID)
	c.Set(SessionTokenKey, token)
}
