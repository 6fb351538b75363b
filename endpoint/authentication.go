package endpoint

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariebrainware/healthassist/middleware"
	"github.com/ariebrainware/healthassist/model"
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

type RegisterRequest struct {
	Username   string  `json:"username" binding:"required,max=150" example:"asha"`
	Email      string  `json:"email" binding:"required,email" example:"asha@example.com"`
	Password   string  `json:"password" binding:"required,max=128" example:"s3cret-pass"`
	Phone      string  `json:"phone" binding:"required,max=20" example:"9876543210"`
	Address    string  `json:"address" example:"Ongole, Andhra Pradesh"`
	Age        *int    `json:"age" binding:"required,gte=0" example:"29"`
	Gender     string  `json:"gender" binding:"required,max=10" example:"female"`
	BloodGroup string  `json:"blood_group" binding:"required,max=5" example:"O+"`
	Height     float64 `json:"height" binding:"required,gt=0" example:"162.5"`
	Weight     float64 `json:"weight" binding:"required,gt=0" example:"58"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"asha"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

type LoginResponse struct {
	User  model.UserProfile `json:"user"`
	Token string            `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Register godoc
// @Summary      Register a user
// @Description  Create a user profile. Address is optional; consultations fall back to a default city without it.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Profile"
// @Success      201 {object} util.APIResponse{data=model.UserProfile} "Profile created"
// @Failure      400 {object} util.APIResponse{data=util.ValidationErrors} "Validation failed"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /register [post]
func Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSONOrRespond(c, &req, "Invalid registration data") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if !ensureAccountAvailable(c, db, req.Username, req.Email) {
		return
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}

	user := model.UserProfile{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hashed,
		Phone:      req.Phone,
		Address:    util.NormalizeName(req.Address),
		Age:        *req.Age,
		Gender:     req.Gender,
		BloodGroup: req.BloodGroup,
		Height:     req.Height,
		Weight:     req.Weight,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration.
			if ensureAccountAvailable(c, db, req.Username, req.Email) {
				util.CallValidationError(c, "Invalid registration data", util.ValidationErrors{
					"username": "user profile with this username or email already exists.",
				})
			}
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create user profile", Err: err})
		return
	}

	ci := clientInfoFrom(c)
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventRegisterSuccess,
		UserID:    fmt.Sprintf("%d", user.ID),
		Username:  user.Username,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "User registered",
	})
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "User registered", Data: user})
}

func ensureAccountAvailable(c *gin.Context, db *gorm.DB, username, email string) bool {
	errs := util.ValidationErrors{}

	taken, err := model.UsernameTaken(db, username)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return false
	}
	if taken {
		errs["username"] = "user profile with this username already exists."
	}

	taken, err = model.EmailTaken(db, email)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return false
	}
	if taken {
		errs["email"] = "user profile with this email already exists."
	}

	if len(errs) > 0 {
		util.CallValidationError(c, "Invalid registration data", errs)
		return false
	}
	return true
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with username and password and open a session
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid username or password"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ci := clientInfoFrom(c)
	user, ok := loadUserForLogin(c, db, req.Username, ci)
	if !ok {
		return
	}
	if !verifyPasswordOrRespond(c, user, req.Password, ci) {
		return
	}

	expires := time.Now().Add(sessionTTL)
	token, err := createSessionToken(user, expires)
	if err != nil {
		util.LogLoginFailure(user.Username, ci.IP, ci.Agent, "token generation failed")
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	session, err := recordSession(db, SessionInfo{UserID: user.ID, Token: token, Client: ci, Expires: expires})
	if err != nil {
		util.LogLoginFailure(user.Username, ci.IP, ci.Agent, "session creation failed")
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to record session", Err: err})
		return
	}

	// The database row stays authoritative when the cache write fails.
	if err := util.CacheSession(c.Request.Context(), user.ID, token, time.Until(session.ExpiresAt)); err != nil {
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventSuspiciousActivity,
			UserID:    fmt.Sprintf("%d", user.ID),
			IP:        ci.IP,
			Message:   fmt.Sprintf("Failed to cache session: %v", err),
		})
	}

	util.LogLoginSuccess(user.ID, user.Username, ci.IP, ci.Agent)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Login successful", Data: LoginResponse{User: user, Token: token}})
}

func loadUserForLogin(c *gin.Context, db *gorm.DB, username string, ci clientInfo) (model.UserProfile, bool) {
	user, err := model.FindUserProfileByUsername(db, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.LogLoginFailure(username, ci.IP, ci.Agent, "user not found")
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid username", Err: fmt.Errorf("user not found")})
		return model.UserProfile{}, false
	}
	if err != nil {
		util.LogLoginFailure(username, ci.IP, ci.Agent, "database error")
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return model.UserProfile{}, false
	}
	return user, true
}

func verifyPasswordOrRespond(c *gin.Context, user model.UserProfile, plain string, ci clientInfo) bool {
	match, err := util.VerifyPassword(plain, user.Password)
	if err != nil {
		util.LogLoginFailure(user.Username, ci.IP, ci.Agent, "password verification error")
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return false
	}
	if !match {
		util.LogLoginFailure(user.Username, ci.IP, ci.Agent, "invalid password")
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid password", Err: fmt.Errorf("invalid password")})
		return false
	}
	return true
}

// createSessionToken signs an HS256 token. The jti keeps tokens unique when
// a user logs in more than once within the same second.
func createSessionToken(user model.UserProfile, expires time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(util.GetJWTSecretByte())
}

// SessionInfo groups parameters for creating a session.
type SessionInfo struct {
	UserID  uint
	Token   string
	Client  clientInfo
	Expires time.Time
}

func recordSession(db *gorm.DB, info SessionInfo) (model.Session, error) {
	session := model.Session{
		UserID:       info.UserID,
		SessionToken: info.Token,
		ExpiresAt:    info.Expires,
		ClientIP:     info.Client.IP,
		Browser:      info.Client.Agent,
	}
	err := db.Create(&session).Error
	return session, err
}

// Logout godoc
// @Summary      User logout
// @Description  Invalidate the caller's session token
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Logout successful"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /logout [delete]
func Logout(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	token := c.GetString(middleware.SessionTokenKey)
	userID, _ := middleware.GetUserID(c)

	if err := db.Unscoped().Where("session_token = ?", token).Delete(&model.Session{}).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete session", Err: err})
		return
	}
	_ = util.RemoveCachedSession(c.Request.Context(), userID, token)

	ci := clientInfoFrom(c)
	username := ""
	if user, err := model.FindUserProfile(db, userID); err == nil {
		username = user.Username
	}
	util.LogLogout(userID, username, ci.IP, ci.Agent)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Logout successful"})
}
