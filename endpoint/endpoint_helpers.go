package endpoint

import (
	"errors"
	"fmt"
	"io"

	"github.com/ariebrainware/healthassist/middleware"
	"github.com/ariebrainware/healthassist/model"
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type clientInfo struct {
	IP    string
	Agent string
}

func clientInfoFrom(c *gin.Context) clientInfo {
	return clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}
}

// bindJSONOrRespond binds the body into dst. Field validation failures are
// reported per field; anything else is a malformed payload.
func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if errs, ok := util.ValidationErrorsFrom(err); ok {
		util.CallValidationError(c, msg, errs)
		return false
	}
	if errors.Is(err, io.EOF) {
		err = fmt.Errorf("request body is empty")
	}
	util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
	return false
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

// currentUserOrRespond loads the profile of the authenticated caller.
func currentUserOrRespond(c *gin.Context, db *gorm.DB) (model.UserProfile, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "User not logged in", Err: fmt.Errorf("missing user in context")})
		return model.UserProfile{}, false
	}
	user, err := model.FindUserProfile(db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
		return model.UserProfile{}, false
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return model.UserProfile{}, false
	}
	return user, true
}
