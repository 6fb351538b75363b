package endpoint

import (
	"errors"
	"fmt"

	"github.com/ariebrainware/healthassist/model"
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Me godoc
// @Summary      Current user
// @Description  Return the profile of the logged-in user
// @Tags         User
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=model.UserProfile} "Profile"
// @Failure      401 {object} util.APIResponse "User not logged in"
// @Failure      404 {object} util.APIResponse "User not found"
// @Router       /me [get]
func Me(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := currentUserOrRespond(c, db)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User retrieved", Data: user})
}

// DeleteAccount godoc
// @Summary      Delete account
// @Description  Permanently delete the logged-in user together with their health records and sessions
// @Tags         User
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Account deleted"
// @Failure      401 {object} util.APIResponse "User not logged in"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /me [delete]
func DeleteAccount(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := currentUserOrRespond(c, db)
	if !ok {
		return
	}

	if err := model.DeleteUserProfile(db, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete account", Err: err})
		return
	}
	_ = util.InvalidateUserSessions(c.Request.Context(), user.ID)

	ci := clientInfoFrom(c)
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventAccountDeleted,
		UserID:    fmt.Sprintf("%d", user.ID),
		Username:  user.Username,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "Account and health records deleted",
	})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Account deleted"})
}
