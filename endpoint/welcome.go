package endpoint

import (
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-gonic/gin"
)

// WelcomeMessage is returned by the liveness endpoint.
const WelcomeMessage = "👋 Welcome to HealthAssist API"

// Welcome godoc
// @Summary      Liveness
// @Description  Returns a static welcome message
// @Tags         Health
// @Produce      json
// @Success      200 {object} util.APIResponse "Welcome"
// @Router       / [get]
func Welcome(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  WelcomeMessage,
		Data: map[string]string{"message": WelcomeMessage},
	})
}
