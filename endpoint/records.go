package endpoint

import (
	"github.com/ariebrainware/healthassist/model"
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-gonic/gin"
)

const (
	defaultRecordsLimit = 20
	maxRecordsLimit     = 100
)

type listRecordsQuery struct {
	Limit  int `json:"limit" form:"limit" binding:"omitempty,gte=1,lte=100"`
	Offset int `json:"offset" form:"offset" binding:"omitempty,gte=0"`
}

type ListRecordsResponse struct {
	Records []model.HealthRecordResponse `json:"records"`
	Total   int64                        `json:"total" example:"3"`
	Limit   int                          `json:"limit" example:"20"`
	Offset  int                          `json:"offset" example:"0"`
}

// ListRecords godoc
// @Summary      List health records
// @Description  Return the logged-in user's consultation history, newest first
// @Tags         Consultation
// @Produce      json
// @Security     SessionToken
// @Param        limit  query int false "Page size (1-100)" default(20)
// @Param        offset query int false "Records to skip" default(0)
// @Success      200 {object} util.APIResponse{data=ListRecordsResponse} "Records"
// @Failure      400 {object} util.APIResponse "Invalid pagination"
// @Failure      401 {object} util.APIResponse "User not logged in"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /records [get]
func ListRecords(c *gin.Context) {
	var q listRecordsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if errs, ok := util.ValidationErrorsFrom(err); ok {
			util.CallValidationError(c, "Invalid pagination", errs)
			return
		}
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid pagination", Err: err})
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultRecordsLimit
	}
	if q.Limit > maxRecordsLimit {
		q.Limit = maxRecordsLimit
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := currentUserOrRespond(c, db)
	if !ok {
		return
	}

	records, total, err := model.ListHealthRecords(db, user.ID, q.Limit, q.Offset)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load health records", Err: err})
		return
	}

	out := make([]model.HealthRecordResponse, 0, len(records))
	for _, r := range records {
		r.User = &user
		out = append(out, r.Response())
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Health records retrieved",
		Data: ListRecordsResponse{Records: out, Total: total, Limit: q.Limit, Offset: q.Offset},
	})
}
