package timesheet

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	tscore "tempora.io/tempora/timesheet/core"
	"tempora.io/tempora/timesheet/model"
	web "tempora.io/tempora/web/common"
	"tempora.io/tempora/web/middlewares"
)

type SubmitWeekDTO struct {
	TimesheetIDs []int32 `json:"timesheetIds" binding:"required,min=1"`
}

func (ep *Endpoint) Submit(c *gin.Context) {
	var dto SubmitWeekDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	userID := middlewares.IdentityID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("no identity in token"))
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	msg, err := tscore.SubmitWeek(db, userID, dto.TimesheetIDs)
	if err != nil {
		c.JSON(httpStatusFor(err), web.NewErrorResponse(err.Error()))
		return
	}

	// notification is best-effort; the submit already happened
	var first model.Timesheet
	if err := db.First(&first, dto.TimesheetIDs[0]).Error; err == nil {
		tscore.NotifyWeekSubmitted(c.Request.Context(), db, ep.mailer, ep.users, ep.projects, userID, first.WeekID)
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"message": msg}))
}

func (ep *Endpoint) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	var ts model.Timesheet
	if err := db.Preload("Entries").Preload("Reviews").Preload("Week").First(&ts, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, web.NewErrorResponse("Timesheet not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(ts))
}
