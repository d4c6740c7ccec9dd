package timesheet

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tempora.io/tempora/timesheet/model"
	web "tempora.io/tempora/web/common"
)

type CreateHolidayDTO struct {
	UserID                  int32        `json:"userId" binding:"required"`
	Date                    web.DateOnly `json:"date" binding:"required"`
	Name                    string       `json:"name" binding:"required"`
	Description             string       `json:"description"`
	SubmitTimesheetRequired bool         `json:"submitTimesheetRequired"`
}

// CreateHoliday records an ad-hoc holiday/leave day for a user, outside the
// workbook import. Rows are tagged with source API so the importer's MASTER
// reconciliation leaves them alone.
func (ep *Endpoint) CreateHoliday(c *gin.Context) {
	var dto CreateHolidayDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}
	if dto.Date.IsZero() {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Field 'date' is required"))
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	day := model.HolidayDay{
		UserID:                  dto.UserID,
		Date:                    dto.Date.Time,
		Name:                    dto.Name,
		Description:             dto.Description,
		SubmitTimesheetRequired: dto.SubmitTimesheetRequired,
		Source:                  "API",
	}
	if err := db.Create(&day).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(day))
}

// SearchTimesheets lists a user's timesheets for one month, newest first.
func (ep *Endpoint) SearchTimesheets(c *gin.Context) {
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	userID, ok := pathID(c)
	if !ok {
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	scope := func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN week_infos ON week_infos.id = timesheets.week_id").
			Where("timesheets.user_id = ? AND week_infos.year = ? AND week_infos.month = ?", userID, year, month)
	}

	var total int64
	if err := scope(db.Model(&model.Timesheet{})).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	var sheets []model.Timesheet
	if err := scope(db).Preload("Entries").Preload("Reviews").
		Order("timesheets.date DESC").
		Find(&sheets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(sheets, total))
}
