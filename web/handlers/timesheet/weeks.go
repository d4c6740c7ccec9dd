package timesheet

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	tscore "tempora.io/tempora/timesheet/core"
	"tempora.io/tempora/timesheet/report"
	web "tempora.io/tempora/web/common"
)

func yearMonthQuery(c *gin.Context) (int, int, bool) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if val, err := strconv.Atoi(c.Query("year")); err == nil {
		year = val
	}
	if val, err := strconv.Atoi(c.Query("month")); err == nil {
		month = val
	}
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid month"))
		return 0, 0, false
	}
	return year, month, true
}

func (ep *Endpoint) ListWeeks(c *gin.Context) {
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	weeks, err := tscore.WeeksForMonth(db, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(weeks))
}

type GenerateWeeksDTO struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

func (ep *Endpoint) GenerateWeeks(c *gin.Context) {
	var dto GenerateWeeksDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	if err := tscore.GenerateWeeksForMonth(db, dto.Year, dto.Month); err != nil {
		c.JSON(httpStatusFor(err), web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

// RunHolidayBatch triggers the monthly holiday batch on demand, e.g. after
// a late calendar import. The scheduled run stays the normal path.
func (ep *Endpoint) RunHolidayBatch(c *gin.Context) {
	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	stats, err := tscore.RunMonthlyHolidayBatch(db, ep.users, ep.holidays, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(stats))
}

func (ep *Endpoint) MonthlyReviewReport(c *gin.Context) {
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	buf, err := report.MonthlyReviewWorkbook(db, ep.users, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("timesheet-review-%d-%02d.xlsx", year, month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
