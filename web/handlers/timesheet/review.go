package timesheet

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	tscore "tempora.io/tempora/timesheet/core"
	"tempora.io/tempora/timesheet/model"
	web "tempora.io/tempora/web/common"
	"tempora.io/tempora/web/middlewares"
)

func pathID(c *gin.Context) (int32, bool) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return int32(id), true
}

type ReviewDTO struct {
	Decision model.ReviewDecision `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comment  string               `json:"comment"`
}

func (ep *Endpoint) Review(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var dto ReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	managerID := middlewares.IdentityID(c)
	if managerID == 0 {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("no identity in token"))
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	overall, err := tscore.ReviewTimesheet(db, ep.projects, managerID, id, dto.Decision, dto.Comment)
	if err != nil {
		c.JSON(httpStatusFor(err), web.NewErrorResponse(err.Error()))
		return
	}

	var ts model.Timesheet
	if err := db.First(&ts, id).Error; err == nil {
		tscore.NotifyDecision(c.Request.Context(), ep.mailer, ep.users, &ts, dto.Decision, dto.Comment)
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"overallStatus": overall}))
}

type BulkReviewDTO struct {
	TimesheetIDs []int32              `json:"timesheetIds" binding:"required,min=1"`
	Decision     model.ReviewDecision `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comment      string               `json:"comment"`
}

func (ep *Endpoint) ReviewBulk(c *gin.Context) {
	var dto BulkReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	managerID := middlewares.IdentityID(c)
	if managerID == 0 {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("no identity in token"))
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	msg, err := tscore.ReviewWeek(db, ep.projects, managerID, dto.TimesheetIDs, dto.Decision, dto.Comment)
	if err != nil {
		c.JSON(httpStatusFor(err), web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"message": msg}))
}

type UserReviewGroupDTO struct {
	UserID       int32                `json:"userId" binding:"required"`
	TimesheetIDs []int32              `json:"timesheetIds" binding:"required,min=1"`
	Decision     model.ReviewDecision `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comment      string               `json:"comment"`
}

type MultiUserReviewDTO struct {
	Groups []UserReviewGroupDTO `json:"groups" binding:"required,min=1,dive"`
}

func (ep *Endpoint) ReviewBulkMultiUser(c *gin.Context) {
	var dto MultiUserReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	managerID := middlewares.IdentityID(c)
	if managerID == 0 {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("no identity in token"))
		return
	}

	db, err := ep.dm.GetDB(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	groups := make([]tscore.UserReviewGroup, 0, len(dto.Groups))
	for _, g := range dto.Groups {
		groups = append(groups, tscore.UserReviewGroup{
			UserID:       g.UserID,
			TimesheetIDs: g.TimesheetIDs,
			Decision:     g.Decision,
			Comment:      g.Comment,
		})
	}

	summary := tscore.ReviewWeekForUsers(db, ep.projects, managerID, groups)
	c.JSON(http.StatusOK, web.NewSuccessResponse(summary))
}

// PendingReviews lists the submitted timesheets still waiting on the
// authenticated manager's decision.
func (ep *Endpoint) PendingReviews(c *gin.Context) {
	managerID := middlewares.IdentityID(c)
	if managerID == 0 {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("no identity in token"))
		return
	}

	var sheets []model.Timesheet
	err := ep.dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		sheets, err = tscore.PendingReviewSheets(db, ep.projects, managerID)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(sheets, int64(len(sheets))))
}
