package timesheet

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tempora.io/tempora/core"
	"tempora.io/tempora/directory"
	tscore "tempora.io/tempora/timesheet/core"
)

type Endpoint struct {
	dm       *core.DatabaseManager
	projects directory.ProjectDirectory
	users    directory.UserDirectory
	holidays directory.HolidayDirectory
	mailer   tscore.Mailer
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, projects directory.ProjectDirectory, users directory.UserDirectory, holidays directory.HolidayDirectory, mailer tscore.Mailer) {
	endpoint := &Endpoint{dm: dm, projects: projects, users: users, holidays: holidays, mailer: mailer}

	r.GET("/timesheets/:id", endpoint.Get)
	r.POST("/timesheets/submit", endpoint.Submit)
	r.POST("/timesheets/:id/review", endpoint.Review)
	r.POST("/timesheets/review", endpoint.ReviewBulk)
	r.POST("/timesheets/review/users", endpoint.ReviewBulkMultiUser)
	r.GET("/reviews/pending", endpoint.PendingReviews)

	r.GET("/users/:id/timesheets", endpoint.SearchTimesheets)
	r.POST("/holidays", endpoint.CreateHoliday)

	r.GET("/weeks", endpoint.ListWeeks)
	r.POST("/weeks/generate", endpoint.GenerateWeeks)

	r.POST("/batch/holidays/run", endpoint.RunHolidayBatch)

	r.GET("/reports/monthly-review", endpoint.MonthlyReviewReport)
}

// httpStatusFor maps the engine's error taxonomy onto response codes.
func httpStatusFor(err error) int {
	var validationErr *tscore.ValidationError
	var stateErr *tscore.StateError
	var notFoundErr *tscore.NotFoundError

	switch {
	case errors.Is(err, tscore.ErrNotApprover):
		return http.StatusForbidden
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &stateErr):
		return http.StatusConflict
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
