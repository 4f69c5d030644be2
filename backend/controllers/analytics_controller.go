package controllers

import (
	"time"

	"coursehub/backend/catalog"
	"coursehub/backend/storage"
	"coursehub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type AnalyticsController struct {
	Gateway *storage.Gateway
}

func NewAnalyticsController(gw *storage.Gateway) *AnalyticsController {
	return &AnalyticsController{Gateway: gw}
}

// GetCourseAnalytics returns review and reservation figures for a course.
// The period defaults to the last year up to now.
func (ac *AnalyticsController) GetCourseAnalytics(c *fiber.Ctx) error {
	course, err := ac.Gateway.CourseByID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	now := ac.Gateway.Now()
	start, end := now.AddDate(-1, 0, 0), now

	if v := c.Query("start_date"); v != "" {
		if start, err = time.Parse(dateLayout, v); err != nil {
			return utils.BadRequest(c, "Invalid start_date format. Use YYYY-MM-DD")
		}
	}
	if v := c.Query("end_date"); v != "" {
		if end, err = time.Parse(dateLayout, v); err != nil {
			return utils.BadRequest(c, "Invalid end_date format. Use YYYY-MM-DD")
		}
		// include the whole end day
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return utils.BadRequest(c, "end_date must not be before start_date")
	}

	return utils.Success(c, fiber.StatusOK, catalog.Analytics(
		course.ID,
		ac.Gateway.ReviewsByCourse(course.ID),
		ac.Gateway.Reservations(),
		start, end,
	))
}
