package controllers

import (
	"cmp"
	"slices"

	"coursehub/backend/models"
	"coursehub/backend/session"
	"coursehub/backend/storage"
	"coursehub/backend/utils"
	"coursehub/backend/wizard"

	"github.com/gofiber/fiber/v2"
)

type ReviewsController struct {
	Gateway *storage.Gateway
	Session *session.Session
	Wizards *wizard.Registry
}

func NewReviewsController(gw *storage.Gateway, sess *session.Session, wizards *wizard.Registry) *ReviewsController {
	return &ReviewsController{Gateway: gw, Session: sess, Wizards: wizards}
}

// GetReviews lists reviews, newest first, optionally for one course.
func (rc *ReviewsController) GetReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if courseID := c.Query("course_id"); courseID != "" {
		reviews = rc.Gateway.ReviewsByCourse(courseID)
	} else {
		reviews = rc.Gateway.Reviews()
	}
	return utils.Success(c, fiber.StatusOK, newestFirst(reviews))
}

// StartReview godoc
// @Summary Start a review
// @Description Starts the review form, optionally pre-filled from the body
// @Tags reviews
// @Accept json
// @Produce json
// @Param values body map[string]string false "courseId, rating, title, text"
// @Success 201 {object} utils.SuccessResponse
// @Router /reviews [post]
func (rc *ReviewsController) StartReview(c *fiber.Ctx) error {
	values := wizard.Values{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&values); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
	}

	def, initial := wizard.Review(rc.Session, values["courseId"], 0)
	for field, value := range values {
		initial[field] = value
	}
	w := wizard.New(def, initial)
	id := rc.Wizards.Start(w.Flow())

	return utils.Created(c, wizardView{ID: id, State: w.State()})
}

func newestFirst(reviews []models.Review) []models.Review {
	out := slices.Clone(reviews)
	if out == nil {
		out = []models.Review{}
	}
	slices.SortStableFunc(out, func(a, b models.Review) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})
	return out
}
