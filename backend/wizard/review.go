package wizard

import (
	"strings"
	"time"

	"coursehub/backend/models"
	"coursehub/backend/session"
	"coursehub/backend/validation"
)

const ReviewName = "review"

const (
	anonymousEmail = "anonymous@example.com"
	anonymousName  = "Anonymous Student"
)

// Review builds the single-step review form. The author comes from the
// signed-in user or falls back to an anonymous student.
func Review(sess *session.Session, courseID string, delay time.Duration) (Definition[models.Review], Values) {
	def := Definition[models.Review]{
		Name: ReviewName,
		Steps: []Step{{
			Title:    "Write a Review",
			Fields:   []string{"courseId", "rating", "title", "text"},
			Validate: validateReview,
		}},
		Delay: delay,
		Complete: func(v Values) (models.Review, error) {
			rating, _ := validation.ParseInt(v["rating"])
			r := models.Review{
				CourseID:    strings.TrimSpace(v["courseId"]),
				Rating:      rating,
				Title:       strings.TrimSpace(v["title"]),
				Text:        strings.TrimSpace(v["text"]),
				AuthorEmail: anonymousEmail,
				AuthorName:  anonymousName,
			}
			if u := sess.Current(); u != nil {
				r.AuthorEmail = u.Email
				r.AuthorName = u.FullName()
			}
			return sess.Gateway().AddReview(r)
		},
	}
	return def, Values{"courseId": courseID}
}

func validateReview(v Values) validation.Errors {
	errs := validation.Errors{}
	errs.Check(validation.CourseSelection(v["courseId"]), "courseId", "Please select a course")

	n, ok := validation.ParseInt(v["rating"])
	errs.Check(ok && validation.Rating(n), "rating", "Please provide a rating")

	if errs.Required(v["title"], "title", "Please provide a review title") {
		errs.Check(validation.ReviewTitle(v["title"]), "title", "Title must be between 3 and 100 characters")
	}
	if errs.Required(v["text"], "text", "Please write your review") {
		errs.Check(validation.ReviewText(v["text"]), "text", "Review must be between 10 and 1000 characters")
	}
	return errs
}
