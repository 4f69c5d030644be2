package storage

import (
	"strings"

	"coursehub/backend/models"
)

func (g *Gateway) Reviews() []models.Review {
	return readList[models.Review](g, KeyReviews)
}

func (g *Gateway) ReviewsByCourse(courseID string) []models.Review {
	var out []models.Review
	for _, r := range g.Reviews() {
		if r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out
}

func (g *Gateway) ReviewsByAuthor(email string) []models.Review {
	var out []models.Review
	for _, r := range g.Reviews() {
		if strings.EqualFold(r.AuthorEmail, email) {
			out = append(out, r)
		}
	}
	return out
}

// AddReview appends a review of an existing course and then recomputes that
// course's rating. When the review is stored but the recomputation write
// fails, the stored review is returned together with the error.
func (g *Gateway) AddReview(review models.Review) (models.Review, error) {
	if _, err := g.CourseByID(review.CourseID); err != nil {
		return models.Review{}, err
	}
	if review.ID == "" {
		review.ID = g.newID()
	}
	if review.Date.IsZero() {
		review.Date = g.now().UTC()
	}
	if err := g.check(review); err != nil {
		return models.Review{}, err
	}

	reviews := append(g.Reviews(), review)
	if err := g.write("addReview", KeyReviews, "Review submission failed", reviews); err != nil {
		return models.Review{}, err
	}

	if _, err := g.RecomputeRating(review.CourseID); err != nil {
		return review, err
	}
	return review, nil
}
