package storage

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"coursehub/backend/models"
)

// Courses returns the catalog in stored order.
func (g *Gateway) Courses() []models.Course {
	return readList[models.Course](g, KeyCourses)
}

func (g *Gateway) SaveCourses(courses []models.Course) error {
	return g.write("saveCourses", KeyCourses, "Could not save courses", courses)
}

func (g *Gateway) CourseByID(id string) (*models.Course, error) {
	for _, c := range g.Courses() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("course %s: %w", id, ErrNotFound)
}

// RecomputeRating sets the course rating to the mean of its review ratings,
// rounded to one decimal. A course without reviews keeps its rating.
func (g *Gateway) RecomputeRating(courseID string) (*models.Course, error) {
	courses := g.Courses()
	idx := -1
	for i := range courses {
		if courses[i].ID == courseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
	}

	reviews := g.ReviewsByCourse(courseID)
	if len(reviews) == 0 {
		return &courses[idx], nil
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	courses[idx].Rating = roundRating(float64(total) / float64(len(reviews)))

	if err := g.SaveCourses(courses); err != nil {
		return nil, err
	}
	g.log.Debug("course rating recomputed",
		zap.String("course_id", courseID),
		zap.Int("reviews", len(reviews)),
		zap.Float64("rating", courses[idx].Rating))
	return &courses[idx], nil
}

func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
