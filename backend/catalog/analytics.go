package catalog

import (
	"math"
	"time"

	"coursehub/backend/models"
)

// Analytics aggregates the reviews and reservations of courseID dated
// within [from, to]. Seats and revenue count confirmed reservations only.
func Analytics(courseID string, reviews []models.Review, reservations []models.Reservation, from, to time.Time) models.CourseAnalytics {
	a := models.CourseAnalytics{
		CourseID:           courseID,
		From:               from,
		To:                 to,
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	within := func(t time.Time) bool {
		return !t.Before(from) && !t.After(to)
	}

	sum := 0
	for _, r := range reviews {
		if r.CourseID != courseID || !within(r.Date) {
			continue
		}
		a.Reviews++
		a.RatingDistribution[r.Rating]++
		sum += r.Rating
	}
	if a.Reviews > 0 {
		a.AverageRating = math.Round(float64(sum)/float64(a.Reviews)*10) / 10
	}

	for _, r := range reservations {
		if r.CourseID != courseID || !within(r.Date) {
			continue
		}
		a.Reservations++
		if r.Status == models.ReservationCancelled {
			a.Cancelled++
			continue
		}
		a.SeatsReserved += r.Seats
		a.Revenue += r.TotalAmount
	}
	return a
}
