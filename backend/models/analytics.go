package models

import "time"

// CourseAnalytics summarizes the reviews and reservations of one course
// over a period.
type CourseAnalytics struct {
	CourseID           string      `json:"courseId"`
	From               time.Time   `json:"from"`
	To                 time.Time   `json:"to"`
	Reviews            int         `json:"reviews"`
	AverageRating      float64     `json:"averageRating"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
	Reservations       int         `json:"reservations"`
	Cancelled          int         `json:"cancelled"`
	SeatsReserved      int         `json:"seatsReserved"`
	Revenue            float64     `json:"revenue"`
}
