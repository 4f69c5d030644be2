package models

import "time"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID               string            `json:"id" validate:"required"`
	CourseID         string            `json:"courseId" validate:"required"`
	CourseTitle      string            `json:"courseTitle"`
	CourseInstructor string            `json:"courseInstructor"`
	CoursePrice      float64           `json:"coursePrice" validate:"gte=0"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Seats            int               `json:"seats" validate:"min=1,max=10"`
	SpecialRequests  string            `json:"specialRequests,omitempty"`
	TotalAmount      float64           `json:"totalAmount"`
	Date             time.Time         `json:"date"`
	Status           ReservationStatus `json:"status" validate:"oneof=confirmed cancelled"`
	UserEmail        string            `json:"userEmail"`
	UserID           string            `json:"userId,omitempty"`
}
