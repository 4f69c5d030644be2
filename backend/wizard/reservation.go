package wizard

import (
	"strings"
	"time"

	"coursehub/backend/models"
	"coursehub/backend/session"
	"coursehub/backend/validation"
)

const ReservationName = "reservation"

// Reservation builds the checkout wizard for course. Contact fields are
// pre-filled from the signed-in user, if any. Card fields are only shape
// checked and never stored.
func Reservation(sess *session.Session, course models.Course, delay time.Duration) (Definition[models.Reservation], Values) {
	initial := Values{"seats": "1"}
	if u := sess.Current(); u != nil {
		initial["firstName"] = u.FirstName
		initial["lastName"] = u.LastName
		initial["email"] = u.Email
		initial["phone"] = u.Phone
	}

	def := Definition[models.Reservation]{
		Name: ReservationName,
		Steps: []Step{
			{
				Title:    "Course Details",
				Fields:   []string{"seats", "specialRequests"},
				Validate: validateSeats,
			},
			{
				Title:    "Personal Information",
				Fields:   []string{"firstName", "lastName", "email", "phone"},
				Validate: validateContact,
			},
			{
				Title:    "Payment",
				Fields:   []string{"cardholderName", "cardNumber", "expiryDate", "cvv"},
				Validate: validatePayment,
			},
			{Title: "Confirmation", Terminal: true},
		},
		Delay:  delay,
		Secret: []string{"cardNumber", "cvv"},
		Complete: func(v Values) (models.Reservation, error) {
			seats, _ := validation.ParseInt(v["seats"])
			r := models.Reservation{
				CourseID:         course.ID,
				CourseTitle:      course.Title,
				CourseInstructor: course.Instructor,
				CoursePrice:      course.Price,
				FirstName:        strings.TrimSpace(v["firstName"]),
				LastName:         strings.TrimSpace(v["lastName"]),
				Email:            strings.TrimSpace(v["email"]),
				Phone:            strings.TrimSpace(v["phone"]),
				Seats:            seats,
				SpecialRequests:  strings.TrimSpace(v["specialRequests"]),
			}
			r.UserEmail = r.Email
			if u := sess.Current(); u != nil {
				r.UserEmail = u.Email
				r.UserID = u.ID
			}
			return sess.Gateway().AddReservation(r)
		},
	}
	return def, initial
}

func validateSeats(v Values) validation.Errors {
	errs := validation.Errors{}
	n, ok := validation.ParseInt(v["seats"])
	errs.Check(ok && validation.Seats(n), "seats", "Please select between 1 and 10 seats")
	return errs
}

func validateContact(v Values) validation.Errors {
	errs := validation.Errors{}
	errs.Required(v["firstName"], "firstName", "First name is required")
	errs.Required(v["lastName"], "lastName", "Last name is required")
	if errs.Required(v["email"], "email", "Email is required") {
		errs.Check(validation.Email(strings.TrimSpace(v["email"])), "email", "Please enter a valid email address")
	}
	if errs.Required(v["phone"], "phone", "Phone number is required") {
		errs.Check(validation.Phone(strings.TrimSpace(v["phone"])), "phone", "Please enter a valid phone number")
	}
	return errs
}

func validatePayment(v Values) validation.Errors {
	errs := validation.Errors{}
	errs.Required(v["cardholderName"], "cardholderName", "Cardholder name is required")
	if errs.Required(v["cardNumber"], "cardNumber", "Card number is required") {
		errs.Check(validation.CardNumber(v["cardNumber"]), "cardNumber", "Invalid card number")
	}
	if errs.Required(v["expiryDate"], "expiryDate", "Expiry date is required") {
		errs.Check(validation.ExpiryDate(strings.TrimSpace(v["expiryDate"])), "expiryDate", "Invalid or expired date")
	}
	if errs.Required(v["cvv"], "cvv", "CVV is required") {
		errs.Check(validation.CVV(strings.TrimSpace(v["cvv"])), "cvv", "Invalid CVV")
	}
	return errs
}
