package storage

import (
	"fmt"
	"strings"

	"coursehub/backend/models"
)

func (g *Gateway) Reservations() []models.Reservation {
	return readList[models.Reservation](g, KeyReservations)
}

// ReservationsForUser returns the reservations owned by u. Ownership is the
// reservation's user id, or its owner email when no id was recorded. The
// contact email is free text and never grants ownership.
func (g *Gateway) ReservationsForUser(u models.User) []models.Reservation {
	var out []models.Reservation
	for _, r := range g.Reservations() {
		if ownedBy(r, u) {
			out = append(out, r)
		}
	}
	return out
}

func ownedBy(r models.Reservation, u models.User) bool {
	if r.UserID != "" {
		return u.ID != "" && r.UserID == u.ID
	}
	return r.UserEmail != "" && strings.EqualFold(r.UserEmail, u.Email)
}

func (g *Gateway) ReservationByID(id string) (*models.Reservation, error) {
	for _, r := range g.Reservations() {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
}

// AddReservation stores a new confirmed reservation. The total is always
// recomputed from the course price and the seat count.
func (g *Gateway) AddReservation(r models.Reservation) (models.Reservation, error) {
	if _, err := g.CourseByID(r.CourseID); err != nil {
		return models.Reservation{}, err
	}
	if r.ID == "" {
		r.ID = g.newID()
	}
	if r.Date.IsZero() {
		r.Date = g.now().UTC()
	}
	r.Status = models.ReservationConfirmed
	r.TotalAmount = r.CoursePrice * float64(r.Seats)
	if err := g.check(r); err != nil {
		return models.Reservation{}, err
	}

	reservations := append(g.Reservations(), r)
	if err := g.write("addReservation", KeyReservations, "Reservation failed", reservations); err != nil {
		return models.Reservation{}, err
	}
	return r, nil
}

// CancelReservation moves a confirmed reservation to cancelled.
func (g *Gateway) CancelReservation(id string) (models.Reservation, error) {
	reservations := g.Reservations()
	for i := range reservations {
		if reservations[i].ID != id {
			continue
		}
		if reservations[i].Status != models.ReservationConfirmed {
			return models.Reservation{}, fmt.Errorf("reservation %s is %s: %w", id, reservations[i].Status, ErrInvalidTransition)
		}
		reservations[i].Status = models.ReservationCancelled
		if err := g.write("cancelReservation", KeyReservations, "Cancellation failed", reservations); err != nil {
			return models.Reservation{}, err
		}
		return reservations[i], nil
	}
	return models.Reservation{}, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
}
