package wizard

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"coursehub/backend/models"
	"coursehub/backend/session"
	"coursehub/backend/storage"
)

var testCourse = models.Course{
	ID:         "c1",
	Title:      "Go Basics",
	Instructor: "Rob",
	Category:   "Programming",
	Level:      models.LevelBeginner,
	Price:      120,
}

func newFlowSession(t *testing.T) (*session.Session, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	gw := storage.NewGateway(store)
	require.NoError(t, gw.SaveCourses([]models.Course{testCourse}))
	return session.New(gw), store
}

func futureExpiry() string {
	d := time.Now().AddDate(5, 0, 0)
	return fmt.Sprintf("%02d/%02d", int(d.Month()), d.Year()%100)
}

func setAll(t *testing.T, w interface{ Set(string, string) error }, values Values) {
	t.Helper()
	for field, value := range values {
		require.NoError(t, w.Set(field, value), field)
	}
}

func TestSignupFlow(t *testing.T) {
	sess, _ := newFlowSession(t)
	w := New(Signup(sess, 0), nil)

	setAll(t, w, Values{"email": "ada@example.com", "password": "secret1", "confirmPassword": "secret2"})
	assert.ErrorIs(t, w.Next(), ErrInvalidStep)
	assert.Equal(t, "Passwords do not match", w.Errors()["confirmPassword"])

	require.NoError(t, w.Set("confirmPassword", "secret1"))
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.Next(), ErrInvalidStep)
	assert.Equal(t, "First name is required", w.Errors()["firstName"])
	assert.NotContains(t, w.Errors(), "phone")

	setAll(t, w, Values{"firstName": "Ada", "lastName": "Lovelace", "phone": "123"})
	assert.ErrorIs(t, w.Next(), ErrInvalidStep)
	assert.Equal(t, "Please enter a valid phone number", w.Errors()["phone"])
	require.NoError(t, w.Set("phone", ""))
	require.NoError(t, w.Next())

	st := w.State()
	assert.Equal(t, "Confirmation", st.StepTitle)
	assert.NotContains(t, st.Values, "password")

	u, err := w.Submit()
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	assert.Equal(t, 2, w.State().Step)

	current, err := sess.Require()
	require.NoError(t, err)
	assert.Equal(t, u.ID, current.ID)

	stored, err := sess.Gateway().UserByEmail("ada@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	sess, _ := newFlowSession(t)
	w := New(Signup(sess, 0), nil)

	long := strings.Repeat("a", 80)
	setAll(t, w, Values{"email": "ada@example.com", "password": long, "confirmPassword": long})
	assert.ErrorIs(t, w.Next(), ErrInvalidStep)
	assert.Equal(t, "Password must be at most 72 bytes long", w.Errors()["password"])
	assert.Equal(t, 0, w.State().Step)

	longest := strings.Repeat("a", 72)
	setAll(t, w, Values{"password": longest, "confirmPassword": longest})
	require.NoError(t, w.Next())
	setAll(t, w, Values{"firstName": "Ada", "lastName": "Lovelace"})
	require.NoError(t, w.Next())

	u, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestSignupEmailTaken(t *testing.T) {
	sess, _ := newFlowSession(t)
	_, err := sess.Gateway().AddUser(models.User{Email: "ada@example.com"})
	require.NoError(t, err)

	w := New(Signup(sess, 0), nil)
	setAll(t, w, Values{"email": "ada@example.com", "password": "secret1", "confirmPassword": "secret1"})
	require.NoError(t, w.Next())
	setAll(t, w, Values{"firstName": "Ada", "lastName": "Lovelace"})
	require.NoError(t, w.Next())

	_, err = w.Submit()
	require.Error(t, err)
	st := w.State()
	assert.Equal(t, 2, st.Step)
	assert.False(t, st.Submitted)
	assert.Equal(t, "An account with this email already exists", st.Errors["email"])
	assert.False(t, sess.IsLoggedIn())
}

func TestReservationSeatsGate(t *testing.T) {
	sess, _ := newFlowSession(t)
	def, initial := Reservation(sess, testCourse, 0)
	w := New(def, initial)

	require.NoError(t, w.Set("seats", "11"))
	assert.ErrorIs(t, w.Next(), ErrInvalidStep)
	assert.Equal(t, 0, w.State().Step)
	assert.Equal(t, "Please select between 1 and 10 seats", w.Errors()["seats"])

	require.NoError(t, w.Set("seats", "2"))
	require.NoError(t, w.Next())
	assert.Equal(t, 1, w.State().Step)
}

func TestReservationFlow(t *testing.T) {
	sess, store := newFlowSession(t)
	u, err := sess.Gateway().AddUser(models.User{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", Phone: "+41 76 123 45 67"})
	require.NoError(t, err)
	require.NoError(t, sess.SignIn(u))

	def, initial := Reservation(sess, testCourse, 0)
	w := New(def, initial)
	assert.Equal(t, "Ada", w.State().Values["firstName"])

	require.NoError(t, w.Set("seats", "3"))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())

	setAll(t, w, Values{"cardholderName": "Ada Lovelace", "cardNumber": "4532015112830367", "expiryDate": "01/20", "cvv": "12"})
	_, err = w.Submit()
	assert.ErrorIs(t, err, ErrInvalidStep)
	errs := w.Errors()
	assert.Equal(t, "Invalid card number", errs["cardNumber"])
	assert.Equal(t, "Invalid or expired date", errs["expiryDate"])
	assert.Equal(t, "Invalid CVV", errs["cvv"])

	setAll(t, w, Values{"cardNumber": "4532 0151 1283 0366", "expiryDate": futureExpiry(), "cvv": "123"})

	store.Quota = 1
	_, err = w.Submit()
	assert.True(t, storage.IsWriteError(err))
	assert.Equal(t, "Reservation failed", w.Errors()[SubmitField])
	assert.Equal(t, 2, w.State().Step)

	store.Quota = 0
	r, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, 360.0, r.TotalAmount)
	assert.Equal(t, u.ID, r.UserID)
	assert.Equal(t, models.ReservationConfirmed, r.Status)

	st := w.State()
	assert.Equal(t, 3, st.Step)
	assert.Equal(t, "Confirmation", st.StepTitle)
	assert.NotContains(t, st.Values, "cardNumber")
	assert.NotContains(t, st.Values, "cvv")
	assert.ErrorIs(t, w.Back(), ErrSubmitted)

	assert.Len(t, sess.Gateway().ReservationsForUser(u), 1)
}

func TestReservationContactRequired(t *testing.T) {
	sess, _ := newFlowSession(t)
	def, initial := Reservation(sess, testCourse, 0)
	w := New(def, initial)
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.Next(), ErrInvalidStep)
	errs := w.Errors()
	assert.Equal(t, "First name is required", errs["firstName"])
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Phone number is required", errs["phone"])
}

func TestReviewFlow(t *testing.T) {
	sess, _ := newFlowSession(t)

	def, initial := Review(sess, "c1", 0)
	w := New(def, initial)
	setAll(t, w, Values{"rating": "0", "title": "ok", "text": "short"})
	_, err := w.Submit()
	assert.ErrorIs(t, err, ErrInvalidStep)
	errs := w.Errors()
	assert.Equal(t, "Please provide a rating", errs["rating"])
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "text")

	setAll(t, w, Values{"rating": "4", "title": "Solid intro", "text": "Clear and well paced lessons."})
	r, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Anonymous Student", r.AuthorName)

	course, err := sess.Gateway().CourseByID("c1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, course.Rating)
}

func TestReviewAuthorFromSession(t *testing.T) {
	sess, _ := newFlowSession(t)
	require.NoError(t, sess.SignIn(models.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}))

	def, initial := Review(sess, "c1", 0)
	w := New(def, initial)
	setAll(t, w, Values{"rating": "5", "title": "Great", "text": "Would take it again."})
	r, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", r.AuthorEmail)
	assert.Equal(t, "Ada Lovelace", r.AuthorName)
}

func TestReviewUnknownCourse(t *testing.T) {
	sess, _ := newFlowSession(t)

	def, initial := Review(sess, "missing", 0)
	w := New(def, initial)
	setAll(t, w, Values{"rating": "5", "title": "Great", "text": "Would take it again."})
	_, err := w.Submit()
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, "The selected course is no longer available", w.Errors()[SubmitField])
}
