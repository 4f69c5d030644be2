package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coursehub/backend/config"
	"coursehub/backend/models"
	"coursehub/backend/storage"
)

type apiResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Details    json.RawMessage `json:"details"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
}

type wizardBody struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	State struct {
		Name      string            `json:"name"`
		Step      int               `json:"step"`
		StepTitle string            `json:"stepTitle"`
		Values    map[string]string `json:"values"`
		Errors    map[string]string `json:"errors"`
		Submitted bool              `json:"submitted"`
		Result    json.RawMessage   `json:"result"`
	} `json:"state"`
}

func newTestApp(t *testing.T) (*fiber.App, *storage.Gateway) {
	t.Helper()
	gw := storage.NewGateway(storage.NewMemoryStore())
	require.NoError(t, gw.InitSampleData())

	app := fiber.New()
	SetupRoutes(app, gw, &config.Config{JWTSecret: "test-secret"}, zap.NewNop())
	return app, gw
}

func call(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func futureExpiry() string {
	d := time.Now().AddDate(5, 0, 0)
	return fmt.Sprintf("%02d/%02d", int(d.Month()), d.Year()%100)
}

func TestSearchCourses(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := call(t, app, http.MethodGet, "/api/courses?category=Programming&sort=priceAsc", nil, "")
	require.Equal(t, http.StatusOK, status)

	courses := decode[[]struct {
		ID       string  `json:"id"`
		Category string  `json:"category"`
		Price    float64 `json:"price"`
	}](t, resp.Data)
	require.Len(t, courses, 3)
	assert.Equal(t, int64(3), resp.Total)
	for i, c := range courses {
		assert.Equal(t, "Programming", c.Category)
		if i > 0 {
			assert.LessOrEqual(t, courses[i-1].Price, c.Price)
		}
	}
	assert.Equal(t, "1", courses[0].ID)
}

func TestSearchCoursesPriceRange(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := call(t, app, http.MethodGet, "/api/courses?min_price=0&max_price=149", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(3), resp.Total)

	status, resp = call(t, app, http.MethodGet, "/api/courses?min_price=500&max_price=100", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, decode[map[string]string](t, resp.Details), "priceRange")

	status, _ = call(t, app, http.MethodGet, "/api/courses?level=Wizard", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestSearchCoursesLevelIgnoresCase(t *testing.T) {
	app, gw := newTestApp(t)

	beginners := 0
	for _, c := range gw.Courses() {
		if c.Level == models.LevelBeginner {
			beginners++
		}
	}
	require.Positive(t, beginners)

	status, resp := call(t, app, http.MethodGet, "/api/courses?level=beginner&per_page=50", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(beginners), resp.Total)

	status, resp = call(t, app, http.MethodGet, "/api/courses?level=BEGINNER&language=english", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Positive(t, resp.Total)
}

func TestSearchCoursesPaging(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := call(t, app, http.MethodGet, "/api/courses?page=2", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, decode[[]map[string]any](t, resp.Data), 1)
}

func TestCourseDetails(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := call(t, app, http.MethodGet, "/api/courses/1", nil, "")
	require.Equal(t, http.StatusOK, status)
	details := decode[struct {
		Course  map[string]any   `json:"course"`
		Reviews []map[string]any `json:"reviews"`
	}](t, resp.Data)
	assert.Equal(t, "1", details.Course["id"])
	assert.Len(t, details.Reviews, 2)

	status, _ = call(t, app, http.MethodGet, "/api/courses/999", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOverview(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := call(t, app, http.MethodGet, "/api/overview", nil, "")
	require.Equal(t, http.StatusOK, status)
	overview := decode[struct {
		Featured     []map[string]any `json:"featured"`
		TotalCourses int              `json:"totalCourses"`
		PriceBounds  struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"priceBounds"`
	}](t, resp.Data)
	assert.Len(t, overview.Featured, 3)
	assert.Equal(t, 9, overview.TotalCourses)
	assert.Equal(t, 99.0, overview.PriceBounds.Min)
	assert.Equal(t, 449.0, overview.PriceBounds.Max)
}

func signup(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, resp := call(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":           "ada@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	w := decode[wizardBody](t, resp.Data)
	assert.NotContains(t, w.State.Values, "password")

	status, _ = call(t, app, http.MethodPost, "/api/wizards/"+w.ID+"/next", nil, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodPatch, "/api/wizards/"+w.ID+"/fields", map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"phone":     "+41 76 123 45 67",
	}, "")
	require.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodPost, "/api/wizards/"+w.ID+"/next", nil, "")
	require.Equal(t, http.StatusOK, status)

	status, resp = call(t, app, http.MethodPost, "/api/wizards/"+w.ID+"/submit", nil, "")
	require.Equal(t, http.StatusOK, status)
	done := decode[wizardBody](t, resp.Data)
	assert.True(t, done.State.Submitted)
	require.NotEmpty(t, done.Token)
	return done.Token
}

func TestSignupAndProfile(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := call(t, app, http.MethodGet, "/api/user/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	token := signup(t, app)

	status, resp := call(t, app, http.MethodGet, "/api/user/profile", nil, token)
	require.Equal(t, http.StatusOK, status)
	profile := decode[struct {
		User map[string]any `json:"user"`
	}](t, resp.Data)
	assert.Equal(t, "ada@example.com", profile.User["email"])
	assert.NotContains(t, profile.User, "passwordHash")

	status, resp = call(t, app, http.MethodPut, "/api/user/profile", map[string]string{"phone": "12"}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, decode[map[string]string](t, resp.Details), "phone")

	status, resp = call(t, app, http.MethodPut, "/api/user/profile", map[string]string{"firstName": "Augusta"}, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Augusta", decode[map[string]any](t, resp.Data)["firstName"])

	status, _ = call(t, app, http.MethodPost, "/api/auth/logout", nil, "")
	require.Equal(t, http.StatusNoContent, status)

	// the token alone is not enough once the session is gone
	status, _ = call(t, app, http.MethodGet, "/api/user/profile", nil, token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSignupValidation(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := call(t, app, http.MethodPost, "/api/auth/signup", map[string]string{"email": "nope"}, "")
	require.Equal(t, http.StatusCreated, status)
	w := decode[wizardBody](t, resp.Data)

	status, resp = call(t, app, http.MethodPost, "/api/wizards/"+w.ID+"/next", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	failed := decode[wizardBody](t, resp.Details)
	assert.Equal(t, 0, failed.State.Step)
	assert.Equal(t, "Please enter a valid email address", failed.State.Errors["email"])

	status, _ = call(t, app, http.MethodPost, "/api/wizards/"+w.ID+"/back", nil, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, app, http.MethodPost, "/api/wizards/"+w.ID+"/submit", nil, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, app, http.MethodGet, "/api/wizards/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)
	signup(t, app)
	status, _ := call(t, app, http.MethodPost, "/api/auth/logout", nil, "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, app, http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@example.com", "password": "wrong-one"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodPost, "/api/auth/login", map[string]any{"email": "ada", "password": "x"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, resp := call(t, app, http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@example.com", "password": "secret1", "remember": true}, "")
	require.Equal(t, http.StatusOK, status)
	login := decode[struct {
		Token string `json:"token"`
	}](t, resp.Data)
	assert.NotEmpty(t, login.Token)

	status, resp = call(t, app, http.MethodGet, "/api/auth/session", nil, "")
	require.Equal(t, http.StatusOK, status)
	sess := decode[map[string]any](t, resp.Data)
	assert.Equal(t, true, sess["loggedIn"])
	assert.Equal(t, "ada@example.com", sess["rememberedEmail"])
}

func TestReservationFlow(t *testing.T) {
	app, gw := newTestApp(t)
	token := signup(t, app)

	status, resp := call(t, app, http.MethodPost, "/api/courses/2/reservation", nil, "")
	require.Equal(t, http.StatusCreated, status)
	w := decode[wizardBody](t, resp.Data)
	assert.Equal(t, "Course Details", w.State.StepTitle)
	assert.Equal(t, "ada@example.com", w.State.Values["email"])
	base := "/api/wizards/" + w.ID

	status, _ = call(t, app, http.MethodPatch, base+"/fields", map[string]string{"seats": "11"}, "")
	require.Equal(t, http.StatusOK, status)
	status, resp = call(t, app, http.MethodPost, base+"/next", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	failed := decode[wizardBody](t, resp.Details)
	assert.Equal(t, 0, failed.State.Step)
	assert.Contains(t, failed.State.Errors, "seats")

	status, _ = call(t, app, http.MethodPatch, base+"/fields", map[string]string{"seats": "2"}, "")
	require.Equal(t, http.StatusOK, status)
	for i := 0; i < 2; i++ {
		status, _ = call(t, app, http.MethodPost, base+"/next", nil, "")
		require.Equal(t, http.StatusOK, status)
	}

	status, _ = call(t, app, http.MethodPatch, base+"/fields", map[string]string{"seats": "3"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = call(t, app, http.MethodPatch, base+"/fields", map[string]string{
		"cardholderName": "Ada Lovelace",
		"cardNumber":     "4532015112830366",
		"expiryDate":     futureExpiry(),
		"cvv":            "123",
	}, "")
	require.Equal(t, http.StatusOK, status)

	status, resp = call(t, app, http.MethodPost, base+"/submit", nil, "")
	require.Equal(t, http.StatusOK, status)
	done := decode[wizardBody](t, resp.Data)
	assert.Equal(t, 3, done.State.Step)
	assert.NotContains(t, done.State.Values, "cardNumber")
	receipt := decode[struct {
		ID          string  `json:"id"`
		TotalAmount float64 `json:"totalAmount"`
	}](t, done.State.Result)
	assert.Equal(t, 698.0, receipt.TotalAmount)

	status, _ = call(t, app, http.MethodPost, base+"/back", nil, "")
	assert.Equal(t, http.StatusConflict, status)

	status, resp = call(t, app, http.MethodGet, "/api/user/reservations", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, resp.Data), 1)

	status, _ = call(t, app, http.MethodPost, "/api/user/reservations/"+receipt.ID+"/cancel", nil, token)
	require.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodPost, "/api/user/reservations/"+receipt.ID+"/cancel", nil, token)
	assert.Equal(t, http.StatusConflict, status)
	status, _ = call(t, app, http.MethodPost, "/api/user/reservations/other/cancel", nil, token)
	assert.Equal(t, http.StatusNotFound, status)

	r, err := gw.ReservationByID(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", string(r.Status))

	status, _ = call(t, app, http.MethodPost, "/api/courses/999/reservation", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCancelForeignReservation(t *testing.T) {
	app, gw := newTestApp(t)

	course, err := gw.CourseByID("2")
	require.NoError(t, err)
	foreign, err := gw.AddReservation(models.Reservation{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		CoursePrice: course.Price,
		Seats:       1,
		FirstName:   "Bob",
		LastName:    "Builder",
		Email:       "ada@example.com",
		Phone:       "+41 76 123 45 67",
		UserID:      "bob",
		UserEmail:   "bob@example.com",
	})
	require.NoError(t, err)

	token := signup(t, app)

	status, resp := call(t, app, http.MethodGet, "/api/user/reservations", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]map[string]any](t, resp.Data))

	status, _ = call(t, app, http.MethodPost, "/api/user/reservations/"+foreign.ID+"/cancel", nil, token)
	assert.Equal(t, http.StatusNotFound, status)

	r, err := gw.ReservationByID(foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, r.Status)
}

func TestReviewFlow(t *testing.T) {
	app, gw := newTestApp(t)

	status, resp := call(t, app, http.MethodPost, "/api/reviews", map[string]string{
		"courseId": "3",
		"rating":   "2",
		"title":    "Too fast",
		"text":     "The pacing left me behind.",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	w := decode[wizardBody](t, resp.Data)

	status, _ = call(t, app, http.MethodPost, "/api/wizards/"+w.ID+"/submit", nil, "")
	require.Equal(t, http.StatusOK, status)

	status, resp = call(t, app, http.MethodGet, "/api/reviews?course_id=3", nil, "")
	require.Equal(t, http.StatusOK, status)
	reviews := decode[[]map[string]any](t, resp.Data)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Too fast", reviews[0]["title"])
	assert.Equal(t, "Anonymous Student", reviews[0]["authorName"])

	course, err := gw.CourseByID("3")
	require.NoError(t, err)
	assert.Equal(t, 3.0, course.Rating)

	status, _ = call(t, app, http.MethodDelete, "/api/wizards/"+w.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, app, http.MethodGet, "/api/wizards/"+w.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, app, http.MethodDelete, "/api/wizards/"+w.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCourseAnalytics(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := call(t, app, http.MethodGet, "/api/courses/1/analytics?start_date=2024-11-01&end_date=2024-11-30", nil, "")
	require.Equal(t, http.StatusOK, status)
	a := decode[struct {
		Reviews       int     `json:"reviews"`
		AverageRating float64 `json:"averageRating"`
	}](t, resp.Data)
	assert.Equal(t, 2, a.Reviews)
	assert.Equal(t, 5.0, a.AverageRating)

	status, _ = call(t, app, http.MethodGet, "/api/courses/1/analytics?start_date=11/01/2024", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodGet, "/api/courses/999/analytics", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}
