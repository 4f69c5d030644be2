package controllers

import (
	"strconv"
	"strings"

	"coursehub/backend/catalog"
	"coursehub/backend/config"
	"coursehub/backend/models"
	"coursehub/backend/session"
	"coursehub/backend/storage"
	"coursehub/backend/utils"
	"coursehub/backend/validation"
	"coursehub/backend/wizard"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CoursesController struct {
	Gateway *storage.Gateway
	Session *session.Session
	Wizards *wizard.Registry
	Cfg     *config.Config
	Log     *zap.Logger
}

func NewCoursesController(gw *storage.Gateway, sess *session.Session, wizards *wizard.Registry, cfg *config.Config, log *zap.Logger) *CoursesController {
	return &CoursesController{Gateway: gw, Session: sess, Wizards: wizards, Cfg: cfg, Log: log}
}

// SearchCourses godoc
// @Summary Search courses
// @Description Filters, sorts and pages the catalog
// @Tags courses
// @Produce json
// @Param search query string false "Substring of title, instructor or category"
// @Param category query string false "Exact category"
// @Param level query string false "Exact level"
// @Param language query string false "Exact language"
// @Param instructor query string false "Substring of the instructor"
// @Param min_price query number false "Lowest price, inclusive"
// @Param max_price query number false "Highest price, inclusive"
// @Param sort query string false "titleAsc, titleDesc, priceAsc, priceDesc or ratingDesc"
// @Param page query int false "1-based page"
// @Param per_page query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /courses [get]
func (cc *CoursesController) SearchCourses(c *fiber.Ctx) error {
	courses := cc.Gateway.Courses()

	spec, errs := cc.parseFilter(c, courses)
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}

	result := catalog.FilterAndSort(courses, spec, catalog.SortKey(c.Query("sort")))
	page := catalog.Paginate(result, c.QueryInt("page", 1), c.QueryInt("per_page", catalog.DefaultPerPage))

	return utils.Paginate(c, page.Courses, int64(page.Total), page.Page, page.PerPage, page.TotalPages)
}

func (cc *CoursesController) parseFilter(c *fiber.Ctx, courses []models.Course) (catalog.FilterSpec, validation.Errors) {
	errs := validation.Errors{}
	spec := catalog.FilterSpec{
		Search:     strings.TrimSpace(c.Query("search")),
		Category:   c.Query("category"),
		Level:      c.Query("level"),
		Language:   c.Query("language"),
		Instructor: strings.TrimSpace(c.Query("instructor")),
	}
	// matching is exact, so map the query onto the catalog spelling
	if spec.Level != "" {
		level, ok := validation.CanonicalLevel(spec.Level)
		if errs.Check(ok, "level", "Unknown level") {
			spec.Level = level
		}
	}
	if spec.Language != "" {
		lang, ok := validation.CanonicalLanguage(spec.Language)
		if errs.Check(ok, "language", "Unknown language") {
			spec.Language = lang
		}
	}

	minRaw, maxRaw := c.Query("min_price"), c.Query("max_price")
	if minRaw == "" && maxRaw == "" {
		return spec, errs
	}

	bounds, _ := catalog.PriceBounds(courses)
	r := catalog.PriceRange{Min: 0, Max: bounds.Max}
	var err error
	if minRaw != "" {
		if r.Min, err = strconv.ParseFloat(minRaw, 64); err != nil {
			errs["priceRange"] = "Price range must be numeric"
			return spec, errs
		}
	}
	if maxRaw != "" {
		if r.Max, err = strconv.ParseFloat(maxRaw, 64); err != nil {
			errs["priceRange"] = "Price range must be numeric"
			return spec, errs
		}
	}
	if errs.Check(validation.PriceRange(r.Min, r.Max), "priceRange", "Minimum price must be at least 0 and not above the maximum") {
		spec.PriceRange = &r
	}
	return spec, errs
}

func (cc *CoursesController) GetPriceBounds(c *fiber.Ctx) error {
	bounds, _ := catalog.PriceBounds(cc.Gateway.Courses())
	return utils.Success(c, fiber.StatusOK, bounds)
}

// GetCourseDetails returns one course with its reviews.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	course, err := cc.Gateway.CourseByID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course":  course,
		"reviews": newestFirst(cc.Gateway.ReviewsByCourse(course.ID)),
	})
}

// StartReservation godoc
// @Summary Start a reservation
// @Description Starts the checkout wizard for a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id}/reservation [post]
func (cc *CoursesController) StartReservation(c *fiber.Ctx) error {
	course, err := cc.Gateway.CourseByID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	def, initial := wizard.Reservation(cc.Session, *course, cc.Cfg.ReservationDelay)
	w := wizard.New(def, initial)
	id := cc.Wizards.Start(w.Flow())
	cc.Log.Debug("Reservation started", zap.String("wizard_id", id), zap.String("course_id", course.ID))

	return utils.Created(c, wizardView{ID: id, State: w.State()})
}
