package controllers

import (
	"coursehub/backend/catalog"
	"coursehub/backend/storage"
	"coursehub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// featuredCount is the number of course cards on the landing page.
const featuredCount = 3

type OverviewController struct {
	Gateway *storage.Gateway
}

func NewOverviewController(gw *storage.Gateway) *OverviewController {
	return &OverviewController{Gateway: gw}
}

// GetOverview returns the landing page data: top rated courses, category
// counts and the catalog price bounds.
func (oc *OverviewController) GetOverview(c *fiber.Ctx) error {
	courses := oc.Gateway.Courses()
	bounds, _ := catalog.PriceBounds(courses)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"featured":     catalog.Featured(courses, featuredCount),
		"categories":   catalog.Categories(courses),
		"totalCourses": len(courses),
		"totalReviews": len(oc.Gateway.Reviews()),
		"priceBounds":  bounds,
	})
}
