package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pressfix/models"
	"pressfix/utils"
)

// CatalogController serves the maintenance-package catalog: a public read
// for the site pages and admin-gated CRUD for the editor.
type CatalogController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCatalogController(db *gorm.DB, logger *log.Logger) *CatalogController {
	return &CatalogController{DB: db, Logger: logger}
}

// ListCatalog returns active items, optionally filtered by category,
// ordered for display.
func (cc *CatalogController) ListCatalog(c *fiber.Ctx) error {
	query := cc.DB.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category_key = ?", category)
	}

	var items []models.CatalogItem
	if err := query.Order("sort_order asc, id asc").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch catalog", err)
	}
	return c.JSON(utils.SuccessResponse(items))
}

// ListAllCatalog returns every item, inactive ones included, for the editor.
func (cc *CatalogController) ListAllCatalog(c *fiber.Ctx) error {
	var items []models.CatalogItem
	if err := cc.DB.Order("category_key asc, sort_order asc").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch catalog", err)
	}
	return c.JSON(utils.SuccessResponse(items))
}

type catalogInput struct {
	CategoryKey string `json:"category_key" validate:"required,max=100"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
	Title       string `json:"title" validate:"required,max=200"`
	Subtitle    string `json:"subtitle" validate:"omitempty,max=300"`
	Description string `json:"description"`
	CTALabel    string `json:"cta_label" validate:"omitempty,max=100"`
	CTAHref     string `json:"cta_href" validate:"omitempty,max=500"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=500"`
	Tag         string `json:"tag" validate:"omitempty,max=100"`
}

func (in *catalogInput) apply(item *models.CatalogItem) {
	item.CategoryKey = in.CategoryKey
	item.SortOrder = in.SortOrder
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	item.Title = in.Title
	item.Subtitle = in.Subtitle
	item.Description = in.Description
	item.CTALabel = in.CTALabel
	item.CTAHref = in.CTAHref
	item.ImageURL = in.ImageURL
	item.Tag = in.Tag
}

// CreateCatalogItem handles POST /api/v1/admin/catalog.
func (cc *CatalogController) CreateCatalogItem(c *fiber.Ctx) error {
	var input catalogInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	item := models.CatalogItem{IsActive: true}
	input.apply(&item)

	if err := cc.DB.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create catalog item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(item))
}

// UpdateCatalogItem handles PUT /api/v1/admin/catalog/:id.
func (cc *CatalogController) UpdateCatalogItem(c *fiber.Ctx) error {
	var input catalogInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var item models.CatalogItem
	if err := cc.DB.First(&item, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Catalog item not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch catalog item", err)
	}

	input.apply(&item)
	if err := cc.DB.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update catalog item", err)
	}
	return c.JSON(utils.SuccessResponse(item))
}

// DeleteCatalogItem handles DELETE /api/v1/admin/catalog/:id.
func (cc *CatalogController) DeleteCatalogItem(c *fiber.Ctx) error {
	var item models.CatalogItem
	if err := cc.DB.First(&item, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Catalog item not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch catalog item", err)
	}

	if err := cc.DB.Delete(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete catalog item", err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": item.ID}))
}
