package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
	"github.com/turbocafe/turbocafe-api/internal/application/usecase"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

// MenuHandler handles the catalog endpoints (protected).
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

// NewMenuHandler builds the handler.
func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// menuFilter reads the lenient query filters shared by the list endpoints.
// Malformed values behave as if absent. Without an explicit ?available or
// ?show_unavailable=true, the listing defaults to available items only.
func menuFilter(c *fiber.Ctx) repository.MenuItemFilter {
	f := repository.MenuItemFilter{
		VendorID: c.Query("vendor_id"),
		Search:   c.Query("search"),
		OrderBy:  c.Query("ordering"),
	}
	f.Available = queryBool(c, "available")
	if show := queryBool(c, "show_unavailable"); show != nil {
		f.ShowUnavailable = *show
	}
	if role := entity.Role(c.Query("vendor_role")); role.Valid() {
		f.VendorRole = role
	}
	if min := queryDecimal(c, "min_price"); min != nil {
		f.MinPrice = min
	}
	if max := queryDecimal(c, "max_price"); max != nil {
		f.MaxPrice = max
	}
	return f
}

// List godoc
// @Summary      List menu items
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        available         query  bool    false  "Availability filter (default: available only)"
// @Param        show_unavailable  query  bool    false  "Include unavailable items"
// @Param        vendor_id         query  string  false  "Vendor filter"
// @Param        vendor_role       query  string  false  "Restrict to items owned by users with this role"
// @Param        min_price  query  number  false  "Minimum price"
// @Param        max_price  query  number  false  "Maximum price"
// @Param        search     query  string  false  "Name/description/vendor search"
// @Param        ordering   query  string  false  "Sort key (name, price, created_at; '-' for descending)"
// @Param        page       query  int     false  "Page"       default(1)
// @Param        page_size  query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.MenuItemListResponse
// @Router       /api/menu [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.List(c.Context(), actor, menuFilter(c), queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Search the catalog
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Search term"
// @Success      200  {object}  dto.MenuItemListResponse
// @Router       /api/menu/search [get]
func (h *MenuHandler) Search(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	f := menuFilter(c)
	if q := c.Query("q"); q != "" {
		f.Search = q
	}
	out, err := h.uc.List(c.Context(), actor, f, queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Catalog aggregates
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MenuStatsResponse
// @Router       /api/menu/stats [get]
func (h *MenuHandler) Stats(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.Stats(c.Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VendorList godoc
// @Summary      List own catalog (vendor)
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MenuItemListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/menu/vendor/my-menus [get]
func (h *MenuHandler) VendorList(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.VendorList(c.Context(), actor, menuFilter(c), queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a menu item (vendor)
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuItemRequest  true  "Item data"
// @Success      201   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menu [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.CreateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Create(c.Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a menu item
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item id"
// @Success      200  {object}  dto.MenuItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.GetByID(c.Context(), actor, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a menu item (owner)
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Item id"
// @Param        body  body  dto.UpdateMenuItemRequest  true  "Fields to change"
// @Success      200   {object}  dto.MenuItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.UpdateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Update(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a menu item (owner)
// @Tags         menu
// @Security     Bearer
// @Param        id  path  string  true  "Item id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	if err := h.uc.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleAvailability godoc
// @Summary      Toggle item availability (owner)
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item id"
// @Success      200  {object}  dto.MenuItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/toggle-availability [patch]
func (h *MenuHandler) ToggleAvailability(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.ToggleAvailability(c.Context(), actor, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
