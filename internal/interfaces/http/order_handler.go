package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
	"github.com/turbocafe/turbocafe-api/internal/application/usecase"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

// OrderHandler handles the order endpoints (protected).
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// orderFilter reads the lenient query filters shared by the list endpoints.
// Malformed values (including an unknown status) behave as if absent.
func orderFilter(c *fiber.Ctx) repository.OrderFilter {
	f := repository.OrderFilter{
		FilterVendorID:   c.Query("vendor_id"),
		Search:           c.Query("search"),
		VendorNameSearch: c.Query("vendor_name"),
		OrderBy:          c.Query("ordering"),
	}
	if status := entity.OrderStatus(c.Query("status")); status.Valid() {
		f.Status = status
	}
	f.MinTotal = queryDecimal(c, "min_total")
	f.MaxTotal = queryDecimal(c, "max_total")
	f.StartDate = queryDate(c, "start_date")
	f.EndDate = queryDate(c, "end_date")
	return f
}

// Create godoc
// @Summary      Place an order (student)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Item and quantity"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Create(c.Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List orders in the actor's scope
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Status filter"
// @Param        vendor_id   query  string  false  "Vendor filter"
// @Param        min_total   query  number  false  "Minimum total"
// @Param        max_total   query  number  false  "Maximum total"
// @Param        start_date  query  string  false  "Created on or after (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Created on or before (YYYY-MM-DD)"
// @Param        ordering    query  string  false  "Sort key (created_at, total_price, status, quantity; '-' for descending)"
// @Param        page        query  int     false  "Page"       default(1)
// @Param        page_size   query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.List(c.Context(), actor, orderFilter(c), queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Search orders in the actor's scope
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Customer/matric/item/vendor search"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders/search [get]
func (h *OrderHandler) Search(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	f := orderFilter(c)
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
// @Summary      Order aggregates in the actor's scope
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderStatsResponse
// @Router       /api/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.Stats(c.Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Orders from the last 7 days (max 10, newest first)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/recent [get]
func (h *OrderHandler) Recent(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.Recent(c.Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StudentOrders godoc
// @Summary      List own orders (student)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/student/my-orders [get]
func (h *OrderHandler) StudentOrders(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.StudentOrders(c.Context(), actor, orderFilter(c), queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VendorOrders godoc
// @Summary      List orders placed against own catalog (vendor)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/vendor/my-orders [get]
func (h *OrderHandler) VendorOrders(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.VendorOrders(c.Context(), actor, orderFilter(c), queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one order
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.GetByID(c.Context(), actor, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Advance the order status (vendor of the order)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Order id"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Target status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/update-status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), actor, c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancel an order (placing student)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	out, err := h.uc.Cancel(c.Context(), actor, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Download the order receipt (PDF)
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Order id"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	pdfBytes, err := h.uc.Receipt(c.Context(), actor, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
