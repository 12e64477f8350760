package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/application/sales"
)

// SaleService lo que el handler necesita de *sales.Service.
type SaleService interface {
	Create(ctx context.Context, h sales.Header) (sales.Result, error)
	Update(ctx context.Context, saleID int64, h sales.Header) (sales.Result, error)
	Delete(ctx context.Context, saleID int64) error
	Get(ctx context.Context, id int64) (*dto.SaleResponse, error)
	GetDetails(ctx context.Context, id int64) ([]dto.SaleDetailResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.SaleListResponse, error)
	FormData(ctx context.Context) (*dto.SaleFormDataResponse, error)
	Receipt(ctx context.Context, id int64) ([]byte, error)
}

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	svc SaleService
}

// NewSaleHandler construye el handler.
func NewSaleHandler(svc SaleService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de cada producto y guarda cabecera y detalles en una sola transacción.
// @Description  El total y los subtotales se recalculan en el servidor.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "Cabecera e ítems de la venta"
// @Success      201   {object}  dto.SaleResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	header, err := h.header(c)
	if err != nil {
		return err
	}
	res, err := h.svc.Create(c.UserContext(), header)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResultResponse{SaleID: res.SaleID, Total: res.Total})
}

// Update godoc
// @Summary      Reemplazar venta
// @Description  Devuelve el stock de los ítems anteriores y aplica los nuevos, todo o nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID de la venta"
// @Param        body  body  dto.SaleRequest  true  "Nueva cabecera e ítems"
// @Success      200   {object}  dto.SaleResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	header, err := h.header(c)
	if err != nil {
		return err
	}
	res, err := h.svc.Update(c.UserContext(), id, header)
	if err != nil {
		return err
	}
	return c.JSON(dto.SaleResultResponse{SaleID: res.SaleID, Total: res.Total})
}

// Delete godoc
// @Summary      Eliminar venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "venta eliminada"})
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Details godoc
// @Summary      Detalles de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {array}   dto.SaleDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/details [get]
func (h *SaleHandler) Details(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.GetDetails(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Cliente o fecha (YYYY-MM-DD)"
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// FormData godoc
// @Summary      Datos para el formulario de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SaleFormDataResponse
// @Router       /api/sales/form-data [get]
func (h *SaleHandler) FormData(c *fiber.Ctx) error {
	out, err := h.svc.FormData(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	doc, err := h.svc.Receipt(c.UserContext(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="venta-%d.pdf"`, id))
	return c.Send(doc)
}

// header decodifica, valida y convierte el cuerpo. Sin seller_id vende el usuario autenticado.
func (h *SaleHandler) header(c *fiber.Ctx) (sales.Header, error) {
	var in dto.SaleRequest
	if err := parseBody(c, &in); err != nil {
		return sales.Header{}, err
	}
	if err := dto.Validate(in); err != nil {
		return sales.Header{}, err
	}
	return sales.HeaderFromRequest(in, GetUserID(c))
}
