package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/report"
)

// ReportHandler expone los reportes PDF (protegido).
type ReportHandler struct {
	uc *report.KardexUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.KardexUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ProductKardex godoc
// @Summary      Kardex de producto en PDF
// @Description  Descarga el kardex del producto: snapshot actual y tabla de
//
//	movimientos, opcionalmente acotada por rango de fechas.
//
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del producto"
// @Param        from  query  string  false  "Fecha inicial (RFC 3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha final (RFC 3339 o YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/products/{id}/kardex [get]
func (h *ReportHandler) ProductKardex(c *fiber.Ctx) error {
	userID := GetUserID(c)
	productID := c.Params("id")
	from, to, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC 3339 o YYYY-MM-DD"})
	}
	pdfBytes, filename, err := h.uc.GenerateProductKardex(c.Context(), userID, productID, from, to)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
