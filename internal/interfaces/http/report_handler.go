package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-control/internal/application/analytics"
)

// ReportHandler expone el reporte de inventario y sus exportaciones.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Reporte de inventario
// @Description  Total de productos, valor en stock, stock bajo y movimientos del día.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportSummaryDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	b, err := h.uc.ExportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock.pdf"`)
	return c.Send(b)
}

// XML godoc
// @Summary      Reporte de inventario en XML
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {file}  binary
// @Router       /api/reports/stock.xml [get]
func (h *ReportHandler) XML(c *fiber.Ctx) error {
	b, err := h.uc.ExportXML(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(b)
}
