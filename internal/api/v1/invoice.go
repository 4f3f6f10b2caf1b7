package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/service"
	"github.com/tutordesk/tutordesk/internal/types"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// GenerateInvoice godoc
// @Summary Generate an invoice
// @Description Compute and store an invoice for a student over a billing period. Missing dates default to the current month.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.GenerateInvoiceRequest true "Invoice request"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.invoiceService.GenerateInvoice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// PreviewInvoice godoc
// @Summary Preview an invoice
// @Description Compute an invoice without storing it
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.GenerateInvoiceRequest true "Invoice request"
// @Success 200 {object} dto.InvoicePreviewResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/preview [post]
func (h *InvoiceHandler) PreviewInvoice(c *gin.Context) {
	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.invoiceService.PreviewInvoice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoice godoc
// @Summary Get an invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	resp, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListInvoices godoc
// @Summary List invoices
// @Description List invoices, newest first
// @Tags Invoices
// @Produce json
// @Param filter query types.InvoiceFilter false "Filter"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var filter types.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(invalidFilter(err))
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteInvoice godoc
// @Summary Delete an invoice
// @Tags Invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetInvoicePDF godoc
// @Summary Get PDF for an invoice
// @Description Download the invoice as a PDF attachment
// @Tags Invoices
// @Param id path string true "Invoice ID"
// @Param url query bool false "Return a presigned URL from s3 instead of the file"
// @Success 200 {file} application/pdf
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) GetInvoicePDF(c *gin.Context) {
	h.exportDocument(c, types.DocumentFormatPDF)
}

// GetInvoiceDOCX godoc
// @Summary Get DOCX for an invoice
// @Description Download the invoice as a Word document attachment
// @Tags Invoices
// @Param id path string true "Invoice ID"
// @Param url query bool false "Return a presigned URL from s3 instead of the file"
// @Success 200 {file} application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id}/docx [get]
func (h *InvoiceHandler) GetInvoiceDOCX(c *gin.Context) {
	h.exportDocument(c, types.DocumentFormatDOCX)
}

func (h *InvoiceHandler) exportDocument(c *gin.Context, format types.DocumentFormat) {
	id := c.Param("id")

	if c.Query("url") == "true" {
		resp, err := h.invoiceService.GetInvoiceDocumentURL(c.Request.Context(), id, format)
		if err != nil {
			h.logger.Errorw("failed to get invoice document url", "error", err, "invoice_id", id, "format", format)
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	doc, err := h.invoiceService.ExportInvoice(c.Request.Context(), id, format)
	if err != nil {
		h.logger.Errorw("failed to export invoice", "error", err, "invoice_id", id, "format", format)
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
