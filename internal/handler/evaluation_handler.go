package handler

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/service"
	"supplyhealth-service/internal/table"
	"supplyhealth-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// XLSXContentType is the media type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EvaluateRequest is the JSON body of POST /api/evaluations. Omitted tables
// come from the default dataset.
type EvaluateRequest struct {
	Suppliers []map[string]any `json:"suppliers"`
	Inventory []map[string]any `json:"inventory"`
	Scenario  *engine.Scenario `json:"scenario"`
}

// EvaluationHandler serves the evaluation endpoints
type EvaluationHandler struct {
	svc *service.EvaluationService
}

// NewEvaluationHandler creates a handler backed by svc
func NewEvaluationHandler(svc *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{svc: svc}
}

// RegisterRoutes mounts the evaluation endpoints on g
func (h *EvaluationHandler) RegisterRoutes(g *echo.Group) {
	evaluations := g.Group("/evaluations")
	evaluations.POST("", h.Evaluate)
	evaluations.POST("/upload", h.Upload)
	evaluations.GET("/default", h.Default)
	evaluations.GET("/default/export", h.ExportDefault)

	g.GET("/scenarios", h.ListScenarios)
}

// Evaluate evaluates tables posted as JSON arrays of row objects. A scenario
// named or described in the query string is added after the body's scenario.
func (h *EvaluationHandler) Evaluate(c echo.Context) error {
	log := logger.FromContext(c)

	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	req.Scenario.ApplyDefaults()

	params, err := h.scenarioFromParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return h.evaluate(c, service.Request{
		Suppliers: objectsTable(engine.SuppliersTable, engine.SupplierColumns, req.Suppliers),
		Inventory: objectsTable(engine.InventoryTable, engine.InventoryColumns, req.Inventory),
		Scenario:  engine.Combine(req.Scenario, params),
	})
}

// Upload evaluates CSV or XLSX files posted as multipart fields "suppliers"
// and "inventory". Simulation parameters come from the form.
func (h *EvaluationHandler) Upload(c echo.Context) error {
	log := logger.FromContext(c)

	suppliers, err := uploadedTable(c, engine.SuppliersTable)
	if err != nil {
		log.Warn("Invalid upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	inventory, err := uploadedTable(c, engine.InventoryTable)
	if err != nil {
		log.Warn("Invalid upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	scenario, err := h.scenarioFromParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return h.evaluate(c, service.Request{
		Suppliers: suppliers,
		Inventory: inventory,
		Scenario:  scenario,
	})
}

// Default evaluates the default dataset
func (h *EvaluationHandler) Default(c echo.Context) error {
	scenario, err := h.scenarioFromParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.evaluate(c, service.Request{Scenario: scenario})
}

// ExportDefault returns the default evaluation as an XLSX workbook
func (h *EvaluationHandler) ExportDefault(c echo.Context) error {
	log := logger.FromContext(c)

	scenario, err := h.scenarioFromParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.svc.EvaluateDefault(c.Request().Context(), scenario)
	if err != nil {
		return evaluationError(c, err)
	}

	var buf bytes.Buffer
	if err := table.WriteXLSX(&buf, res); err != nil {
		log.Error("Failed to write workbook", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to export evaluation",
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="supply-health.xlsx"`)
	return c.Blob(http.StatusOK, XLSXContentType, buf.Bytes())
}

// ListScenarios returns the named scenarios
func (h *EvaluationHandler) ListScenarios(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"scenarios": h.svc.Scenarios()})
}

func (h *EvaluationHandler) evaluate(c echo.Context, req service.Request) error {
	res, err := h.svc.Evaluate(c.Request().Context(), req)
	if err != nil {
		return evaluationError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func evaluationError(c echo.Context, err error) error {
	var schemaErr *engine.SchemaError
	if errors.As(err, &schemaErr) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":   schemaErr.Error(),
			"missing": schemaErr.Missing,
		})
	}
	logger.FromContext(c).Error("Evaluation failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Failed to evaluate",
	})
}

// objectsTable converts posted row objects. A nil list means the table was
// omitted; an empty list is an empty table with the required columns.
func objectsTable(name string, required []string, objects []map[string]any) *table.Table {
	if objects == nil {
		return nil
	}
	if len(objects) == 0 {
		return table.New(name, required...)
	}
	return table.FromObjects(name, objects)
}

// uploadedTable reads the multipart file field. A missing field yields nil.
func uploadedTable(c echo.Context, field string) (*table.Table, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s upload: %w", field, err)
	}
	return readUpload(field, fh)
}

func readUpload(field string, fh *multipart.FileHeader) (*table.Table, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s upload: %w", field, err)
	}
	defer f.Close()

	t, err := table.Read(field, fh.Filename, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s upload %q: %w", field, fh.Filename, err)
	}
	return t, nil
}
