/*
Package api - ApiFacade (spec.md §4.7, §6.3)

FILE: internal/api/process_handler.go

ProcessHandler is the thin request -> pipeline -> JSON adapter: parse
ProcessRequest, acquire the period's advisory lock, drive sicosspipeline.Run,
shape the response in one of three formats, map errors onto the HTTP codes
§6.3 lists. Grounded on the teacher's payroll_handler.go request/response
shape (uuid.Parse param validation, status-from-error-substring pattern),
adapted to this domain's error taxonomy instead of string matching.
*/
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	sicosserrors "sicoss/internal/errors"
	"sicoss/internal/sicossmodel"
	"sicoss/internal/sicosspipeline"
	"sicoss/internal/sicossreport"
)

// ProcessHandler implements POST /sicoss/process.
type ProcessHandler struct {
	pipeline   *sicosspipeline.Pipeline
	lock       *sicosspipeline.PeriodLock
	baseConfig func() sicossmodel.SicossConfig
	log        *logrus.Logger
}

// NewProcessHandler builds a ProcessHandler. baseConfig is called once per
// request to get a fresh copy of the on-disk/runtime-default configuration,
// which ConfigTopes (if present in the request) then overrides.
func NewProcessHandler(p *sicosspipeline.Pipeline, lock *sicosspipeline.PeriodLock, baseConfig func() sicossmodel.SicossConfig, log *logrus.Logger) *ProcessHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ProcessHandler{pipeline: p, lock: lock, baseConfig: baseConfig, log: log}
}

// RegisterRoutes wires /sicoss/process onto group.
func (h *ProcessHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/sicoss/process", h.Process)
}

// Process handles POST /sicoss/process.
func (h *ProcessHandler) Process(c *gin.Context) {
	started := time.Now()

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, sicosserrors.Wrap(err, sicosserrors.ErrInvalidRequest))
		return
	}
	if req.FormatoRespuesta == "" {
		req.FormatoRespuesta = formatoCompleto
	}

	period, err := sicossmodel.ParseFiscalPeriod(req.PeriodoFiscal)
	if err != nil {
		h.fail(c, sicosserrors.Wrap(err, sicosserrors.ErrInvalidRequest))
		return
	}

	if err := h.lock.Acquire(period.String()); err != nil {
		h.fail(c, err)
		return
	}
	defer h.lock.Release(period.String())

	cfg := h.baseConfig()
	if req.ConfigTopes != nil {
		if err := applyConfigTopes(&cfg, req.ConfigTopes); err != nil {
			h.fail(c, sicosserrors.Wrap(err, sicosserrors.ErrInvalidRequest))
			return
		}
	}

	var nroLegajo *sicossmodel.EmployeeId
	if req.NroLegajo != nil {
		id := sicossmodel.EmployeeId(*req.NroLegajo)
		nroLegajo = &id
	}

	report, err := h.pipeline.Run(c.Request.Context(), period, cfg, nroLegajo, req.GuardarEnBd)
	if err != nil {
		if sicosserrors.Is(err, sicosserrors.ErrCancelled) {
			c.JSON(http.StatusOK, ProcessResponse{
				Success: false, Message: "run cancelled",
				Timestamp: time.Now().Unix(),
				Metadata:  metadata(started),
			})
			return
		}
		h.fail(c, err)
		return
	}

	if export := c.Query("export"); export != "" {
		if err := h.writeExport(c, report, export); err != nil {
			h.fail(c, sicosserrors.Wrap(err, sicosserrors.ErrInvalidRequest))
		}
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{
		Success:   true,
		Message:   "processed successfully",
		Data:      shapeData(report, req.FormatoRespuesta),
		Metadata:  metadata(started),
		Timestamp: time.Now().Unix(),
	})
}

// writeExport renders report as the requested export format and writes it
// directly onto the response, bypassing the JSON envelope. Orthogonal to
// GuardarEnBd: export never gates, and is never gated by, persistence.
func (h *ProcessHandler) writeExport(c *gin.Context, report sicosspipeline.Report, format string) error {
	filename := "sicoss_" + report.Period.String()
	switch format {
	case "xlsx":
		data, err := sicossreport.GenerateXLSX(report)
		if err != nil {
			return err
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "pdf":
		data, err := sicossreport.GeneratePDF(report)
		if err != nil {
			return err
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	return nil
}

func (h *ProcessHandler) fail(c *gin.Context, err error) {
	h.log.WithError(err).Warn("sicoss: process request failed")
	c.JSON(sicosserrors.GetHTTPStatus(err), ProcessResponse{
		Success:   false,
		Message:   sicosserrors.GetErrorMessage(err),
		Timestamp: time.Now().Unix(),
	})
}

func metadata(started time.Time) Metadata {
	return Metadata{
		Backend:          "sicoss",
		APIVersion:       "v1",
		ProcessingTimeMs: time.Since(started).Milliseconds(),
	}
}

func shapeData(report sicosspipeline.Report, formato string) ProcessData {
	data := ProcessData{Totales: totalesDTO(report)}

	if formato == formatoSoloTotales {
		return data
	}

	data.Estadisticas = map[string]interface{}{
		"cantidad_legajos": len(report.Rows),
		"duracion_ms":      report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	}
	data.Resumen = map[string]interface{}{
		"periodo":       report.Period.String(),
		"tabla_destino": report.Persisted.TablaDestino,
	}

	if formato == formatoCompleto {
		data.Legajos = report.Records
	}
	return data
}

func totalesDTO(report sicosspipeline.Report) TotalesDTO {
	t := report.Totals
	return TotalesDTO{
		Count:                    t.Count,
		Bruto:                    t.Bruto.StringFixed(2),
		RemTotal:                 t.RemTotal.StringFixed(2),
		Imponible1:               t.Imponible1.StringFixed(2),
		Imponible4:               t.Imponible4.StringFixed(2),
		Imponible5:               t.Imponible5.StringFixed(2),
		Imponible6:               t.Imponible6.StringFixed(2),
		Imponible9:               t.Imponible9.StringFixed(2),
		SAC:                      t.SAC.StringFixed(2),
		NoRemun:                  t.NoRemun.StringFixed(2),
		ImporteImponiblePatronal: t.ImporteImponiblePatronal.StringFixed(2),
	}
}

func applyConfigTopes(cfg *sicossmodel.SicossConfig, topes *ConfigTopes) error {
	if topes.TopeJubilatorioPatronal != "" {
		v, err := sicossmodel.ParseMoney(topes.TopeJubilatorioPatronal)
		if err != nil {
			return err
		}
		cfg.TopeJubilatorioPatronal = v
	}
	if topes.TopeJubilatorioPersonal != "" {
		v, err := sicossmodel.ParseMoney(topes.TopeJubilatorioPersonal)
		if err != nil {
			return err
		}
		cfg.TopeJubilatorioPersonal = v
	}
	if topes.TopeOtrosAportesPersonales != "" {
		v, err := sicossmodel.ParseMoney(topes.TopeOtrosAportesPersonales)
		if err != nil {
			return err
		}
		cfg.TopeOtrosAportesPersonales = v
	}
	if topes.TruncaTope != nil {
		cfg.TruncaTope = *topes.TruncaTope
	}
	return cfg.Validate()
}
