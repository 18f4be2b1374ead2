/*
Package sicossreport - optional run exports (SPEC_FULL.md §4 supplemented features)

FILE: internal/sicossreport/pdf.go

One-page "constancia de liquidacion" PDF stamped with the run's
FechaProcesamiento/VersionSistema and totals block. Grounded on the teacher's
payroll_service.go GeneratePDFPayslip: gofpdf.New("P","mm","A4",""), colored
header band via SetFillColor+Rect, CellFormat section banners, bytes.Buffer
output via pdf.Output(&buf). Entirely optional and orthogonal to Persister's
DB write.
*/
package sicossreport

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"sicoss/internal/sicosspipeline"
)

// GeneratePDF renders a one-page summary constancia for report.
func GeneratePDF(report sicosspipeline.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	headerR, headerG, headerB := 30, 58, 138

	pdf.SetFillColor(headerR, headerG, headerB)
	pdf.Rect(0, 0, 210, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(10, 8)
	pdf.Cell(150, 8, "CONSTANCIA DE LIQUIDACION SICOSS")
	pdf.SetFont("Arial", "", 9)
	pdf.SetXY(10, 18)
	pdf.Cell(150, 5, fmt.Sprintf("Periodo: %s", report.Period.String()))
	pdf.SetXY(10, 23)
	pdf.Cell(150, 5, fmt.Sprintf("Generado: %s", report.FinishedAt.Format("02/01/2006 15:04")))

	pdf.SetTextColor(0, 0, 0)

	pdf.SetXY(10, 36)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(70, 130, 180)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(190, 7, "TOTALES DEL PERIODO", "1", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	t := report.Totals
	lines := [][2]string{
		{"Cantidad de legajos", fmt.Sprintf("%d", t.Count)},
		{"Bruto", t.Bruto.StringFixed(2)},
		{"Remuneracion total", t.RemTotal.StringFixed(2)},
		{"Imponible 1 (jubilatorio)", t.Imponible1.StringFixed(2)},
		{"Imponible 4 (otros aportes)", t.Imponible4.StringFixed(2)},
		{"Imponible 5 (remuneracion 78805)", t.Imponible5.StringFixed(2)},
		{"Imponible 6 (investigador)", t.Imponible6.StringFixed(2)},
		{"Imponible 9 (ART)", t.Imponible9.StringFixed(2)},
		{"SAC", t.SAC.StringFixed(2)},
		{"No remunerativo", t.NoRemun.StringFixed(2)},
		{"Importe imponible patronal", t.ImporteImponiblePatronal.StringFixed(2)},
	}

	y := pdf.GetY() + 2
	pdf.SetFont("Arial", "", 9)
	for _, line := range lines {
		pdf.SetXY(10, y)
		pdf.SetFont("Arial", "B", 9)
		pdf.Cell(80, 6, line[0])
		pdf.SetFont("Arial", "", 9)
		pdf.Cell(60, 6, line[1])
		y += 6
	}

	y += 4
	pdf.SetXY(10, y)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(70, 130, 180)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(190, 7, "PERSISTENCIA", "1", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	y = pdf.GetY() + 2
	pdf.SetXY(10, y)
	pdf.SetFont("Arial", "", 9)
	tabla := report.Persisted.TablaDestino
	if tabla == "" {
		tabla = "(no persistido)"
	}
	pdf.Cell(190, 6, fmt.Sprintf("Legajos guardados: %d   Tabla destino: %s", report.Persisted.LegajosGuardados, tabla))

	var versionSistema string
	if len(report.Records) > 0 {
		versionSistema = report.Records[0].VersionSistema
	}
	pdf.SetY(280)
	pdf.SetFont("Arial", "I", 7)
	pdf.Cell(190, 4, fmt.Sprintf("version_sistema=%s", versionSistema))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("sicossreport: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
