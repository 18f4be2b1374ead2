/*
Package sicossreport - optional run exports (SPEC_FULL.md §4 supplemented features)

FILE: internal/sicossreport/xlsx.go

Workbook export of a completed Pipeline.Report: one "Resumen" sheet with the
Aggregator totals block, one "Legajos" sheet with a row per surviving
SicossRecord. Grounded on the teacher's excel_export_service.go
GenerateVacacionesExcel: excelize.NewFile(), CoordinatesToCellName header
loop, fmt.Sprintf("A%d", row) per-row addressing. Entirely optional and
orthogonal to Persister's DB write -- built from the same Report the caller
already got back from Pipeline.Run, never re-queries anything.
*/
package sicossreport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sicoss/internal/sicosspipeline"
)

// GenerateXLSX builds a workbook summarizing report. Safe to call whether or
// not Persist ran; it never touches the database itself.
func GenerateXLSX(report sicosspipeline.Report) ([]byte, error) {
	f := excelize.NewFile()
	const summarySheet = "Resumen"
	f.SetSheetName("Sheet1", summarySheet)

	writeSummarySheet(f, summarySheet, report)
	legajosSheet := "Legajos"
	f.NewSheet(legajosSheet)
	writeLegajosSheet(f, legajosSheet, report)

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("sicossreport: write xlsx buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, sheet string, report sicosspipeline.Report) {
	t := report.Totals
	rows := [][2]string{
		{"Periodo", report.Period.String()},
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
		{"Legajos guardados", fmt.Sprintf("%d", report.Persisted.LegajosGuardados)},
		{"Tabla destino", report.Persisted.TablaDestino},
	}

	for i, pair := range rows {
		r := i + 1
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), pair[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), pair[1])
	}
	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "B", 20)
}

func writeLegajosSheet(f *excelize.File, sheet string, report sicosspipeline.Report) {
	headers := []string{
		"CUIL", "Apellido y Nombre", "Cod. Situacion", "Cod. Condicion",
		"Rem. Total", "Imponible 1", "Imponible 4", "Imponible 5",
		"Imponible 6", "Imponible 9", "SAC", "No Remunerativo",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, rec := range report.Records {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.Cuil)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.Apnom)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.CodSituacion)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), rec.CodCond)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), rec.RemTotal.StringFixed(2))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), rec.RemImpo1.StringFixed(2))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), rec.RemImpo4.StringFixed(2))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), rec.RemImpo5.StringFixed(2))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), rec.RemImpo6.StringFixed(2))
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), rec.RemImpo9.StringFixed(2))
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), rec.SAC.StringFixed(2))
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), rec.NoRemun.StringFixed(2))
	}
}
