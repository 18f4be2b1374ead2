/*
Package extract - row conversion helpers

FILE: internal/extract/convert.go

Converts the flat GORM source-view rows into the sicossmodel domain types,
parsing tipos_grupos' comma-separated small-int encoding into []GroupTag.
*/
package extract

import (
	"strconv"
	"strings"

	"sicoss/internal/sicossmodel"
)

func toLegajos(rows []legajoRow) []sicossmodel.Legajo {
	out := make([]sicossmodel.Legajo, 0, len(rows))
	for _, r := range rows {
		out = append(out, sicossmodel.Legajo{
			NroLegaj:                sicossmodel.EmployeeId(r.NroLegaj),
			Cuil:                    r.Cuil,
			Apnom:                   r.Apnom,
			CodSituacion:            r.CodSituacion,
			CodCondicion:            r.CodCondicion,
			CodActividad:            r.CodActividad,
			CodZona:                 r.CodZona,
			CodModContratacion:      r.CodModContratacion,
			CodObraSocial:           r.CodObraSocial,
			Regimen:                 r.Regimen,
			Conyuge:                 r.Conyuge,
			Hijos:                   r.Hijos,
			Adherentes:              r.Adherentes,
			Licencia:                r.Licencia,
			TrabajadorConvencionado: r.TrabajadorConvencionado,
			ProvinciaLocalidad:      r.ProvinciaLocalidad,
		})
	}
	return out
}

func toConceptos(rows []conceptoRow) []sicossmodel.Concepto {
	out := make([]sicossmodel.Concepto, 0, len(rows))
	for _, r := range rows {
		out = append(out, sicossmodel.Concepto{
			NroLegaj:    sicossmodel.EmployeeId(r.NroLegaj),
			CodnConce:   r.CodnConce,
			ImppConce:   sicossmodel.MoneyFromFloat(r.ImppConce),
			TiposGrupos: parseGroupTags(r.TiposGrupos),
			TipoConce:   r.TipoConce,
			NroOrimp:    r.NroOrimp,
			Escalafon:   sicossmodel.Escalafon(r.Escalafon),
		})
	}
	return out
}

func toOtraActividad(rows []otraActividadRow) []sicossmodel.OtraActividad {
	out := make([]sicossmodel.OtraActividad, 0, len(rows))
	for _, r := range rows {
		out = append(out, sicossmodel.OtraActividad{
			NroLegaj:           sicossmodel.EmployeeId(r.NroLegaj),
			ImporteJubilatorio: sicossmodel.MoneyFromFloat(r.ImporteJubilatorio),
			ImporteOtros:       sicossmodel.MoneyFromFloat(r.ImporteOtros),
		})
	}
	return out
}

func toObraSocialCodes(rows []obraSocialRow) []sicossmodel.ObraSocialCode {
	out := make([]sicossmodel.ObraSocialCode, 0, len(rows))
	for _, r := range rows {
		out = append(out, sicossmodel.ObraSocialCode{
			NroLegaj: sicossmodel.EmployeeId(r.NroLegaj),
			CodOS:    r.CodOS,
		})
	}
	return out
}

// parseGroupTags parses the source view's comma-separated small-int
// encoding of tipos_grupos (e.g. "1,6,9") into a GroupTag slice. Malformed
// tokens are skipped rather than failing the whole row; Consolidator logs
// and ignores any tag it doesn't recognize regardless.
func parseGroupTags(raw string) []sicossmodel.GroupTag {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]sicossmodel.GroupTag, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		tags = append(tags, sicossmodel.GroupTag(n))
	}
	return tags
}
