/*
Package sicossconsolidate - ConceptConsolidator (spec.md §4.1)

FILE: internal/sicossconsolidate/consolidate.go

Folds the Conceptos line-item stream into per-employee consolidated
columns, then derives the base remunerative/non-remunerative sums and
left-joins the result onto Legajos.
*/
package sicossconsolidate

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"sicoss/internal/sicossmodel"
)

// Consolidator implements spec.md §4.1.
type Consolidator struct {
	log *logrus.Logger
}

// New builds a Consolidator. A nil logger falls back to logrus's default.
func New(log *logrus.Logger) *Consolidator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Consolidator{log: log}
}

// accumulator holds the per-employee destination-column sums built up
// while exploding the Conceptos stream (step 1-3 of §4.1).
type accumulator map[destination]sicossmodel.Money

func newAccumulator() accumulator {
	return make(accumulator)
}

func (a accumulator) add(d destination, amount sicossmodel.Money) {
	a[d] = a[d].Add(amount)
}

func (a accumulator) get(d destination) sicossmodel.Money {
	return a[d]
}

// groupSet tracks which group tags a concept stream touched per employee, in
// first-seen order, de-duplicated.
type groupSet struct {
	seen  map[sicossmodel.GroupTag]bool
	order []sicossmodel.GroupTag
}

func newGroupSet() *groupSet {
	return &groupSet{seen: make(map[sicossmodel.GroupTag]bool)}
}

func (g *groupSet) add(tag sicossmodel.GroupTag) {
	if g.seen[tag] {
		return
	}
	g.seen[tag] = true
	g.order = append(g.order, tag)
}

// Consolidate runs steps 1-5 of §4.1: explode each concept by its group
// tags, sum into destination columns per employee, derive the base sums,
// and left-join onto legajos (employees with no concepts receive all-zero
// rows).
func (c *Consolidator) Consolidate(legajos []sicossmodel.Legajo, conceptos []sicossmodel.Concepto) ([]sicossmodel.EmployeeRow, error) {
	sums := make(map[sicossmodel.EmployeeId]accumulator)
	groups := make(map[sicossmodel.EmployeeId]*groupSet)

	for _, concepto := range conceptos {
		acc, ok := sums[concepto.NroLegaj]
		if !ok {
			acc = newAccumulator()
			sums[concepto.NroLegaj] = acc
		}
		gs, ok := groups[concepto.NroLegaj]
		if !ok {
			gs = newGroupSet()
			groups[concepto.NroLegaj] = gs
		}

		// Step 1: explode by the concept's tag set.
		for _, group := range concepto.TiposGrupos {
			dests := destinationsFor(group)
			if dests == nil {
				c.log.WithFields(logrus.Fields{
					"nro_legaj":  concepto.NroLegaj,
					"codn_conce": concepto.CodnConce,
					"group":      group,
				}).Warn("sicossconsolidate: unrecognized group tag, ignoring")
				continue
			}
			gs.add(group)
			// Step 2-3: sum impp_conce into every mapped destination.
			for _, d := range dests {
				acc.add(d, concepto.ImppConce)
			}
		}
	}

	rows := make([]sicossmodel.EmployeeRow, 0, len(legajos))
	for _, legajo := range legajos {
		acc, ok := sums[legajo.NroLegaj]
		if !ok {
			acc = newAccumulator() // all-zero aggregates
		}

		var contributingGroups []sicossmodel.GroupTag
		if gs, ok := groups[legajo.NroLegaj]; ok {
			contributingGroups = gs.order
		}

		row := sicossmodel.EmployeeRow{
			Legajo:                        legajo,
			ContributingGroups:            contributingGroups,
			ImporteSAC:                    acc.get(destSAC),
			ImporteSACDoce:                acc.get(destSACDoce),
			ImporteHorasExtras:            acc.get(destHorasExtras),
			ImporteZonaDesfavorable:       acc.get(destZonaDesfavorable),
			ImporteVacaciones:             acc.get(destVacaciones),
			ImportePremios:                acc.get(destPremios),
			ImporteAdicionales:            acc.get(destAdicionales),
			ImporteImponibleBecario:       acc.get(destBecario),
			ImporteNoRemun:                acc.get(destNoRemun),
			ImporteSeguroVida:             acc.get(destSeguroVida),
			ImporteInvestigador:           acc.get(destInvestigador),
			ImporteAsignacionesFamiliares: acc.get(destAsignacionesFamiliares),
		}

		// Step 4: derive the consolidated base columns.
		row.ImporteImponiblePatronal = row.ImporteSAC.
			Add(row.ImporteHorasExtras).
			Add(row.ImporteZonaDesfavorable).
			Add(row.ImporteVacaciones).
			Add(row.ImportePremios).
			Add(row.ImporteAdicionales).
			Add(row.ImporteImponibleBecario)
		row.Remuner78805 = row.ImporteImponiblePatronal
		row.ImporteSACPatronal = row.ImporteSAC
		row.ImporteImponibleSinSAC = row.ImporteImponiblePatronal.Sub(row.ImporteSACPatronal)
		row.ImporteBruto = row.ImporteImponiblePatronal.Add(row.ImporteNoRemun)
		row.Imponible1 = row.Remuner78805

		rows = append(rows, row)
	}

	if err := c.checkComplete(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// checkComplete enforces §4.1's ConsolidationIncomplete failure mode: a
// required column missing after aggregation is fatal.
func (c *Consolidator) checkComplete(rows []sicossmodel.EmployeeRow) error {
	for _, row := range rows {
		if row.ImporteImponiblePatronal.IsZero() && row.Remuner78805.IsZero() && row.ImporteImponibleSinSAC.IsZero() && row.ImporteBruto.IsZero() {
			continue // legitimately all-zero employee, not a missing column
		}
		expected := row.ImporteSAC.
			Add(row.ImporteHorasExtras).
			Add(row.ImporteZonaDesfavorable).
			Add(row.ImporteVacaciones).
			Add(row.ImportePremios).
			Add(row.ImporteAdicionales).
			Add(row.ImporteImponibleBecario)
		if !expected.Equal(row.ImporteImponiblePatronal) {
			return fmt.Errorf("sicossconsolidate: ConsolidationIncomplete: nro_legaj %d missing a required aggregate column", row.Legajo.NroLegaj)
		}
	}
	return nil
}
