/*
Package sicossaggregate - Aggregator (spec.md §4.5)

FILE: internal/sicossaggregate/aggregate.go

Pure sum over the surviving record set producing the totals block. Must be
associative and independent of employee order (P3: partition invariance) --
Totals.Add is the single reduction primitive every caller, sharded or not,
goes through.
*/
package sicossaggregate

import "sicoss/internal/sicossmodel"

// Totals is the run-level sum of every Imponible/remunerative base across
// the surviving (valid=true) employee set.
type Totals struct {
	Count                    int
	Bruto                    sicossmodel.Money
	RemTotal                 sicossmodel.Money
	Imponible1               sicossmodel.Money
	Imponible4               sicossmodel.Money
	Imponible5               sicossmodel.Money
	Imponible6               sicossmodel.Money
	Imponible9               sicossmodel.Money
	SAC                      sicossmodel.Money
	NoRemun                  sicossmodel.Money
	ImporteImponiblePatronal sicossmodel.Money
}

// Add folds other into t, returning the combined totals. Associative and
// commutative: the only operation Aggregator performs, which is what makes
// partition invariance (P3) hold for free regardless of shard boundaries.
func (t Totals) Add(other Totals) Totals {
	return Totals{
		Count:                    t.Count + other.Count,
		Bruto:                    t.Bruto.Add(other.Bruto),
		RemTotal:                 t.RemTotal.Add(other.RemTotal),
		Imponible1:               t.Imponible1.Add(other.Imponible1),
		Imponible4:               t.Imponible4.Add(other.Imponible4),
		Imponible5:               t.Imponible5.Add(other.Imponible5),
		Imponible6:               t.Imponible6.Add(other.Imponible6),
		Imponible9:               t.Imponible9.Add(other.Imponible9),
		SAC:                      t.SAC.Add(other.SAC),
		NoRemun:                  t.NoRemun.Add(other.NoRemun),
		ImporteImponiblePatronal: t.ImporteImponiblePatronal.Add(other.ImporteImponiblePatronal),
	}
}

// fromRow folds a single surviving row into a one-element Totals.
func fromRow(row sicossmodel.EmployeeRow) Totals {
	return Totals{
		Count:                    1,
		Bruto:                    row.ImporteBruto,
		RemTotal:                 row.RemTotal(),
		Imponible1:                row.Imponible1,
		Imponible4:                row.Imponible4,
		Imponible5:                row.Imponible5,
		Imponible6:                row.Imponible6,
		Imponible9:                row.Imponible9,
		SAC:                       row.SAC(),
		NoRemun:                   row.NoRemun(),
		ImporteImponiblePatronal:  row.ImporteImponiblePatronal,
	}
}

// Aggregator implements §4.5.
type Aggregator struct{}

// New builds an Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Aggregate sums every valid=true row in rows. Invalid rows are skipped;
// callers that need per-shard totals can call this once per shard and
// combine the results with Totals.Add in any order.
func (a *Aggregator) Aggregate(rows []sicossmodel.EmployeeRow) Totals {
	total := Totals{}
	for _, row := range rows {
		if !row.Valid {
			continue
		}
		total = total.Add(fromRow(row))
	}
	return total
}
