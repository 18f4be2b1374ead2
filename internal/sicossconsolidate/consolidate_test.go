package sicossconsolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sicoss/internal/sicossmodel"
)

func money(v string) sicossmodel.Money {
	m, err := sicossmodel.ParseMoney(v)
	if err != nil {
		panic(err)
	}
	return m
}

func TestDestinationsFor_MappingTable(t *testing.T) {
	cases := []struct {
		name  string
		group sicossmodel.GroupTag
		want  []destination
	}{
		{"sac", sicossmodel.GroupSAC, []destination{destSAC}},
		{"horas extras", sicossmodel.GroupHorasExtras, []destination{destHorasExtras}},
		{"sac docente feeds both", sicossmodel.GroupSACDocente, []destination{destSAC, destSACDoce}},
		{"investigador base", sicossmodel.GroupInvestigadorBase, []destination{destInvestigador}},
		{"investigador sub a", sicossmodel.GroupInvestigadorSubA, []destination{destInvestigador}},
		{"unrecognized", sicossmodel.GroupTag(999), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := destinationsFor(tc.group)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConsolidate_SumsPerEmployeeAndDestination(t *testing.T) {
	legajos := []sicossmodel.Legajo{
		{NroLegaj: 1},
		{NroLegaj: 2}, // no concepts: all-zero row
	}
	conceptos := []sicossmodel.Concepto{
		{NroLegaj: 1, CodnConce: 100, ImppConce: money("1000"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupSAC}},
		{NroLegaj: 1, CodnConce: 101, ImppConce: money("500"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupHorasExtras}},
		{NroLegaj: 1, CodnConce: 102, ImppConce: money("200"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupNoRemun}},
		// a docente SAC concept should double-feed SAC and SACDoce
		{NroLegaj: 1, CodnConce: 103, ImppConce: money("300"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupSACDocente}},
	}

	c := New(nil)
	rows, err := c.Consolidate(legajos, conceptos)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var emp1, emp2 sicossmodel.EmployeeRow
	for _, r := range rows {
		switch r.Legajo.NroLegaj {
		case 1:
			emp1 = r
		case 2:
			emp2 = r
		}
	}

	assert.True(t, emp1.ImporteSAC.Equal(money("1300")), "SAC should include both the plain SAC concept and the docente feed")
	assert.True(t, emp1.ImporteSACDoce.Equal(money("300")))
	assert.True(t, emp1.ImporteHorasExtras.Equal(money("500")))
	assert.True(t, emp1.ImporteNoRemun.Equal(money("200")))
	assert.True(t, emp1.ImporteImponiblePatronal.Equal(money("1800")), "patronal base = sac+horas extras (non-remun excluded)")
	assert.True(t, emp1.Remuner78805.Equal(emp1.ImporteImponiblePatronal))
	assert.True(t, emp1.Imponible1.Equal(emp1.Remuner78805))
	assert.True(t, emp1.ImporteBruto.Equal(money("2000")), "bruto = patronal + no_remun")

	assert.True(t, emp2.ImporteImponiblePatronal.IsZero())
	assert.True(t, emp2.ImporteBruto.IsZero())
}

func TestConsolidate_UnrecognizedGroupIgnored(t *testing.T) {
	legajos := []sicossmodel.Legajo{{NroLegaj: 1}}
	conceptos := []sicossmodel.Concepto{
		{NroLegaj: 1, CodnConce: 1, ImppConce: money("100"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupTag(999)}},
	}
	c := New(nil)
	rows, err := c.Consolidate(legajos, conceptos)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ImporteImponiblePatronal.IsZero())
}

// TestConsolidate_MassConservation checks the contract that every mapped
// group's impp_conce is fully reflected across the destination columns it
// feeds -- no amount is dropped or duplicated beyond its declared mapping.
func TestConsolidate_MassConservation(t *testing.T) {
	legajos := []sicossmodel.Legajo{{NroLegaj: 7}}
	conceptos := []sicossmodel.Concepto{
		{NroLegaj: 7, CodnConce: 1, ImppConce: money("111.11"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupSAC}},
		{NroLegaj: 7, CodnConce: 2, ImppConce: money("222.22"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupVacaciones}},
		{NroLegaj: 7, CodnConce: 3, ImppConce: money("333.33"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupPremios}},
		{NroLegaj: 7, CodnConce: 4, ImppConce: money("444.44"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupAdicionales}},
		{NroLegaj: 7, CodnConce: 5, ImppConce: money("555.55"), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupBecario}},
	}

	c := New(nil)
	rows, err := c.Consolidate(legajos, conceptos)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]

	wantPatronal := money("111.11").Add(money("222.22")).Add(money("333.33")).Add(money("444.44")).Add(money("555.55"))
	assert.True(t, row.ImporteImponiblePatronal.Equal(wantPatronal))
}
