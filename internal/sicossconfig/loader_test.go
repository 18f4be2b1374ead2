package sicossconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sicoss/internal/sicossmodel"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeFullFixtureSet(t *testing.T, dir string) {
	writeFixture(t, dir, "main.json", `{
		"version": "1.0.0",
		"name": "test",
		"config_files": {
			"caps": "caps.json",
			"switches": "switches.json",
			"differential_codes": "differential_codes.json"
		}
	}`)
	writeFixture(t, dir, "caps.json", `{
		"tope_jubilatorio_patronal": "1000000.00",
		"tope_jubilatorio_personal": "900000.00",
		"tope_otros_aportes_personales": "800000.00",
		"trunca_tope": true,
		"porc_aporte_adicional_jubilacion": "0.01"
	}`)
	writeFixture(t, dir, "switches.json", `{
		"check_lic": true,
		"check_sin_activo": true,
		"asignacion_familiar": true,
		"version_sistema": "9.9.9"
	}`)
	writeFixture(t, dir, "differential_codes.json", `{
		"activity_codes": ["DIFF-A", "DIFF-B"]
	}`)
}

func TestLoad_AssemblesFullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFullFixtureSet(t, dir)

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.True(t, cfg.TopeJubilatorioPatronal.Equal(mustMoney("1000000.00")))
	assert.True(t, cfg.TopeJubilatorioPersonal.Equal(mustMoney("900000.00")))
	assert.True(t, cfg.TruncaTope)
	assert.True(t, cfg.CheckLic)
	assert.True(t, cfg.CheckSinActivo)
	assert.Equal(t, "9.9.9", cfg.VersionSistema)
	assert.ElementsMatch(t, []string{"DIFF-A", "DIFF-B"}, cfg.DifferentialActivityCodes)
	assert.True(t, cfg.IsDifferentialActivity("DIFF-A"))
	assert.False(t, cfg.IsDifferentialActivity("OTHER"))
}

func TestLoad_MissingMasterFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}

func TestLoad_MasterMissingSectionReference(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "main.json", `{"version":"1.0.0","config_files":{"caps":"caps.json"}}`)
	writeFixture(t, dir, "caps.json", `{"tope_jubilatorio_patronal":"1.00"}`)
	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}

func TestLoad_NegativeCapFailsValidation(t *testing.T) {
	dir := t.TempDir()
	writeFullFixtureSet(t, dir)
	writeFixture(t, dir, "caps.json", `{
		"tope_jubilatorio_patronal": "-1.00",
		"tope_jubilatorio_personal": "900000.00",
		"tope_otros_aportes_personales": "800000.00",
		"trunca_tope": true,
		"porc_aporte_adicional_jubilacion": "0.01"
	}`)

	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}

func mustMoney(s string) sicossmodel.Money {
	m, err := sicossmodel.ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}
