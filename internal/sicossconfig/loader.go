/*
Package sicossconfig - SICOSS Configuration Loader

==============================================================================
FILE: internal/sicossconfig/loader.go
==============================================================================

DESCRIPTION:
    Loads SicossConfig from JSON files in a config directory. Uses a master
    control file (main.json) that references section files for modular
    configuration management, the same pattern the payroll config loader
    this package is adapted from uses.

CONFIG DIRECTORY STRUCTURE:
    configs/
    └── sicoss/
        ├── main.json               (master control file)
        ├── caps.json                (topes + trunca_tope)
        ├── switches.json            (validator/calculator booleans)
        └── differential_codes.json  (differential-category activity codes)

==============================================================================
*/
package sicossconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sicoss/internal/sicossmodel"
)

// MasterConfig is the main control JSON file: it names the section files to
// load and carries run-wide metadata.
type MasterConfig struct {
	Version     string            `json:"version"`
	Name        string            `json:"name"`
	LastUpdated string            `json:"last_updated"`
	ConfigFiles map[string]string `json:"config_files"`
}

// capsSection mirrors configs/sicoss/caps.json.
type capsSection struct {
	TopeJubilatorioPatronal       string `json:"tope_jubilatorio_patronal"`
	TopeJubilatorioPersonal       string `json:"tope_jubilatorio_personal"`
	TopeOtrosAportesPersonales    string `json:"tope_otros_aportes_personales"`
	TruncaTope                    bool   `json:"trunca_tope"`
	PorcAporteAdicionalJubilacion string `json:"porc_aporte_adicional_jubilacion"`
}

// switchesSection mirrors configs/sicoss/switches.json.
type switchesSection struct {
	CheckLic                bool   `json:"check_lic"`
	CheckRetro              bool   `json:"check_retro"`
	CheckSinActivo          bool   `json:"check_sin_activo"`
	AsignacionFamiliar      bool   `json:"asignacion_familiar"`
	TrabajadorConvencionado bool   `json:"trabajador_convencionado"`
	InformarBecarios        bool   `json:"informar_becarios"`
	ARTConTope              bool   `json:"art_con_tope"`
	ConceptosNoRemunEnART   bool   `json:"conceptos_no_remun_en_art"`
	VersionSistema          string `json:"version_sistema"`
}

// differentialSection mirrors configs/sicoss/differential_codes.json.
type differentialSection struct {
	ActivityCodes []string `json:"activity_codes"`
}

// Loader loads a SicossConfig from a directory of JSON files.
type Loader struct {
	configDir string
	master    *MasterConfig
}

// NewLoader builds a Loader rooted at configDir (e.g. "configs/sicoss").
func NewLoader(configDir string) *Loader {
	return &Loader{configDir: configDir}
}

// Load reads the master file and every section it references, validates the
// assembled SicossConfig, and returns it.
func (l *Loader) Load() (sicossmodel.SicossConfig, error) {
	masterPath := filepath.Join(l.configDir, "main.json")
	if err := l.loadMaster(masterPath); err != nil {
		return sicossmodel.SicossConfig{}, fmt.Errorf("sicossconfig: error loading master config: %w", err)
	}

	var caps capsSection
	if err := l.loadSection("caps", &caps); err != nil {
		return sicossmodel.SicossConfig{}, err
	}
	var switches switchesSection
	if err := l.loadSection("switches", &switches); err != nil {
		return sicossmodel.SicossConfig{}, err
	}
	var differential differentialSection
	if err := l.loadSection("differential_codes", &differential); err != nil {
		return sicossmodel.SicossConfig{}, err
	}

	cfg, err := assemble(caps, switches, differential)
	if err != nil {
		return sicossmodel.SicossConfig{}, fmt.Errorf("sicossconfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return sicossmodel.SicossConfig{}, fmt.Errorf("sicossconfig: configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadMaster(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading master config file %s: %w", path, err)
	}
	var master MasterConfig
	if err := json.Unmarshal(data, &master); err != nil {
		return fmt.Errorf("parsing master config JSON: %w", err)
	}
	l.master = &master
	return nil
}

func (l *Loader) loadSection(name string, target interface{}) error {
	if l.master == nil || l.master.ConfigFiles == nil {
		return fmt.Errorf("sicossconfig: master config not loaded")
	}
	relPath, ok := l.master.ConfigFiles[name]
	if !ok {
		return fmt.Errorf("sicossconfig: section %q not referenced in master config", name)
	}
	path := relPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.configDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("sicossconfig: reading section file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("sicossconfig: parsing section file %s: %w", path, err)
	}
	return nil
}

// assemble converts the raw JSON sections into the immutable SicossConfig.
func assemble(caps capsSection, switches switchesSection, differential differentialSection) (sicossmodel.SicossConfig, error) {
	topePatronal, err := sicossmodel.ParseMoney(orDefault(caps.TopeJubilatorioPatronal, "0"))
	if err != nil {
		return sicossmodel.SicossConfig{}, fmt.Errorf("tope_jubilatorio_patronal: %w", err)
	}
	topePersonal, err := sicossmodel.ParseMoney(orDefault(caps.TopeJubilatorioPersonal, "0"))
	if err != nil {
		return sicossmodel.SicossConfig{}, fmt.Errorf("tope_jubilatorio_personal: %w", err)
	}
	topeOtros, err := sicossmodel.ParseMoney(orDefault(caps.TopeOtrosAportesPersonales, "0"))
	if err != nil {
		return sicossmodel.SicossConfig{}, fmt.Errorf("tope_otros_aportes_personales: %w", err)
	}
	porcAdicional, err := sicossmodel.ParseMoney(orDefault(caps.PorcAporteAdicionalJubilacion, "0"))
	if err != nil {
		return sicossmodel.SicossConfig{}, fmt.Errorf("porc_aporte_adicional_jubilacion: %w", err)
	}

	return sicossmodel.SicossConfig{
		TopeJubilatorioPatronal:       topePatronal,
		TopeJubilatorioPersonal:       topePersonal,
		TopeOtrosAportesPersonales:    topeOtros,
		TruncaTope:                    caps.TruncaTope,
		CheckLic:                      switches.CheckLic,
		CheckRetro:                    switches.CheckRetro,
		CheckSinActivo:                switches.CheckSinActivo,
		AsignacionFamiliar:            switches.AsignacionFamiliar,
		TrabajadorConvencionado:       switches.TrabajadorConvencionado,
		InformarBecarios:              switches.InformarBecarios,
		ARTConTope:                    switches.ARTConTope,
		ConceptosNoRemunEnART:         switches.ConceptosNoRemunEnART,
		PorcAporteAdicionalJubilacion: porcAdicional,
		DifferentialActivityCodes:     differential.ActivityCodes,
		VersionSistema:                switches.VersionSistema,
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
