/*
Package api - runtime configuration endpoint (spec.md §6.3)

FILE: internal/api/config_handler.go

ConfigStore holds the current runtime SicossConfig, seeded from
sicossconfig.Loader at startup and mutable via PUT /sicoss/config for the
remainder of the process's lifetime (config is read-only for the duration
of any one run, per spec.md §5 "Shared resources", but may change between
runs). ConfigHandler exposes it over GET/PUT.
*/
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	sicosserrors "sicoss/internal/errors"
	"sicoss/internal/sicossmodel"
)

// ConfigStore is a mutex-guarded holder for the process's current
// SicossConfig. Safe for concurrent reads/writes across requests.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg sicossmodel.SicossConfig
}

// NewConfigStore seeds the store with an initial configuration.
func NewConfigStore(initial sicossmodel.SicossConfig) *ConfigStore {
	return &ConfigStore{cfg: initial}
}

// Get returns a copy of the current configuration. Safe to call from any
// goroutine; this is what ProcessHandler's baseConfig callback wraps.
func (s *ConfigStore) Get() sicossmodel.SicossConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Set replaces the current configuration after validating it.
func (s *ConfigStore) Set(cfg sicossmodel.SicossConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return nil
}

// ConfigHandler implements GET/PUT /sicoss/config.
type ConfigHandler struct {
	store *ConfigStore
}

// NewConfigHandler builds a ConfigHandler.
func NewConfigHandler(store *ConfigStore) *ConfigHandler {
	return &ConfigHandler{store: store}
}

// RegisterRoutes wires /sicoss/config onto group.
func (h *ConfigHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/sicoss/config", h.Get)
	group.PUT("/sicoss/config", h.Put)
}

type configWire struct {
	TopeJubilatorioPatronal       string   `json:"tope_jubilatorio_patronal"`
	TopeJubilatorioPersonal       string   `json:"tope_jubilatorio_personal"`
	TopeOtrosAportesPersonales    string   `json:"tope_otros_aportes_personales"`
	TruncaTope                    bool     `json:"trunca_tope"`
	CheckLic                      bool     `json:"check_lic"`
	CheckRetro                    bool     `json:"check_retro"`
	CheckSinActivo                bool     `json:"check_sin_activo"`
	AsignacionFamiliar            bool     `json:"asignacion_familiar"`
	TrabajadorConvencionado        bool     `json:"trabajador_convencionado"`
	InformarBecarios               bool     `json:"informar_becarios"`
	ARTConTope                     bool     `json:"art_con_tope"`
	ConceptosNoRemunEnART           bool     `json:"conceptos_no_remun_en_art"`
	PorcAporteAdicionalJubilacion  string   `json:"porc_aporte_adicional_jubilacion"`
	DifferentialActivityCodes      []string `json:"differential_activity_codes"`
	VersionSistema                 string   `json:"version_sistema"`
}

// Get handles GET /sicoss/config.
func (h *ConfigHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, toWire(h.store.Get()))
}

// Put handles PUT /sicoss/config.
func (h *ConfigHandler) Put(c *gin.Context) {
	var wire configWire
	if err := c.ShouldBindJSON(&wire); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := fromWire(wire)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Set(cfg); err != nil {
		c.JSON(sicosserrors.GetHTTPStatus(sicosserrors.Wrap(err, sicosserrors.ErrInvalidConfig)), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toWire(cfg))
}

func toWire(cfg sicossmodel.SicossConfig) configWire {
	return configWire{
		TopeJubilatorioPatronal:       cfg.TopeJubilatorioPatronal.StringFixed(2),
		TopeJubilatorioPersonal:       cfg.TopeJubilatorioPersonal.StringFixed(2),
		TopeOtrosAportesPersonales:    cfg.TopeOtrosAportesPersonales.StringFixed(2),
		TruncaTope:                    cfg.TruncaTope,
		CheckLic:                      cfg.CheckLic,
		CheckRetro:                    cfg.CheckRetro,
		CheckSinActivo:                cfg.CheckSinActivo,
		AsignacionFamiliar:            cfg.AsignacionFamiliar,
		TrabajadorConvencionado:       cfg.TrabajadorConvencionado,
		InformarBecarios:              cfg.InformarBecarios,
		ARTConTope:                    cfg.ARTConTope,
		ConceptosNoRemunEnART:         cfg.ConceptosNoRemunEnART,
		PorcAporteAdicionalJubilacion: cfg.PorcAporteAdicionalJubilacion.StringFixed(2),
		DifferentialActivityCodes:     cfg.DifferentialActivityCodes,
		VersionSistema:                cfg.VersionSistema,
	}
}

func fromWire(w configWire) (sicossmodel.SicossConfig, error) {
	tjp, err := sicossmodel.ParseMoney(w.TopeJubilatorioPatronal)
	if err != nil {
		return sicossmodel.SicossConfig{}, err
	}
	tjper, err := sicossmodel.ParseMoney(w.TopeJubilatorioPersonal)
	if err != nil {
		return sicossmodel.SicossConfig{}, err
	}
	toa, err := sicossmodel.ParseMoney(w.TopeOtrosAportesPersonales)
	if err != nil {
		return sicossmodel.SicossConfig{}, err
	}
	porc, err := sicossmodel.ParseMoney(w.PorcAporteAdicionalJubilacion)
	if err != nil {
		return sicossmodel.SicossConfig{}, err
	}
	return sicossmodel.SicossConfig{
		TopeJubilatorioPatronal:       tjp,
		TopeJubilatorioPersonal:       tjper,
		TopeOtrosAportesPersonales:    toa,
		TruncaTope:                    w.TruncaTope,
		CheckLic:                      w.CheckLic,
		CheckRetro:                    w.CheckRetro,
		CheckSinActivo:                w.CheckSinActivo,
		AsignacionFamiliar:            w.AsignacionFamiliar,
		TrabajadorConvencionado:       w.TrabajadorConvencionado,
		InformarBecarios:              w.InformarBecarios,
		ARTConTope:                    w.ARTConTope,
		ConceptosNoRemunEnART:         w.ConceptosNoRemunEnART,
		PorcAporteAdicionalJubilacion: porc,
		DifferentialActivityCodes:     w.DifferentialActivityCodes,
		VersionSistema:                w.VersionSistema,
	}, nil
}
