package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sicoss/internal/extract"
	"sicoss/internal/sicosspersist"
	"sicoss/internal/sicosspipeline"
	"sicoss/internal/sicossmodel"
)

type stubExtractor struct {
	result extract.Result
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, period sicossmodel.FiscalPeriod, nroLegajo *sicossmodel.EmployeeId) (extract.Result, error) {
	return s.result, s.err
}

func setupProcessTest(t *testing.T) (*gin.Engine, *sicosspipeline.PeriodLock) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE "suc.afip_mapuche_sicoss" (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		periodo_fiscal TEXT, cuil TEXT, apnom TEXT,
		conyuge BOOL, cant_hijos INT, cant_adh INT,
		cod_situacion TEXT, cod_cond TEXT, cod_act TEXT, cod_zona TEXT,
		porc_aporte REAL, cod_mod_cont TEXT, cod_os TEXT,
		rem_total REAL, rem_impo1 REAL, rem_impo2 REAL, rem_impo3 REAL,
		rem_impo4 REAL, rem_impo5 REAL, rem_impo6 REAL, rem_impo7 REAL,
		rem_impo8 REAL, rem_impo9 REAL, sac REAL, no_remun REAL,
		tipo_de_operacion INT, prioridad_tipo_de_actividad INT,
		trabajador_convencionado TEXT,
		sit_rev1 TEXT, sit_rev2 TEXT, sit_rev3 TEXT,
		dia_ini_sit_rev1 INT, dia_ini_sit_rev2 INT, dia_ini_sit_rev3 INT,
		fecha_procesamiento DATETIME, version_sistema TEXT, metodo_procesamiento TEXT
	)`).Error)
	persister := sicosspersist.New(db, 1000)

	legajo := sicossmodel.Legajo{NroLegaj: 1, Cuil: "20123456789", Apnom: "Doe, Jane", CodSituacion: "1"}
	concepto := sicossmodel.Concepto{NroLegaj: 1, CodnConce: 1, ImppConce: sicossmodel.MoneyFromFloat(500000), TiposGrupos: []sicossmodel.GroupTag{sicossmodel.GroupSAC}}
	stub := &stubExtractor{result: extract.Result{
		Legajos:   []sicossmodel.Legajo{legajo},
		Conceptos: []sicossmodel.Concepto{concepto},
	}}

	pipeline := sicosspipeline.New(stub, persister, 4, logrus.New())
	lock := sicosspipeline.NewPeriodLock()

	store := NewConfigStore(sicossmodel.SicossConfig{
		TopeJubilatorioPatronal:    sicossmodel.MoneyFromFloat(1_000_000),
		TopeJubilatorioPersonal:    sicossmodel.MoneyFromFloat(1_000_000),
		TopeOtrosAportesPersonales: sicossmodel.MoneyFromFloat(1_000_000),
		TruncaTope:                 true,
		VersionSistema:             "1.0.0",
	})

	engine := gin.New()
	group := engine.Group("")
	NewProcessHandler(pipeline, lock, store.Get, logrus.New()).RegisterRoutes(group)
	NewConfigHandler(store).RegisterRoutes(group)
	group.GET("/health", NewHealthHandler(db).HealthCheck)

	return engine, lock
}

func doProcess(t *testing.T, engine *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/sicoss/process", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestProcess_HappyPathReturnsCompleto(t *testing.T) {
	engine, _ := setupProcessTest(t)
	rec := doProcess(t, engine, map[string]interface{}{
		"periodo_fiscal":    "202601",
		"formato_respuesta": "completo",
		"guardar_en_bd":     true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Legajos, 1)
	assert.Equal(t, 1, resp.Data.Totales.Count)
}

func TestProcess_SoloTotalesOmitsLegajos(t *testing.T) {
	engine, _ := setupProcessTest(t)
	rec := doProcess(t, engine, map[string]interface{}{
		"periodo_fiscal":    "202601",
		"formato_respuesta": "solo_totales",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Legajos)
	assert.Nil(t, resp.Data.Estadisticas)
}

func TestProcess_MissingPeriodoFiscalIsBadRequest(t *testing.T) {
	engine, _ := setupProcessTest(t)
	rec := doProcess(t, engine, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcess_PeriodBusyReturns409(t *testing.T) {
	engine, lock := setupProcessTest(t)
	require.NoError(t, lock.Acquire("202601"))
	defer lock.Release("202601")

	rec := doProcess(t, engine, map[string]interface{}{"periodo_fiscal": "202601"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProcess_ExportXlsxReturnsWorkbook(t *testing.T) {
	engine, _ := setupProcessTest(t)
	body, err := json.Marshal(map[string]interface{}{"periodo_fiscal": "202601"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/sicoss/process?export=xlsx", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestProcess_ExportUnknownFormatIsBadRequest(t *testing.T) {
	engine, _ := setupProcessTest(t)
	body, err := json.Marshal(map[string]interface{}{"periodo_fiscal": "202601"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/sicoss/process?export=csv", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfig_GetThenPutRoundTrips(t *testing.T) {
	engine, _ := setupProcessTest(t)

	getRec := httptest.NewRecorder()
	engine.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/sicoss/config", nil))
	require.Equal(t, http.StatusOK, getRec.Code)

	var wire configWire
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &wire))
	wire.TruncaTope = false

	b, err := json.Marshal(wire)
	require.NoError(t, err)
	putReq := httptest.NewRequest(http.MethodPut, "/sicoss/config", bytes.NewReader(b))
	putReq.Header.Set("Content-Type", "application/json")
	putRec := httptest.NewRecorder()
	engine.ServeHTTP(putRec, putReq)
	require.Equal(t, http.StatusOK, putRec.Code)

	var updated configWire
	require.NoError(t, json.Unmarshal(putRec.Body.Bytes(), &updated))
	assert.False(t, updated.TruncaTope)
}
