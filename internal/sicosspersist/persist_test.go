package sicosspersist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sicoss/internal/sicossmodel"
)

func setupPersistTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&sicossTableRow{}))
	return db
}

func validRecord(nroLegaj int) sicossmodel.SicossRecord {
	return sicossmodel.SicossRecord{
		PeriodoFiscal:       "202601",
		Cuil:                "20123456789",
		Apnom:                "Doe, John",
		CodSituacion:        "1",
		RemTotal:            sicossmodel.MoneyFromFloat(1000),
		RemImpo1:            sicossmodel.MoneyFromFloat(1000),
		VersionSistema:      "1.0.0",
		MetodoProcesamiento: "sicosspipeline",
		FechaProcesamiento:  time.Unix(1, 0),
	}
}

func TestPersist_WritesAllRowsInOneTransaction(t *testing.T) {
	db := setupPersistTestDB(t)
	period, err := sicossmodel.NewFiscalPeriod(2026, 1)
	require.NoError(t, err)

	records := []sicossmodel.SicossRecord{validRecord(1), validRecord(2), validRecord(3)}
	stats, err := New(db, 1000).Persist(context.Background(), period, records)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.LegajosGuardados)
	assert.Equal(t, "suc.afip_mapuche_sicoss", stats.TablaDestino)
	assert.Equal(t, "202601", stats.Periodo)

	var count int64
	require.NoError(t, db.Model(&sicossTableRow{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

// TestPersist_RollsBackWholeBatchOnOneBadRow mirrors spec.md's S6 scenario:
// 100 rows, one with a malformed cuil, zero rows committed.
func TestPersist_RollsBackWholeBatchOnOneBadRow(t *testing.T) {
	db := setupPersistTestDB(t)
	period, err := sicossmodel.NewFiscalPeriod(2026, 1)
	require.NoError(t, err)

	records := make([]sicossmodel.SicossRecord, 0, 100)
	for i := 0; i < 100; i++ {
		records = append(records, validRecord(i))
	}
	records[57].Cuil = "2012345678" // 10 digits, one short

	_, err = New(db, 1000).Persist(context.Background(), period, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 57")

	var count int64
	require.NoError(t, db.Model(&sicossTableRow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPersist_EmptyInputIsNoop(t *testing.T) {
	db := setupPersistTestDB(t)
	period, err := sicossmodel.NewFiscalPeriod(2026, 1)
	require.NoError(t, err)

	stats, err := New(db, 1000).Persist(context.Background(), period, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.LegajosGuardados)
}

func TestPersist_BatchSizeClampedToMinimum(t *testing.T) {
	p := New(nil, 10)
	assert.Equal(t, 1000, p.batchSize)
}

func TestValidateRecord_ApnomTruncatedNotRejected(t *testing.T) {
	rec := validRecord(1)
	rec.Apnom = "this name is deliberately longer than forty characters for sure"
	row, err := toTableRow(rec)
	require.NoError(t, err)
	assert.Len(t, row.Apnom, apnomMaxLen)
}

func TestValidateRecord_RejectsShortCuil(t *testing.T) {
	rec := validRecord(1)
	rec.Cuil = "123"
	_, err := toTableRow(rec)
	assert.Error(t, err)
}
