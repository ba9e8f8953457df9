package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/cablemrp/internal/domain"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	// allow skipping docker-backed tests in CI/dev
	if os.Getenv("DOCKER_DISABLED") == "1" {
		os.Exit(0)
	}

	pool, err := dockertest.NewPool("")
	if err != nil || pool.Client.Ping() != nil {
		fmt.Println("docker no disponible, se omiten tests de postgres")
		os.Exit(0)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env:        []string{"POSTGRES_PASSWORD=postgres", "POSTGRES_DB=cablemrp"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		fmt.Printf("no se pudo iniciar postgres: %v\n", err)
		os.Exit(1)
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("host=localhost user=postgres password=postgres dbname=cablemrp port=%s sslmode=disable", resource.GetPort("5432/tcp"))
	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return err
		}
		testDB = db
		return nil
	}); err != nil {
		_ = pool.Purge(resource)
		fmt.Printf("postgres no respondió: %v\n", err)
		os.Exit(1)
	}
	if err := testDB.AutoMigrate(&domain.CompositionRecord{}, &domain.ReelCapacityEntry{}); err != nil {
		_ = pool.Purge(resource)
		fmt.Printf("migrate: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	_ = pool.Purge(resource)
	os.Exit(code)
}

func cleanTables(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Exec("DELETE FROM composition_records").Error)
	require.NoError(t, testDB.Exec("DELETE FROM reel_capacity_entries").Error)
}

func TestCompositionRepo_SaveAndList(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewCompositionRepo(testDB)

	first := []domain.CompositionRecord{
		{Code: "trn70", Description: "Triplex 70", Gauge: "70", Active: true,
			PerMeter: map[domain.MaterialKind]float64{domain.Aluminum: 0.6, domain.PE: 0.2}, TotalPerMeter: 0.8},
		{Code: "DUP16", Gauge: "16", Active: true,
			PerMeter: map[domain.MaterialKind]float64{domain.Aluminum: 0.09, domain.PigUVBlack: 0.001}, TotalPerMeter: 0.091},
	}
	require.NoError(t, repo.SaveAll(ctx, first))

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "DUP16", list[0].Code)
	assert.Equal(t, "TRN70", list[1].Code)
	assert.InDelta(t, 0.6, list[1].PerMeter[domain.Aluminum], 1e-12)
	assert.NoError(t, list[1].Validate())

	got, err := repo.FindByCode(ctx, " trn70")
	require.NoError(t, err)
	assert.Equal(t, "Triplex 70", got.Description)

	// reimportar un código desactiva la versión anterior
	require.NoError(t, repo.SaveAll(ctx, []domain.CompositionRecord{
		{Code: "TRN70", Active: true, PerMeter: map[domain.MaterialKind]float64{domain.Aluminum: 0.61}, TotalPerMeter: 0.61},
	}))
	list, err = repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.InDelta(t, 0.61, list[1].PerMeter[domain.Aluminum], 1e-12)

	require.NoError(t, repo.Deactivate(ctx, "dup16"))
	assert.ErrorIs(t, repo.Deactivate(ctx, "dup16"), domain.ErrNotFound)
	_, err = repo.FindByCode(ctx, "DUP16")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReelCapacityRepo_SaveAndList(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewReelCapacityRepo(testDB)

	require.NoError(t, repo.SaveAll(ctx, []domain.ReelCapacityEntry{
		{Category: "multiplex", Gauge: "2,5", ReelName: "B-630", CapacityMeters: 630},
		{Category: "multiplex", Gauge: "2,5", ReelName: "B-260", CapacityMeters: 260},
		{Category: "unipolar", Gauge: "10", ReelName: "R-100", CapacityMeters: 100},
	}))

	list, err := repo.ListFor(ctx, "MULTIPLEX", "2.5")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B-630", list[0].ReelName)
	assert.Equal(t, 0, list[0].Position)
	assert.Equal(t, 1, list[1].Position)

	// reemplaza sólo el par importado
	require.NoError(t, repo.SaveAll(ctx, []domain.ReelCapacityEntry{
		{Category: "MULTIPLEX", Gauge: "2.5", ReelName: "B-1000", CapacityMeters: 1000},
	}))
	list, err = repo.ListFor(ctx, "multiplex", "2,5")
	require.NoError(t, err)
	require.Len(t, list, 1)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"MULTIPLEX", "UNIPOLAR"}, cats)

	empty, err := repo.ListFor(ctx, "QUADRUPLEX", "95")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
