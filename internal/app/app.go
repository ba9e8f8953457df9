package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/cablemrp/internal/adapters/httpserver"
	"github.com/phenrril/cablemrp/internal/adapters/repo/postgres"
	"github.com/phenrril/cablemrp/internal/bom"
	"github.com/phenrril/cablemrp/internal/config"
	"github.com/phenrril/cablemrp/internal/domain"
	"github.com/phenrril/cablemrp/internal/usecase"
)

type App struct {
	DB           *gorm.DB
	Config       config.Config
	MaterialsUC  *usecase.MaterialsUC
	ReelUC       *usecase.ReelUC
	CatalogUC    *usecase.CatalogUC
	Compositions *postgres.CompositionRepo
	Reels        *postgres.ReelCapacityRepo
}

func NewApp(db *gorm.DB, cfg config.Config) (*App, error) {
	if err := bom.CheckPigmentTable(bom.PigmentBuckets); err != nil {
		return nil, fmt.Errorf("tabla de pigmentos: %w", err)
	}

	compRepo := postgres.NewCompositionRepo(db)
	reelRepo := postgres.NewReelCapacityRepo(db)

	if cfg.AdminAPIKey == "" {
		log.Warn().Msg("ADMIN_API_KEY vacío: endpoints /admin deshabilitados")
	}

	app := &App{DB: db, Config: cfg, Compositions: compRepo, Reels: reelRepo}
	app.MaterialsUC = &usecase.MaterialsUC{Compositions: compRepo}
	app.ReelUC = &usecase.ReelUC{Reels: reelRepo}
	app.CatalogUC = &usecase.CatalogUC{Compositions: compRepo, Reels: reelRepo}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.MaterialsUC, a.ReelUC, a.CatalogUC, a.Config.AdminAPIKey)
}

// schemaStatements completa lo que AutoMigrate no expresa. Cada índice respalda una consulta
// de los repos: el parcial por code sirve a ListActive/FindByCode/Deactivate (active = true).
var schemaStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_composition_records_code_active ON composition_records (code) WHERE active",
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(&domain.CompositionRecord{}, &domain.ReelCapacityEntry{}); err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		_ = a.DB.Exec(stmt).Error
	}

	if !a.Config.SeedCatalog {
		return nil
	}
	return seedCatalog(context.Background(), a.DB, a.CatalogUC)
}

// seedCatalog carga un catálogo de demostración sólo si las tablas están vacías.
func seedCatalog(ctx context.Context, db *gorm.DB, uc *usecase.CatalogUC) error {
	var count int64
	if err := db.Model(&domain.CompositionRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		rep, err := uc.ImportCompositions(ctx, demoCompositions(), &domain.ImportReport{Sheet: "seed"})
		if err != nil {
			return err
		}
		if rep.Rejected > 0 {
			return fmt.Errorf("seed de composiciones con errores: %v", rep.Errors)
		}
	}

	if err := db.Model(&domain.ReelCapacityEntry{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if _, err := uc.ImportReels(ctx, demoReels(), &domain.ImportReport{Sheet: "seed"}); err != nil {
			return err
		}
	}
	return nil
}

func demoCompositions() []domain.CompositionRecord {
	recs := []domain.CompositionRecord{
		{Code: "DUP16", Description: "Duplex 16mm² XLPE", ColorScheme: "preto", Gauge: "16",
			PerMeter: map[domain.MaterialKind]float64{domain.Aluminum: 0.0864, domain.XLPE: 0.0420, domain.PigUVBlack: 0.0008}},
		{Code: "TRI25", Description: "Triplex 25mm² XLPE", ColorScheme: "preto/cinza", Gauge: "25",
			PerMeter: map[domain.MaterialKind]float64{domain.Aluminum: 0.2025, domain.XLPE: 0.0780, domain.PigUVBlack: 0.0010, domain.PigUVGray: 0.0004}},
		{Code: "TRN70", Description: "Triplex neutro nu 70mm²", ColorScheme: "preto", Gauge: "70",
			PerMeter: map[domain.MaterialKind]float64{domain.Aluminum: 0.5670, domain.XLPESilane: 0.1350, domain.PigUVBlack: 0.0020}},
		{Code: "QUA35", Description: "Quadruplex 35mm²", ColorScheme: "preto/azul/cinza", Gauge: "35",
			PerMeter: map[domain.MaterialKind]float64{domain.Aluminum: 0.3780, domain.XLPE: 0.1420, domain.PigUVBlack: 0.0012, domain.PigUVBlue: 0.0004, domain.PigUVGray: 0.0004}},
		{Code: "UN10", Description: "Unipolar 10mm² PVC", ColorScheme: "vermelho", Gauge: "10",
			PerMeter: map[domain.MaterialKind]float64{domain.Aluminum: 0.0270, domain.PVC: 0.0310, domain.PigPVCRed: 0.0003}},
	}
	for i := range recs {
		recs[i].ID = uuid.New()
		recs[i].FillTotal()
	}
	return recs
}

func demoReels() []domain.ReelCapacityEntry {
	return []domain.ReelCapacityEntry{
		{Category: "MULTIPLEX", Gauge: "16", ReelName: "B-1000", CapacityMeters: 1000},
		{Category: "MULTIPLEX", Gauge: "16", ReelName: "B-630", CapacityMeters: 630},
		{Category: "MULTIPLEX", Gauge: "16", ReelName: "B-260", CapacityMeters: 260},
		{Category: "MULTIPLEX", Gauge: "70", ReelName: "B-1250", CapacityMeters: 1250},
		{Category: "MULTIPLEX", Gauge: "70", ReelName: "B-800", CapacityMeters: 800},
		{Category: "UNIPOLAR", Gauge: "10", ReelName: "R-100", CapacityMeters: 100},
		{Category: "UNIPOLAR", Gauge: "10", ReelName: "R-500", CapacityMeters: 500},
	}
}
