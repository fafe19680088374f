// seed_opening carga los saldos iniciales del año fiscal desde una hoja de cálculo y los registra
// como un Dakhila Pratibedan de saldo inicial (entra al inventario y al Jinshi Khata).
//
// Uso: go run ./cmd/seed_opening <saldos.xlsx> <fecha BS> [store_id]
// Ejemplo: go run ./cmd/seed_opening saldos_2081.xlsx 2081/04/01 main
//
// Columnas de la primera hoja: Name, Qty (obligatorias), Code, Asset Code, Type, Unit, Rate,
// Expiry, Batch, Specification.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Swasthya-api/internal/application/documents"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Swasthya-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/Swasthya-api/pkg/config"
	"github.com/jhoicas/Swasthya-api/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_opening <saldos.xlsx> <fecha BS> [store_id]")
		os.Exit(2)
	}
	path, date := os.Args[1], os.Args[2]
	storeID := ""
	if len(os.Args) > 3 {
		storeID = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir hoja de saldos")
	}
	lines, err := xlsx.ReadOpening(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer saldos")
	}
	if len(lines) == 0 {
		log.Fatal().Str("file", path).Msg("la hoja no tiene saldos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	registry := documents.NewRegistry(postgres.NewDocumentRepository(pool), postgres.NewTxRunner(pool), cfg.Office.FiscalYear, log)
	doc, err := registry.Dakhila.Create(ctx,
		documents.Actor{UserID: "seed_opening", Name: "seed_opening", Role: entity.RoleStorekeeper},
		&entity.DakhilaPratibedan{
			Header:  entity.Header{Date: date},
			Source:  entity.SourceOpening,
			StoreID: storeID,
			Items:   lines,
		})
	if err != nil {
		log.Fatal().Err(err).Msg("registrar saldo inicial")
	}
	log.Info().Str("id", doc.ID).Int("number", doc.Number).Str("fiscal_year", doc.FiscalYear).
		Int("lines", len(doc.Items)).Msg("saldo inicial registrado")
}
