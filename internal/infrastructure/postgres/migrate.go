package postgres

import (
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registra el driver database/sql "pgx" que usa goose
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/joyeria-pos/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations aplica las migraciones embebidas en el binario. Se ejecuta al
// arrancar el API: la app nunca corre contra un esquema desactualizado.
func RunMigrations(dsn string, log *logger.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(log)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir conexión de migraciones: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
