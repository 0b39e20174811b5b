package database

import (
	"database/sql"
	"embed"
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applique les migrations embarquées au démarrage.
func RunMigrations() {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		log.Fatal("❌ Erreur lecture migrations:", err)
	}

	sqlDB, err := sql.Open("pgx", PG.Config().ConnString())
	if err != nil {
		log.Fatal("❌ Erreur ouverture connexion migrations:", err)
	}
	defer sqlDB.Close()

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		log.Fatal("❌ Erreur driver migrations:", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx", driver)
	if err != nil {
		log.Fatal("❌ Erreur initialisation migrate:", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("❌ Erreur application migrations:", err)
	}
	log.Println("✅ Migrations appliquées")
}
