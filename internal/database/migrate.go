package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/sijms/go-ora/v2" // ensure driver registration
	"go.uber.org/zap"

	"careerpath/internal/logger"
)

// RunMigrations applies every *.up.sql file in migrationsDir in name order.
// Files are expected to be idempotent or applied exactly once per schema.
func RunMigrations(db *sql.DB, migrationsDir string) error {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file.Name(), err)
		}

		// Oracle does not accept multiple statements per Exec; split on the
		// statement delimiter line.
		for _, stmt := range strings.Split(string(content), ";\n") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", file.Name(), err)
			}
		}

		logger.Get().Info("Executed migration", zap.String("file", file.Name()))
	}

	logger.Get().Info("Migrations completed successfully")
	return nil
}

// NewMigrateOracleDB opens a plain database/sql handle for migrations.
func NewMigrateOracleDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return db, nil
}
