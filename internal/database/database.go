package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net"
	"sort"
	"time"

	"github.com/go-extras/go-kit/must"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stokaro/ptah/migration/migrator"

	"personalblog/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations holds the schema files applied by RunMigrations, in name order.
var Migrations = must.Must(fs.Sub(migrationsFS, "migrations"))

type MethodsDB interface {
	CloseDB() error
	RunMigrations(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}

type DB struct {
	*sqlx.DB
}

// DataSourceName builds the driver-specific connection string. DB_DSN wins when set.
func DataSourceName(cfg config.DB) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	switch cfg.Driver {
	case "postgres", "pgx":
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DbHOST,
			cfg.DbPORT,
			cfg.DbUSER,
			cfg.DbPASSWORD,
			cfg.DbNAME,
			cfg.DbSSLMODE,
		), nil
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = cfg.DbUSER
		mc.Passwd = cfg.DbPASSWORD
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.DbHOST, cfg.DbPORT)
		mc.DBName = cfg.DbNAME
		mc.ParseTime = true
		// RowsAffected counts matched rows, so an unchanged UPDATE is not "not found"
		mc.ClientFoundRows = true
		mc.Loc = time.UTC
		return mc.FormatDSN(), nil
	case "sqlite3":
		return SQLiteDSN(cfg.DbNAME), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN points at a database file with foreign keys enforced.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	connStr, err := DataSourceName(cfg.DB)
	if err != nil {
		return nil, err
	}

	log.Printf("Connecting to database: driver=%s host=%s dbname=%s", cfg.DB.Driver, cfg.DB.DbHOST, cfg.DB.DbNAME)

	db, err := sqlx.Connect(cfg.DB.Driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DB.Driver == "sqlite3" {
		// one writer at a time, otherwise "database is locked"
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.HealthCheck(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Printf("Connected to %s", cfg.DB.Driver)
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations applies every embedded schema file.
func (db *DB) RunMigrations(ctx context.Context) error {
	return db.applyMigrations(ctx, Migrations)
}

// applyMigrations runs the *.sql files of fsys in name order. Statements are
// executed one at a time because MySQL rejects multi-statement Exec.
func (db *DB) applyMigrations(ctx context.Context, fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		migrationSQL, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		log.Printf("Applying migration: %s", name)

		for _, stmt := range migrator.SplitSQLStatements(string(migrationSQL)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %s failed: %w\nSQL: %s", name, err, stmt)
			}
		}
	}

	log.Println("Migrations applied")
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.PingContext(ctx)
}
