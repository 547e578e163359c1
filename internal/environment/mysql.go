// Package environment provides reusable test set environments.
package environment

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"setrunner/internal/domain"
)

var _ domain.Environment = &MySQL{}

var invalidNameChars = regexp.MustCompile(`[^a-z0-9_]+`)

// maxDatabaseName is the MySQL identifier length limit
const maxDatabaseName = 64

// MySQLConfig describes how to reach the server and name the scratch database
type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	// Prefix is prepended to the set name to build the database name
	Prefix string
}

// MySQLConfigFromEnv reads DB_HOST, DB_PORT, DB_USERNAME, DB_PASSWORD and
// DB_DATABASE_PREFIX, loading envFile first when it exists
func MySQLConfigFromEnv(envFile string) MySQLConfig {
	if envFile != "" {
		// a missing .env file is fine, the process environment is used instead
		_ = godotenv.Load(envFile)
	}
	return MySQLConfig{
		Host:     getenv("DB_HOST", "127.0.0.1"),
		Port:     getenv("DB_PORT", "3306"),
		User:     getenv("DB_USERNAME", "root"),
		Password: os.Getenv("DB_PASSWORD"),
		Prefix:   getenv("DB_DATABASE_PREFIX", "testing"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN returns the data source name for the given database, empty for the server
func (c MySQLConfig) DSN(database string) string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Host + ":" + c.Port
	cfg.DBName = database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// DatabaseName derives a valid scratch database name for a test set
func (c MySQLConfig) DatabaseName(setName string) (string, error) {
	name := strings.ToLower(c.Prefix + "_" + setName)
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "", fmt.Errorf("invalid database name for set %q", setName)
	}
	if len(name) > maxDatabaseName {
		name = name[:maxDatabaseName]
	}
	return name, nil
}

// MySQL is an Environment that creates a scratch database when its set starts
// and drops it when the set ends. Cases reach the database through DB.
type MySQL struct {
	config   MySQLConfig
	setName  string
	database string

	server *sql.DB
	db     *sql.DB
}

// NewMySQL creates a MySQL environment for the named set
func NewMySQL(cfg MySQLConfig, setName string) (*MySQL, error) {
	database, err := cfg.DatabaseName(setName)
	if err != nil {
		return nil, err
	}
	return &MySQL{config: cfg, setName: setName, database: database}, nil
}

// Database returns the scratch database name
func (m *MySQL) Database() string {
	return m.database
}

// DB returns the connection to the scratch database. It is nil outside SetUp/TearDown.
func (m *MySQL) DB() *sql.DB {
	return m.db
}

// SetUp creates the scratch database and connects to it
func (m *MySQL) SetUp(ctx context.Context) error {
	server, err := sql.Open("mysql", m.config.DSN(""))
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := server.PingContext(ctx); err != nil {
		server.Close()
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	// the name is sanitized by DatabaseName, identifiers cannot be bound as parameters
	if _, err := server.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", m.database)); err != nil {
		server.Close()
		return fmt.Errorf("failed to create database %s: %w", m.database, err)
	}

	db, err := sql.Open("mysql", m.config.DSN(m.database))
	if err != nil {
		server.Close()
		return fmt.Errorf("failed to connect to database %s: %w", m.database, err)
	}
	m.server = server
	m.db = db
	return nil
}

// TearDown drops the scratch database and closes both connections
func (m *MySQL) TearDown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	defer func() {
		m.server.Close()
		m.server = nil
	}()

	if m.db != nil {
		m.db.Close()
		m.db = nil
	}
	if _, err := m.server.ExecContext(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", m.database)); err != nil {
		return fmt.Errorf("failed to drop database %s: %w", m.database, err)
	}
	return nil
}

// FromEnvironment returns the MySQL environment a case was given
func FromEnvironment(env domain.Environment) (*MySQL, bool) {
	m, ok := env.(*MySQL)
	return m, ok
}
