package environment

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setrunner/internal/domain"
)

func TestMySQLConfig_DatabaseName(t *testing.T) {
	cfg := MySQLConfig{Prefix: "testing"}

	tests := []struct {
		name     string
		setName  string
		expected string
	}{
		{name: "simple", setName: "math", expected: "testing_math"},
		{name: "lowercased", setName: "UserRepo", expected: "testing_userrepo"},
		{name: "punctuation replaced", setName: "users; DROP users--", expected: "testing_users_drop_users"},
		{name: "spaces and dashes", setName: "a b-c", expected: "testing_a_b_c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.DatabaseName(tt.setName)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("truncated to identifier limit", func(t *testing.T) {
		got, err := cfg.DatabaseName(strings.Repeat("x", 100))
		require.NoError(t, err)
		assert.Len(t, got, maxDatabaseName)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := MySQLConfig{}.DatabaseName("--")
		assert.Error(t, err)
	})
}

func TestMySQLConfig_DSN(t *testing.T) {
	cfg := MySQLConfig{Host: "db.local", Port: "3307", User: "ci", Password: "secret"}

	parsed, err := mysql.ParseDSN(cfg.DSN("testing_math"))
	require.NoError(t, err)
	assert.Equal(t, "ci", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.local:3307", parsed.Addr)
	assert.Equal(t, "testing_math", parsed.DBName)
}

func TestMySQLConfigFromEnv(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD", "DB_DATABASE_PREFIX"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_HOST=mysql\nDB_DATABASE_PREFIX=ci\n"), 0644))

	cfg := MySQLConfigFromEnv(envFile)
	assert.Equal(t, "mysql", cfg.Host)
	assert.Equal(t, "3306", cfg.Port)
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, "ci", cfg.Prefix)
}

func TestMySQL_TearDownWithoutSetUp(t *testing.T) {
	env, err := NewMySQL(MySQLConfig{Prefix: "testing"}, "math")
	require.NoError(t, err)
	assert.Equal(t, "testing_math", env.Database())
	assert.NoError(t, env.TearDown(context.Background()))
	assert.Nil(t, env.DB())
}

func TestFromEnvironment(t *testing.T) {
	env, err := NewMySQL(MySQLConfig{Prefix: "testing"}, "math")
	require.NoError(t, err)

	got, ok := FromEnvironment(env)
	assert.True(t, ok)
	assert.Same(t, env, got)

	_, ok = FromEnvironment(domain.EnvironmentFuncs{})
	assert.False(t, ok)
}
