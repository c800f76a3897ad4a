package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSyncConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *SyncConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5433
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
sync:
  base_dir: /data/tradeblocks
  worker_pool_size: 8
  conflict_retry_interval: "200ms"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *SyncConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "testuser", cfg.Database.User)
				assert.Equal(t, "testpass", cfg.Database.Password)
				assert.Equal(t, "testdb", cfg.Database.DBName)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "/data/tradeblocks", cfg.Sync.BaseDir)
				assert.Equal(t, 8, cfg.Sync.WorkerPoolSize)
				assert.Equal(t, 200*time.Millisecond, cfg.Sync.ConflictRetryInterval)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
sync:
  base_dir: /data/tradeblocks
`,
			expectError: false,
			validate: func(t *testing.T, cfg *SyncConfig) {
				// Check defaults
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.MaxOpenConns)
				assert.Equal(t, 5, cfg.Database.MaxIdleConns)
				assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, 4, cfg.Sync.WorkerPoolSize)
				assert.Equal(t, 50*time.Millisecond, cfg.Sync.ConflictRetryInterval)
			},
		},
		{
			name: "missing base dir",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
sync:
  base_dir: /data/tradeblocks
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadSyncConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadSyncConfigFromEnvironment(t *testing.T) {
	t.Setenv("TRADEBLOCKS_DATABASE_HOST", "db.internal")
	t.Setenv("TRADEBLOCKS_DATABASE_DBNAME", "tradeblocks")
	t.Setenv("TRADEBLOCKS_SYNC_BASE_DIR", "/srv/blocks")
	t.Setenv("TRADEBLOCKS_SYNC_WORKER_POOL_SIZE", "16")

	// No config file on the search path: everything comes from the env.
	cfg, err := LoadSyncConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "tradeblocks", cfg.Database.DBName)
	assert.Equal(t, "/srv/blocks", cfg.Sync.BaseDir)
	assert.Equal(t, 16, cfg.Sync.WorkerPoolSize)
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "tradeblocks",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=tradeblocks sslmode=disable",
		cfg.DSN())
}
