package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsYEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("OFFICE_FISCAL_YEAR", "2081/082")
	t.Setenv("MONGO_URI", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "2081/082", cfg.Office.FiscalYear)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Mongo.Enabled())
}

func TestLoad_ProduccionSinSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "karyalaya", Password: "p@ss:w/rd", DBName: "swasthya", SSLMode: "disable"}
	assert.Equal(t, "postgres://karyalaya:p%40ss%3Aw%2Frd@db:5432/swasthya?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
