package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "LOG_LEVEL", "STORAGE_BACKEND", "DATA_FILE", "POSTGRES_DSN", "HTTP_ADDR", "DEVICE_TOKEN", "SAVE_DELAY"} {
		t.Setenv(k, "")
	}
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "development", c.Env)
	assert.Equal(t, "file", c.Backend)
	assert.Equal(t, "data/savecircle.json", c.DataFile)
	assert.Equal(t, ":8088", c.HTTPAddr)
	assert.Equal(t, 500*time.Millisecond, c.SaveDelay)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without dsn": {"STORAGE_BACKEND": "postgres", "POSTGRES_DSN": ""},
		"unknown backend":      {"STORAGE_BACKEND": "redis"},
		"unknown env":          {"APP_ENV": "qa"},
		"bad delay":            {"SAVE_DELAY": "soon"},
		"negative delay":       {"SAVE_DELAY": "-1s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_Postgres(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost:5432/savecircle")
	t.Setenv("APP_ENV", "production")
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres", c.Backend)
}
