package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIgnoresUnprefixedSystemEnv(t *testing.T) {
	t.Setenv("PATH", "/usr/local/bin:/usr/bin:/bin")
	t.Setenv("HOME", "/home/lab")
	t.Setenv("HOST", "workstation")
	t.Setenv("USERNAME", "alice")
	t.Setenv("PASSWORD", "hunter2")
	t.Setenv("LEVEL", "debug")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "lab_website.db", c.Database.Path)
	assert.Equal(t, "static/uploads", c.Storage.Home)
	assert.Equal(t, "0.0.0.0", c.Host)
	assert.Equal(t, "127.0.0.1", c.Database.Host)
	assert.Equal(t, "admin", c.Admin.Username)
	assert.Empty(t, c.Admin.Password)
	assert.Empty(t, c.Database.Username)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadPrefixedEnvOverrides(t *testing.T) {
	t.Setenv("LAB_DATABASE_PATH", "/var/lib/lab/site.db")
	t.Setenv("LAB_STORAGE_HOME", "/srv/uploads")
	t.Setenv("LAB_ADMIN_USERNAME", "root")
	t.Setenv("LAB_SESSION_COOKIE_NAME", "sid")
	t.Setenv("LAB_SESSION_TTL", "2h")
	t.Setenv("LAB_S3_ACCESS_KEY", "AKIA")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/lab/site.db", c.Database.Path)
	assert.Equal(t, "/srv/uploads", c.Storage.Home)
	assert.Equal(t, "root", c.Admin.Username)
	assert.Equal(t, "sid", c.Session.CookieName)
	assert.Equal(t, 2*time.Hour, c.Session.TTL)
	assert.Equal(t, "AKIA", c.S3.AccessKey)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\ncontact:\n  email: lab@example.org\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "lab@example.org", c.Contact.Email)
	assert.Equal(t, ModeDebug, c.Mode)
}

func TestLoadReleaseRequiresSecret(t *testing.T) {
	t.Setenv("LAB_MODE", "RELEASE")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrDefaultSecret)

	t.Setenv("LAB_SECRET", "a-real-secret")
	c, err := Load("")
	require.NoError(t, err)
	assert.True(t, c.IsRelease())
	assert.Equal(t, "a-real-secret", c.Secret)
}
