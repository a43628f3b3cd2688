package ping

import (
	"encoding/json"
	"net/http"
	"testing"

	"lab-website/internal/global/database"
	"lab-website/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	database.DB = test.NewDB(t)
	(&ModulePing{}).Init()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	(&ModulePing{}).InitRouter(&r.RouterGroup)
	return r
}

func TestPing(t *testing.T) {
	r := setup(t)

	w := test.Get(r, "/ping")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pong", body["message"])
	assert.Equal(t, "ok", body["database"])
}

func TestPingDatabaseDown(t *testing.T) {
	r := setup(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := test.Get(r, "/ping")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
