package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendJSONError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)

	SendJSONError(c, http.StatusNotFound, "Категория не найдена")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Категория не найдена", body["message"])
}

func TestSendJSONResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendJSONResponse(c, http.StatusOK, gin.H{"answer": 42})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer": 42}`, w.Body.String())
}
