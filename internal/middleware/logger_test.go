package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"assurdoc/internal/middleware"
)

func TestLogger_TagsAnalysisTraffic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger())
	r.GET("/analyses/:demandeID", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/analyses/tasks/:taskID", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/analyses/d-42", nil)
	r.ServeHTTP(w, req)
	assert.Contains(t, buf.String(), "demande=d-42")

	buf.Reset()
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/analyses/tasks/t-7", nil)
	r.ServeHTTP(w, req)
	assert.Contains(t, buf.String(), "task=t-7")
}
