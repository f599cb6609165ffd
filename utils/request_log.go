package utils

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
)

type failureLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w *failureLogWriter) Write(b []byte) (int, error) {
	if status := w.gc.Writer.Status(); status >= 400 {
		msg := string(b)
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &envelope) == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		log.Printf("%s %s failed: %d %s", w.gc.Request.Method, w.gc.Request.URL.Path, status, msg)
	}
	return w.ResponseWriter.Write(b)
}

// FailedRequestLog logs the error message of every failed API response in
// debug mode. Must run before gzip - the body has to be readable here.
func FailedRequestLog(c *gin.Context) {
	c.Writer = &failureLogWriter{ResponseWriter: c.Writer, gc: c}
	c.Next()
}
