package middleware

import (
	"bytes"         // Body buffer
	"encoding/json" // JSON decoding
	"io"            // Body reading
	"strings"       // Header inspection

	"habit_tracker/internal/utils" // Key conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// CaseConverterMiddleware rewrites JSON body keys from camelCase to snake_case
// so handlers only ever bind snake_case fields. Bodies that are not JSON, or
// not valid JSON, are passed on untouched.
func CaseConverterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}
		raw, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			c.Next()
			return
		}
		body := raw
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber() // Keep numbers exactly as sent
		var doc any
		if err := dec.Decode(&doc); err == nil {
			if converted, err := json.Marshal(utils.SnakeCaseKeys(doc)); err == nil {
				body = converted
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Request.ContentLength = int64(len(body))
		c.Next()
	}
}
