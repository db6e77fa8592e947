package middleware

import (
	"bytes"
	"net/http"

	"invoice-dashboard-backend/internal/cache"

	"github.com/gin-gonic/gin"
)

type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePages serves GET requests from pages and stores successful
// renderings until they are invalidated.
func CachePages(pages *cache.Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if page, ok := pages.Get(key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}

		generation := pages.Generation()
		writer := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Header("X-Cache", "MISS")
		c.Next()

		if writer.Status() == http.StatusOK {
			pages.Store(key, generation, &cache.Page{
				Status:      writer.Status(),
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			})
		}
	}
}
