package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/content-readiness/backend/logging"
)

// keywordsKey is set by the analyze handler so the middleware can
// attribute the request to the keywords it targeted.
const keywordsKey = "analyzedKeywords"

// SetAnalyzedKeywords records the keywords of the current request for
// the statistics middleware.
func SetAnalyzedKeywords(c *gin.Context, keywords []string) {
	c.Set(keywordsKey, keywords)
}

// Stats tracks unique visitors and analysis requests.
func Stats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		if c.Request.URL.Path == "/api/analyze" && c.Request.Method == "POST" {
			var keywords []string
			if v, ok := c.Get(keywordsKey); ok {
				keywords, _ = v.([]string)
			}
			duration := float64(time.Since(start).Milliseconds())
			stats.TrackAnalysis(keywords, duration, c.Writer.Status() >= 400)

			if stats.RequestsTracked()%100 == 0 {
				go stats.Save()
			}
		}
	}
}
