package player

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/soundtoys/tracksync/internal/observability"
)

// NewStatusRouter builds the player's HTTP status surface. Handlers
// read only published snapshots, never the session itself.
func NewStatusRouter(p *Player, corsOrigins []string) *gin.Engine {
	observability.RegisterMetrics()
	startedAt := time.Now()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware("tracksyncd"))
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(startedAt).String(),
			"service": "tracksyncd",
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		snap := p.Status()
		c.JSON(http.StatusOK, gin.H{
			"ready":     true,
			"connected": snap.Connected,
			"playing":   snap.Playing,
		})
	})

	r.GET("/tracks", func(c *gin.Context) {
		c.JSON(http.StatusOK, p.Status())
	})

	r.GET("/tracks/:name", func(c *gin.Context) {
		name := c.Param("name")
		v, ok := p.TrackValue(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown track", "track": name})
			return
		}
		c.JSON(http.StatusOK, gin.H{"track": name, "row": p.Status().Row, "value": v})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
