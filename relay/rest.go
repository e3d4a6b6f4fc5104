package relay

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var restLogger = log.With().Str("logger_name", "relay::rest").Logger()
var restRouter *Router

// RunRestServer exposes the relay admin surface: connected clients,
// health, and prometheus metrics.
func RunRestServer(router *Router, addr string) error {
	restRouter = router
	r := gin.Default()

	r.GET("/healthz", healthz)
	r.GET("/clients", clients)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	restLogger.Info().Msgf("Admin endpoint listening on %s", addr)
	return r.Run(addr)
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func clients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clients": restRouter.ClientIDs()})
}
