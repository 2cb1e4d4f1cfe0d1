package client

import (
	"net/http"

	"github.com/cloudflare/cfssl/log"
	"github.com/gin-gonic/gin"

	"github.com/greenguardV2/chain"
	"github.com/greenguardV2/contract"
	"github.com/greenguardV2/stats"
)

// Server is the collaborator-facing HTTP surface over the core. All state is
// injected; the server itself is stateless.
type Server struct {
	chain    *chain.BlockChain
	registry *contract.Registry
	stats    *stats.Aggregator
}

func NewServer(bc *chain.BlockChain, registry *contract.Registry, aggregator *stats.Aggregator) *Server {
	return &Server{chain: bc, registry: registry, stats: aggregator}
}

// ListenRequest serves collaborator requests until the listener fails.
func (s *Server) ListenRequest(addr string) error {
	r := gin.Default()
	r.Use(Cors())
	r.POST("/postVerification", s.postVerification)   // record a verification event
	r.POST("/postClaimAnalysis", s.postClaimAnalysis) // record a claim analysis
	r.POST("/deployContract", s.deployContract)       // deploy one of the built-in types
	r.POST("/executeContract", s.executeContract)     // execute a single contract manually
	r.GET("/queryStats", s.queryStats)                // chain + contract statistics
	r.GET("/getBlock", s.getBlock)                    // block by id
	r.GET("/getChain", s.getChain)                    // full chain dump
	r.GET("/getContract", s.getContract)              // contract by id
	r.GET("/getCompanyHistory", s.getCompanyHistory)  // per-company verification history
	r.GET("/health", s.health)

	log.Infof("verification ledger client listening on %s", addr)
	return r.Run(addr)
}

func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method

		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type,AccessToken,X-CSRF-Token, Authorization")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Content-Type")
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if method == "OPTIONS" {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Headers", "Content-Type,AccessToken,X-CSRF-Token, Authorization")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Content-Type")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.AbortWithStatus(http.StatusNoContent)
		}

		c.Next()
	}
}
