// Package admin exposes the operational HTTP surface: health, per-user
// abuse-gate stats and list management. It is meant to be bound to an
// internal address, there is no authentication layer here.
package admin

import (
	"net/http"
	"strconv"

	"driverprofilebot/pkg/security"
	"driverprofilebot/pkg/state"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wires the admin routes over the abuse gate and the session store.
type Server struct {
	guard    *security.Guard
	sessions *state.Store
	log      *zap.Logger
}

func NewServer(guard *security.Guard, sessions *state.Store, log *zap.Logger) *Server {
	return &Server{guard: guard, sessions: sessions, log: log}
}

// Router builds the gin engine with all admin routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.health)
	sec := r.Group("/security")
	{
		sec.GET("/users/:id", s.userStats)
		sec.PUT("/whitelist/:id", s.addWhitelist)
		sec.DELETE("/whitelist/:id", s.removeWhitelist)
		sec.PUT("/blacklist/:id", s.addBlacklist)
		sec.DELETE("/blacklist/:id", s.removeBlacklist)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info("admin request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) userStats(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	stats, found := s.guard.Stats(userID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not tracked"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) addWhitelist(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	s.guard.AddToWhitelist(userID)
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "whitelisted": true})
}

func (s *Server) removeWhitelist(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	s.guard.RemoveFromWhitelist(userID)
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "whitelisted": false})
}

func (s *Server) addBlacklist(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	s.guard.AddToBlacklist(userID)
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "blacklisted": true})
}

func (s *Server) removeBlacklist(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	s.guard.RemoveFromBlacklist(userID)
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "blacklisted": false})
}

func parseUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return userID, true
}
