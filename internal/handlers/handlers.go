package handlers

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
)

// isNotFound matches the storage layer's "<entity> not found" errors.
func isNotFound(err error) bool {
	return err != nil && strings.HasSuffix(err.Error(), "not found")
}

// notFoundMessage turns "farmer not found" into "Farmer not found".
func notFoundMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// respondEntityError maps a service error onto the legacy error body:
// 404 for missing entities, 400 for everything else.
func respondEntityError(c *gin.Context, err error) {
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// RegisterRootRoutes wires the home page and the health probe.
func RegisterRootRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the FarmBiz Home Page!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterFallbackRoutes wires the catch-all routes. Wrong-method requests
// return 405 with the legacy JSON body; unknown paths get a plain-text 404.
func RegisterFallbackRoutes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Invalid request method"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Page not found")
	})
}

// RecoveryHandler keeps panics inside the legacy plain-text 500 body.
func RecoveryHandler(c *gin.Context, _ any) {
	c.String(http.StatusInternalServerError, "Internal server error")
}
