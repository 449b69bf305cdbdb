package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Origins allowed when ALLOWED_ORIGINS is not set: the Vite dev servers plus
// the tunnel used for mobile testing.
var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"https://ellen-subfastigiated-freda.ngrok-free.dev",
}

// NewCORS builds the CORS middleware from the comma-separated ALLOWED_ORIGINS
// environment variable.
func NewCORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowedOrigins(os.Getenv("ALLOWED_ORIGINS"))
	return cors.New(cfg)
}

func allowedOrigins(env string) []string {
	if env == "" {
		return defaultAllowedOrigins
	}
	var out []string
	for _, origin := range strings.Split(env, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
