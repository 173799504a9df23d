package middleware

import (
	"net"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig holds configuration for Swagger endpoint protection
type SwaggerConfig struct {
	Enabled    bool     // Whether Swagger endpoint is enabled
	AllowedIPs []string // IP whitelist (CIDR notation supported, empty = allow all)
}

// SwaggerProtection returns a middleware that hides the API docs when
// disabled and restricts them to the configured networks otherwise.
func SwaggerProtection(cfg SwaggerConfig) gin.HandlerFunc {
	var allowedNets []*net.IPNet
	for _, entry := range cfg.AllowedIPs {
		if !strings.Contains(entry, "/") {
			if strings.Contains(entry, ":") {
				entry += "/128"
			} else {
				entry += "/32"
			}
		}
		if _, network, err := net.ParseCIDR(entry); err == nil {
			allowedNets = append(allowedNets, network)
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			abortWithError(c, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}
		if len(allowedNets) > 0 && !ipAllowed(net.ParseIP(c.ClientIP()), allowedNets) {
			abortWithError(c, dto.ErrCodeForbidden, "Access to API documentation is restricted")
			return
		}
		c.Next()
	}
}

func ipAllowed(ip net.IP, nets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
