package middleware

import "github.com/gin-gonic/gin"

// CORS middleware to handle cross-origin requests from the web client
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Allow requests from the local dev server and the deployed frontend
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "https://wawe-phi-eight.vercel.app" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, User-Agent, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 hours
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
