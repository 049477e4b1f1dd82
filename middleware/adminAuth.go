package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetspace/services/admin"
)

// AdminMiddleware rejects callers without the admin role. It runs
// after AuthMiddleware and is fail-closed: an unresolvable role is a
// 403, never a pass.
func AdminMiddleware(adminSvc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" || !adminSvc.IsAdmin(c.Request.Context(), userID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
