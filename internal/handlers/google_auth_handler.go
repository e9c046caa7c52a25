package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const callbackPage = `<!DOCTYPE html>
<html lang="fr">
<body>
  <p>Google Calendar connecté. Vous pouvez fermer cette fenêtre.</p>
  <script>setTimeout(function () { window.close(); }, 2000);</script>
</body>
</html>`

// GoogleAuthRedirect handles GET /api/auth/google?userId=
func GoogleAuthRedirect(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	if GoogleAuth == nil || !GoogleAuth.Enabled() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google Calendar is not configured"})
		return
	}
	c.Redirect(http.StatusFound, GoogleAuth.AuthURL(userID))
}

// GoogleAuthCallback handles GET /api/auth/google/callback?code&state
// The state carries the person id set on the redirect.
func GoogleAuthCallback(c *gin.Context) {
	code := c.Query("code")
	userID := c.Query("state")
	if code == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and state are required"})
		return
	}
	if GoogleAuth == nil || !GoogleAuth.Enabled() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google Calendar is not configured"})
		return
	}

	if err := GoogleAuth.HandleCallback(c.Request.Context(), code, userID); err != nil {
		serverError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(callbackPage))
}

// GoogleAuthStatus handles GET /api/auth/status?userId=
func GoogleAuthStatus(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	connected := GoogleAuth != nil && GoogleAuth.Connected(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"googleConnected": connected})
}
