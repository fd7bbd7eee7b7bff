// Package handlers implements the console's HTTP handlers. Screen handlers
// render server-side HTML and redirect after form posts; API handlers serve
// the JSON read endpoints.
package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// redirectWithError sends the browser back to path with an error flash.
func redirectWithError(c *gin.Context, path, msg string) {
	c.Redirect(http.StatusSeeOther, path+"?error="+url.QueryEscape(msg))
}
