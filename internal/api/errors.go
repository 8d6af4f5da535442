package api

import (
	"net/http"

	"gymbook/admin-app/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps the failure taxonomy to HTTP statuses in one place. The
// code travels in the body so callers can branch on it without parsing the
// message.
func respondError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case apperr.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.CodePermissionDenied:
		status = http.StatusForbidden
	case apperr.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperr.CodeAlreadyExists:
		status = http.StatusConflict
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	}

	message := err.Error()
	if code == apperr.CodeInternal {
		// Don't leak internals to the caller.
		message = "internal error"
	}

	c.AbortWithStatusJSON(status, gin.H{"ok": false, "code": string(code), "error": message})
}
