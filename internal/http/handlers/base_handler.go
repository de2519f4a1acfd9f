// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplan/internal/modules/plan"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps a pipeline failure onto a status code and a localized
// message. Internal detail stays in the logs.
func writePlanError(c *gin.Context, err error, lang plan.Language) {
	kind := plan.Classify(err)
	switch kind {
	case plan.KindConfiguration:
		writeError(c, http.StatusInternalServerError, plan.UserMessage(kind, lang))
	default:
		writeError(c, http.StatusBadGateway, plan.UserMessage(kind, lang))
	}
}
