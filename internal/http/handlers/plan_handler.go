// README: Plan handler (travel request in, validated itinerary out).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tripplan/internal/modules/plan"
)

// Planner produces a validated plan for a request.
type Planner interface {
	PlanTrip(ctx context.Context, req plan.TravelRequest, lang plan.Language) (*plan.PlanResult, error)
}

type PlanHandler struct {
	planner Planner
	lang    plan.Language
}

// NewPlanHandler creates a handler. lang applies when the client sends no
// Accept-Language header.
func NewPlanHandler(planner Planner, lang plan.Language) *PlanHandler {
	if lang == "" {
		lang = plan.LangEnglish
	}
	return &PlanHandler{planner: planner, lang: lang}
}

var badRequestMessages = map[plan.Language]struct{ body, missing string }{
	plan.LangEnglish:  {body: "invalid request body", missing: "missing required fields: "},
	plan.LangJapanese: {body: "リクエストの形式が正しくありません", missing: "必須項目が入力されていません: "},
}

// Create handles POST /api/plans.
func (h *PlanHandler) Create(c *gin.Context) {
	lang := h.language(c)
	msgs := badRequestMessages[lang]

	var req plan.TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(c, http.StatusBadRequest, msgs.missing+strings.Join(req.MissingFields(), ", "))
			return
		}
		writeError(c, http.StatusBadRequest, msgs.body)
		return
	}
	// binding:"required" accepts whitespace-only strings.
	if missing := req.MissingFields(); len(missing) > 0 {
		writeError(c, http.StatusBadRequest, msgs.missing+strings.Join(missing, ", "))
		return
	}

	res, err := h.planner.PlanTrip(c.Request.Context(), req, lang)
	if err != nil {
		writePlanError(c, err, lang)
		return
	}

	writeJSON(c, http.StatusOK, res)
}

func (h *PlanHandler) language(c *gin.Context) plan.Language {
	if tag := c.GetHeader("Accept-Language"); strings.TrimSpace(tag) != "" {
		return plan.ParseLanguage(tag)
	}
	return h.lang
}
