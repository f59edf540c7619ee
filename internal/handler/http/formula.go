package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	"github.com/look4dennis/stride-hr-sub001/internal/handler/http/response"
)

type FormulaHandler interface {
	CreateRule(w http.ResponseWriter, r *http.Request)
	ListRules(w http.ResponseWriter, r *http.Request)
	DeactivateRule(w http.ResponseWriter, r *http.Request)
}

type formulaHandlerImpl struct {
	ruleService formula.RuleService
}

func NewFormulaHandler(ruleService formula.RuleService) FormulaHandler {
	return &formulaHandlerImpl{ruleService: ruleService}
}

func (h *formulaHandlerImpl) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req formula.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.ruleService.CreateRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Formula rule created", result)
}

func (h *formulaHandlerImpl) ListRules(w http.ResponseWriter, r *http.Request) {
	result, err := h.ruleService.ListRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *formulaHandlerImpl) DeactivateRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Rule ID is required", nil)
		return
	}

	if err := h.ruleService.DeactivateRule(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Formula rule deactivated", nil)
}
