package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/handler/http/response"
)

type AutomationHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type automationHandlerImpl struct {
	automationService automation.AutomationService
}

func NewAutomationHandler(automationService automation.AutomationService) AutomationHandler {
	return &automationHandlerImpl{automationService: automationService}
}

func (h *automationHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.automationService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *automationHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req automation.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.automationService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Automation settings updated", result)
}
