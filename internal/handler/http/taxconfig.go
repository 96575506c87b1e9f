package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/taxconfig"
	"github.com/shiftpay/payroll-engine-go/internal/handler/http/response"
)

type TaxConfigHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type taxConfigHandlerImpl struct {
	taxConfigService taxconfig.TaxConfigService
}

func NewTaxConfigHandler(taxConfigService taxconfig.TaxConfigService) TaxConfigHandler {
	return &taxConfigHandlerImpl{taxConfigService: taxConfigService}
}

func (h *taxConfigHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req taxconfig.CreateTaxConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.taxConfigService.CreateTaxConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tax configuration created", result)
}

func (h *taxConfigHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.taxConfigService.GetTaxConfig(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *taxConfigHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.taxConfigService.ListTaxConfigs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *taxConfigHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req taxconfig.UpdateTaxConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.taxConfigService.UpdateTaxConfig(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tax configuration updated", nil)
}

func (h *taxConfigHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.taxConfigService.DeleteTaxConfig(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tax configuration deleted", nil)
}
