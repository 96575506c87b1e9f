package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/payrate"
	"github.com/shiftpay/payroll-engine-go/internal/handler/http/response"
)

type RateTierHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type rateTierHandlerImpl struct {
	rateTierService payrate.RateTierService
}

func NewRateTierHandler(rateTierService payrate.RateTierService) RateTierHandler {
	return &rateTierHandlerImpl{rateTierService: rateTierService}
}

func (h *rateTierHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payrate.CreateRateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.rateTierService.CreateRateTier(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rate tier created", result)
}

func (h *rateTierHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.rateTierService.GetRateTier(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rateTierHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.rateTierService.ListRateTiers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rateTierHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payrate.UpdateRateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.rateTierService.UpdateRateTier(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate tier updated", nil)
}

func (h *rateTierHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.rateTierService.DeleteRateTier(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate tier deleted", nil)
}
