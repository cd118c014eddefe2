package http

import (
	"encoding/json"
	"net/http"

	"github.com/clinicore/attendance-backend-go/internal/domain/checkin"
	"github.com/clinicore/attendance-backend-go/internal/handler/http/response"
)

// CheckinHandler exposes QR payload validation and the device IP lookup
// the scan page performs before validating.
type CheckinHandler interface {
	ValidatePayload(w http.ResponseWriter, r *http.Request)
	DeviceIP(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type checkinHandlerImpl struct {
	checkinService checkin.Service
}

func NewCheckinHandler(checkinService checkin.Service) CheckinHandler {
	return &checkinHandlerImpl{
		checkinService: checkinService,
	}
}

// ValidatePayload implements CheckinHandler.
func (h *checkinHandlerImpl) ValidatePayload(w http.ResponseWriter, r *http.Request) {
	var req checkin.ValidatePayloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkinService.Validate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeviceIP implements CheckinHandler.
func (h *checkinHandlerImpl) DeviceIP(w http.ResponseWriter, r *http.Request) {
	ip, err := h.checkinService.DeviceIP(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, checkin.DeviceIPResponse{IP: ip})
}

// Refresh implements CheckinHandler. Administrators call this after
// editing organizations or networks so the validation snapshot picks up
// the change.
func (h *checkinHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.checkinService.Refresh(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lookup snapshot refreshed", nil)
}
