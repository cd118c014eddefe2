package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clinicore/attendance-backend-go/internal/domain/organization"
	"github.com/clinicore/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OrganizationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	QRCode(w http.ResponseWriter, r *http.Request)

	CreateNetwork(w http.ResponseWriter, r *http.Request)
	GetNetwork(w http.ResponseWriter, r *http.Request)
	ListNetworks(w http.ResponseWriter, r *http.Request)
	UpdateNetwork(w http.ResponseWriter, r *http.Request)
	DeleteNetwork(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	orgService organization.Service
}

func NewOrganizationHandler(orgService organization.Service) OrganizationHandler {
	return &organizationHandlerImpl{
		orgService: orgService,
	}
}

// Create implements OrganizationHandler.
func (h *organizationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req organization.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.orgService.CreateOrganization(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Organization created", result)
}

// Get implements OrganizationHandler.
func (h *organizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.orgService.GetOrganization(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements OrganizationHandler.
func (h *organizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.orgService.ListOrganizations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Update implements OrganizationHandler.
func (h *organizationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req organization.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.orgService.UpdateOrganization(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization updated", result)
}

// Delete implements OrganizationHandler.
func (h *organizationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.orgService.DeleteOrganization(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization deleted", nil)
}

// QRCode implements OrganizationHandler. It serves the printable
// check-in poster image.
func (h *organizationHandlerImpl) QRCode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	size := 256
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 2048 {
			size = n
		}
	}

	png, err := h.orgService.QRCode(r.Context(), id, size)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.PNG(w, png)
}

// CreateNetwork implements OrganizationHandler.
func (h *organizationHandlerImpl) CreateNetwork(w http.ResponseWriter, r *http.Request) {
	var req organization.CreateNetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.orgService.CreateNetwork(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Network created", result)
}

// GetNetwork implements OrganizationHandler.
func (h *organizationHandlerImpl) GetNetwork(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.orgService.GetNetwork(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListNetworks implements OrganizationHandler.
func (h *organizationHandlerImpl) ListNetworks(w http.ResponseWriter, r *http.Request) {
	results, err := h.orgService.ListNetworks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateNetwork implements OrganizationHandler.
func (h *organizationHandlerImpl) UpdateNetwork(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req organization.UpdateNetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.orgService.UpdateNetwork(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Network updated", result)
}

// DeleteNetwork implements OrganizationHandler.
func (h *organizationHandlerImpl) DeleteNetwork(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.orgService.DeleteNetwork(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Network deleted", nil)
}
