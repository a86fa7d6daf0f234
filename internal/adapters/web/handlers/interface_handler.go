package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/s1gap/internal/core/ports"
)

// InterfaceHandler reports the AP interface and its S1G state.
type InterfaceHandler struct {
	Service ports.APService
}

func NewInterfaceHandler(service ports.APService) *InterfaceHandler {
	return &InterfaceHandler{Service: service}
}

func (h *InterfaceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Interface())
}
