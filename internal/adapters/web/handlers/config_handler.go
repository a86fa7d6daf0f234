package handlers

import (
	"net/http"
	"strconv"

	"github.com/lcalzada-xor/s1gap/internal/core/ports"
)

// ClientCounter reports how many live event stream clients are connected.
type ClientCounter interface {
	ClientCount() int
}

// ConfigHandler handles runtime settings
type ConfigHandler struct {
	Service ports.APService
	Clients ClientCounter
}

// NewConfigHandler creates a new ConfigHandler. clients may be nil.
func NewConfigHandler(service ports.APService, clients ClientCounter) *ConfigHandler {
	return &ConfigHandler{
		Service: service,
		Clients: clients,
	}
}

// HandleGetConfig returns current runtime settings
func (h *ConfigHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	clients := 0
	if h.Clients != nil {
		clients = h.Clients.ClientCount()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"persistenceEnabled": h.Service.IsPersistenceEnabled(),
		"wsClients":          clients,
	})
}

// HandleTogglePersistence enables or disables station persistence
func (h *ConfigHandler) HandleTogglePersistence(w http.ResponseWriter, r *http.Request) {
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		http.Error(w, "enabled must be true or false", http.StatusBadRequest)
		return
	}
	h.Service.SetPersistenceEnabled(enabled)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "persistence_updated",
		"enabled": enabled,
	})
}
