package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
)

// StationHandler serves the station list and per-station capability records.
type StationHandler struct {
	Service ports.APService
}

func NewStationHandler(service ports.APService) *StationHandler {
	return &StationHandler{Service: service}
}

// HandleList returns the live station table.
func (h *StationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Stations())
}

// HandleStored returns the persisted station records.
func (h *StationHandler) HandleStored(w http.ResponseWriter, r *http.Request) {
	stations, err := h.Service.StoredStations(r.Context())
	if err != nil {
		slog.Error("http: load stored stations", "error", err)
		http.Error(w, "failed to load stored stations", http.StatusInternalServerError)
		return
	}
	if stations == nil {
		stations = []domain.StationSnapshot{}
	}
	writeJSON(w, http.StatusOK, stations)
}

// HandleGet returns one station by address.
func (h *StationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.NormalizeStationAddr(mux.Vars(r)["addr"])
	if err != nil {
		http.Error(w, "Invalid station address", http.StatusBadRequest)
		return
	}

	snap, err := h.Service.Station(r.Context(), addr)
	if errors.Is(err, domain.ErrStationNotFound) {
		http.Error(w, "Station not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("http: load station", "addr", addr, "error", err)
		http.Error(w, "failed to load station", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
