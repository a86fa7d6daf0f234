package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/s1gap/internal/adapters/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server, limiter *middleware.RateLimiter) http.Handler {
	r := mux.NewRouter()
	limited := middleware.RateLimit(limiter)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/interface", s.InterfaceHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/stations", s.StationHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/stations/stored", s.StationHandler.HandleStored).Methods(http.MethodGet)
	api.HandleFunc("/stations/{addr}", s.StationHandler.HandleGet).Methods(http.MethodGet)
	api.Handle("/negotiate", limited(http.HandlerFunc(s.NegotiateHandler.HandleNegotiate))).Methods(http.MethodPost)
	api.Handle("/negotiate", methodNotAllowed(http.MethodPost))
	api.HandleFunc("/config", s.ConfigHandler.HandleGetConfig).Methods(http.MethodGet)
	api.Handle("/config/persistence", limited(http.HandlerFunc(s.ConfigHandler.HandleTogglePersistence))).Methods(http.MethodPost)
	api.Handle("/config/persistence", methodNotAllowed(http.MethodPost))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.WSManager.HandleWebSocket)

	return r
}

// methodNotAllowed answers 405 on a path whose method routes did not match.
// mux loses the method mismatch once a later sibling route fails on path.
func methodNotAllowed(allowed ...string) http.Handler {
	allow := strings.Join(allowed, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
}
