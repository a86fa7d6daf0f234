package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
)

type negotiateRequest struct {
	Peer string `json:"peer"`
}

type negotiateResponse struct {
	Peer       string `json:"peer"`
	Negotiated string `json:"negotiated"`
	ChanWidth  uint8  `json:"chan_width"`
}

// NegotiateHandler lets an operator preview the S1G capabilities the AP
// would advertise to a given peer.
type NegotiateHandler struct {
	Service ports.APService
}

func NewNegotiateHandler(service ports.APService) *NegotiateHandler {
	return &NegotiateHandler{Service: service}
}

func (h *NegotiateHandler) HandleNegotiate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req negotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	peer, err := domain.ParseS1GCapabilitiesHex(req.Peer)
	if err != nil {
		http.Error(w, "peer must be 15 hex-encoded bytes", http.StatusBadRequest)
		return
	}

	out := h.Service.Negotiate(peer)
	writeJSON(w, http.StatusOK, negotiateResponse{
		Peer:       peer.String(),
		Negotiated: out.String(),
		ChanWidth:  out.SupportedChannelWidth(),
	})
}
