package slot

import (
	dto "digit_slot/internal/api/dto/slot"
	"digit_slot/internal/converter"
	"digit_slot/internal/middleware"
	"digit_slot/internal/service"
	slotServ "digit_slot/internal/service/slot"
	"digit_slot/pkg/req"
	"digit_slot/pkg/resp"
	"errors"
	"net/http"
	"strconv"
)

const (
	defaultBetsLimit = 20
	maxBetsLimit     = 100
)

type HandlerDeps struct {
	Serv service.SlotService
	// History журнал ставок, nil если кошелек удаленный
	History service.BetHistoryService
}

type Handler struct {
	serv    service.SlotService
	history service.BetHistoryService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, history: deps.History}
}

// HasHistory есть ли журнал ставок
func (h *Handler) HasHistory() bool {
	return h.history != nil
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	player, ok := middleware.PlayerFromContext(r.Context())
	if !ok {
		http.Error(w, "player not found in context", http.StatusUnauthorized)
		return
	}

	state, err := h.serv.Join(r.Context(), player)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(*state))
}

func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "player not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.serv.Leave(r.Context(), playerID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "player not found in context", http.StatusUnauthorized)
		return
	}

	state, err := h.serv.State(r.Context(), playerID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(*state))
}

func (h *Handler) Pick(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "player not found in context", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.PickRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pick, err := converter.ToPick(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	accepted, err := h.serv.SetPick(r.Context(), playerID, pick)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.AcceptedResponse{Accepted: accepted})
}

func (h *Handler) Bet(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "player not found in context", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.BetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	accepted, err := h.serv.SetBetAmount(r.Context(), playerID, payload.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.AcceptedResponse{Accepted: accepted})
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "player not found in context", http.StatusUnauthorized)
		return
	}

	var after int64
	if raw := r.URL.Query().Get("after"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			http.Error(w, "after must be a non-negative integer", http.StatusBadRequest)
			return
		}
		after = v
	}

	notices, err := h.serv.Events(r.Context(), playerID, after)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToEventsResponse(notices))
}

func (h *Handler) Bets(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "player not found in context", http.StatusUnauthorized)
		return
	}
	if h.history == nil {
		http.Error(w, "bet history is not available", http.StatusNotFound)
		return
	}

	limit := defaultBetsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(v, maxBetsLimit)
	}

	bets, err := h.history.Bets(r.Context(), playerID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBetsResponse(bets))
}

func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, slotServ.ErrTableNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, slotServ.ErrInvalidDenomination):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, slotServ.ErrWalletUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, slotServ.ErrServiceClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
