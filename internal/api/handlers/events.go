package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wcraske/simpleCalendar/internal/api/httpx"
	"github.com/wcraske/simpleCalendar/internal/middleware"
	"github.com/wcraske/simpleCalendar/internal/services"
)

type EventHandler struct {
	Events *services.EventService
}

func NewEventHandler(es *services.EventService) *EventHandler {
	return &EventHandler{Events: es}
}

func decodeInput(w http.ResponseWriter, r *http.Request) (services.EventInput, bool) {
	var in services.EventInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", err.Error())
		return in, false
	}
	return in, true
}

// Create handles POST /events/. Admins must name the owner with ?user_id=.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromCtx(r.Context())
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	ev, err := h.Events.Create(r.Context(), actor, r.URL.Query().Get("user_id"), in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, ev)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromCtx(r.Context())
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", services.DefaultLimit)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	evs, err := h.Events.List(r.Context(), actor, services.ListParams{
		Skip:   skip,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, evs)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromCtx(r.Context())
	ev, err := h.Events.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ev)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromCtx(r.Context())
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	ev, err := h.Events.Update(r.Context(), actor, chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ev)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromCtx(r.Context())
	if err := h.Events.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// Upcoming handles GET /upcoming-events/?minutes=N for the caller's own events.
func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromCtx(r.Context())
	minutes, err := queryInt(r, "minutes", services.DefaultUpcomingMinutes)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	evs, err := h.Events.Upcoming(r.Context(), actor, minutes)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, evs)
}
