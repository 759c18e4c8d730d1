package mux

import (
	"net/http"
	"strconv"

	"clubsocial-server/pkg/cardroom"

	gmux "github.com/gorilla/mux"
	"github.com/google/uuid"
)

type postTablePayload struct {
	Variant    string `json:"variant"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
	Seats      int    `json:"seats"`
	MinPlayers int    `json:"minPlayers"`
}

func (m *Mux) postTable() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		variant := cardroom.Variant(pp.Variant)
		if pp.Variant == "" {
			variant = cardroom.Holdem
		}

		snapshot, err := m.store.CreateTable(r.Context(), uuid.New().String(), variant,
			pp.SmallBlind, pp.BigBlind, pp.Seats, pp.MinPlayers)
		if err != nil {
			writeCardroomError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, snapshot)
	})
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := m.store.View(r.Context(), gmux.Vars(r)["uuid"], playerID(r))
		if err != nil {
			writeCardroomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	})
}

type postSeatPayload struct {
	BuyIn       int    `json:"buyIn"`
	DisplayName string `json:"displayName"`
}

func (m *Mux) postTableUUIDSeat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postSeatPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		id := playerID(r)
		seat := seatVar(r)

		snapshot, err := m.store.Update(r.Context(), gmux.Vars(r)["uuid"], id, func(t *cardroom.Table) error {
			return t.Join(seat, id, pp.BuyIn, pp.DisplayName)
		})
		if err != nil {
			writeCardroomError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, snapshot)
	})
}

func (m *Mux) deleteTableUUIDSeat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := playerID(r)
		seat := seatVar(r)

		snapshot, err := m.store.Update(r.Context(), gmux.Vars(r)["uuid"], id, func(t *cardroom.Table) error {
			return t.Leave(seat, id)
		})
		if err != nil {
			writeCardroomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	})
}

func (m *Mux) postTableUUIDDeal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := m.store.Update(r.Context(), gmux.Vars(r)["uuid"], playerID(r), func(t *cardroom.Table) error {
			return t.StartHand()
		})
		if err != nil {
			writeCardroomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	})
}

type postActionPayload struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (m *Mux) postTableUUIDAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		action, err := cardroom.ActionFromString(pp.Action)
		if err != nil {
			writeCardroomError(w, err)
			return
		}

		id := playerID(r)
		snapshot, err := m.store.Update(r.Context(), gmux.Vars(r)["uuid"], id, func(t *cardroom.Table) error {
			return t.PlayerAction(id, action, pp.Amount)
		})
		if err != nil {
			writeCardroomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	})
}

func (m *Mux) postTableUUIDSeatReveal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := playerID(r)
		seat := seatVar(r)

		snapshot, err := m.store.Update(r.Context(), gmux.Vars(r)["uuid"], id, func(t *cardroom.Table) error {
			return t.Reveal(seat, id)
		})
		if err != nil {
			writeCardroomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	})
}

// seatVar is safe on routes with the {seat:[0-9]+} pattern
func seatVar(r *http.Request) int {
	seat, _ := strconv.Atoi(gmux.Vars(r)["seat"])
	return seat
}
