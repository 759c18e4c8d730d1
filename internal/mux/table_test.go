package mux

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stageResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type seatResponse struct {
	Seat      int    `json:"seat"`
	PlayerID  int64  `json:"playerId"`
	Chips     int    `json:"chips"`
	StreetBet int    `json:"streetBet"`
	Folded    bool   `json:"folded"`
	InHand    bool   `json:"inHand"`
	HoleCards []struct {
		Rank int    `json:"rank"`
		Suit string `json:"suit"`
	} `json:"holeCards"`
}

type tableResponse struct {
	ID        string         `json:"id"`
	Variant   string         `json:"variant"`
	Stage     stageResponse  `json:"stage"`
	Pot       int            `json:"pot"`
	SeatToAct int            `json:"seatToAct"`
	HandID    int64          `json:"handId"`
	Seats     []seatResponse `json:"seats"`
}

func createTestTable(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	var resp tableResponse
	assertPost(t, ts, "/table", postTablePayload{
		Variant:    "holdem",
		SmallBlind: 5,
		BigBlind:   10,
		Seats:      6,
		MinPlayers: 2,
	}, &resp, http.StatusCreated, signedJWT(t, 1))

	assert.NotEqual(t, "", resp.ID)
	assert.Equal(t, "holdem", resp.Variant)
	assert.Equal(t, "idle", resp.Stage.Name)

	return resp.ID
}

func TestMux_TableLifecycle(t *testing.T) {
	ts, _ := testServer(t)

	tableID := createTestTable(t, ts)
	alice := signedJWT(t, 101)
	bob := signedJWT(t, 102)

	// join two seats
	var resp tableResponse
	assertPost(t, ts, fmt.Sprintf("/table/%s/seat/1", tableID), postSeatPayload{BuyIn: 1000, DisplayName: "alice"}, &resp, http.StatusCreated, alice)
	assert.Equal(t, int64(101), resp.Seats[0].PlayerID)

	// the seat is taken
	assertPost(t, ts, fmt.Sprintf("/table/%s/seat/1", tableID), postSeatPayload{BuyIn: 1000}, nil, http.StatusNotFound, bob)
	assertPost(t, ts, fmt.Sprintf("/table/%s/seat/2", tableID), postSeatPayload{BuyIn: 1000, DisplayName: "bob"}, nil, http.StatusCreated, bob)

	assertPost(t, ts, fmt.Sprintf("/table/%s/deal", tableID), nil, &resp, http.StatusOK, alice)
	assert.Equal(t, "preflop", resp.Stage.Name)
	assert.Equal(t, 15, resp.Pot)
	assert.Equal(t, 1, resp.SeatToAct)
	assert.Equal(t, int64(1), resp.HandID)

	// the dealing viewer sees their own hole cards and nobody else's
	assert.Equal(t, 2, len(resp.Seats[0].HoleCards))
	assert.Equal(t, 0, len(resp.Seats[1].HoleCards))

	// a second deal cannot start mid-hand
	assertPost(t, ts, fmt.Sprintf("/table/%s/deal", tableID), nil, nil, http.StatusConflict, alice)

	// heads-up: the dealer completes the small blind and the flop comes
	assertPost(t, ts, fmt.Sprintf("/table/%s/action", tableID), postActionPayload{Action: "call"}, &resp, http.StatusOK, alice)
	assert.Equal(t, "flop", resp.Stage.Name)
	assert.Equal(t, 20, resp.Pot)

	// out of turn
	assertPost(t, ts, fmt.Sprintf("/table/%s/action", tableID), postActionPayload{Action: "check"}, nil, http.StatusForbidden, bob)

	// bad action name
	assertPost(t, ts, fmt.Sprintf("/table/%s/action", tableID), postActionPayload{Action: "splash"}, nil, http.StatusBadRequest, alice)

	// reveal own cards
	assertPost(t, ts, fmt.Sprintf("/table/%s/seat/1/reveal", tableID), nil, &resp, http.StatusOK, alice)

	// a spectator's view hides hole cards
	var view tableResponse
	assertGet(t, ts, fmt.Sprintf("/table/%s", tableID), &view, http.StatusOK, signedJWT(t, 999))
	assert.Equal(t, 0, len(view.Seats[0].HoleCards))
	assert.Equal(t, 0, len(view.Seats[1].HoleCards))
}

func TestMux_LeaveSeat(t *testing.T) {
	ts, _ := testServer(t)

	tableID := createTestTable(t, ts)
	alice := signedJWT(t, 101)
	bob := signedJWT(t, 102)

	assertPost(t, ts, fmt.Sprintf("/table/%s/seat/1", tableID), postSeatPayload{BuyIn: 1000}, nil, http.StatusCreated, alice)

	// only the occupant may vacate
	assertRequest(t, ts, http.MethodDelete, fmt.Sprintf("/table/%s/seat/1", tableID), nil, nil, http.StatusForbidden, bob)

	var resp tableResponse
	assertRequest(t, ts, http.MethodDelete, fmt.Sprintf("/table/%s/seat/1", tableID), nil, &resp, http.StatusOK, alice)
	assert.Equal(t, int64(0), resp.Seats[0].PlayerID)
}

func TestMux_TableNotFound(t *testing.T) {
	ts, _ := testServer(t)

	assertGet(t, ts, "/table/00000000-0000-0000-0000-000000000000", nil, http.StatusNotFound, signedJWT(t, 1))
}

func TestMux_PostTable_Validation(t *testing.T) {
	ts, _ := testServer(t)

	var resp errorResponse
	assertPost(t, ts, "/table", postTablePayload{
		Variant:    "holdem",
		SmallBlind: 20,
		BigBlind:   10,
		Seats:      6,
		MinPlayers: 2,
	}, &resp, http.StatusBadRequest, signedJWT(t, 1))
	assert.Equal(t, "small blind cannot exceed the big blind", resp.Message)

	assertPost(t, ts, "/table", postTablePayload{
		Variant:    "canasta",
		SmallBlind: 5,
		BigBlind:   10,
		Seats:      6,
		MinPlayers: 2,
	}, nil, http.StatusBadRequest, signedJWT(t, 1))
}
