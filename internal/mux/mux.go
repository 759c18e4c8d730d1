package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"clubsocial-server/internal/jwt"
	"clubsocial-server/pkg/cardroom"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const ctxPlayerIDKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	store   *cardroom.Store

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux over the card-room store
func NewMux(version string, store *cardroom.Store) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		store:   store,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

		tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
		tr.Methods(http.MethodPost).Path("/deal").Handler(this.postTableUUIDDeal())
		tr.Methods(http.MethodPost).Path("/action").Handler(this.postTableUUIDAction())
		tr.Methods(http.MethodPost).Path("/seat/{seat:[0-9]+}").Handler(this.postTableUUIDSeat())
		tr.Methods(http.MethodDelete).Path("/seat/{seat:[0-9]+}").Handler(this.deleteTableUUIDSeat())
		tr.Methods(http.MethodPost).Path("/seat/{seat:[0-9]+}/reveal").Handler(this.postTableUUIDSeatReveal())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, id)
		w.Header().Set("ClubSocial-PlayerID", strconv.FormatInt(id, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func playerID(r *http.Request) int64 {
	return r.Context().Value(ctxPlayerIDKey).(int64)
}
