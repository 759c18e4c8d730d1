package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"clubsocial-server/internal/config"
	"clubsocial-server/internal/jwt"
	"clubsocial-server/internal/mux"
	"clubsocial-server/pkg/cardroom"
	"clubsocial-server/pkg/db"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (defaults to the configured address)")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadKeys()

	// run the db migrations
	db.Migrate()

	recorder := db.NewPostgresRecorder(db.Instance())
	store := cardroom.NewStore(logrus.StandardLogger(), cardroom.WithRecorder(recorder))
	restoreTables(store, recorder)

	cfg := config.Instance()
	sweeper := cardroom.NewSweeper(store,
		time.Duration(cfg.Sweep.IntervalSeconds)*time.Second,
		time.Duration(cfg.Sweep.TimeoutSeconds)*time.Second,
		logrus.StandardLogger())
	go sweeper.Run(context.Background())

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	listen := *addr
	if listen == "" {
		listen = cfg.Listen
	}

	srv := &http.Server{
		Addr:         listen,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, store))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func restoreTables(store *cardroom.Store, recorder *db.PostgresRecorder) {
	records, err := recorder.LoadTables(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("could not load tables")
	}

	for _, record := range records {
		if err := store.Restore(record); err != nil {
			logrus.WithError(err).WithField("table", record.ID).Error("could not restore table")
		}
	}

	logrus.WithField("tables", len(records)).Info("restored tables")
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
