// cmd/logweb/main.go
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/solar-logbook/internal/config"
	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/logging"
	"github.com/tamzrod/solar-logbook/internal/report"
	"github.com/tamzrod/solar-logbook/internal/status"
	"github.com/tamzrod/solar-logbook/internal/store"
)

// entrySource answers year queries; *store.Store satisfies it.
type entrySource interface {
	Year(year int, loc *time.Location) ([]dailylog.Entry, error)
}

// App serves the generated pages and a small read-only JSON API.
// It never talks to the controller.
type App struct {
	logDir     string
	webDir     string
	statusFile string
	loc        *time.Location
	now        func() time.Time

	// nil reads the text log files
	entries entrySource
}

func NewApp(cfg config.Config, src entrySource) *App {
	return &App{
		logDir:     cfg.Paths.LogDir,
		webDir:     cfg.Paths.WebDir,
		statusFile: cfg.Paths.StatusFile,
		loc:        time.Local,
		now:        time.Now,
		entries:    src,
	}
}

func (app *App) router() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)

	r.HandleFunc("/", app.rootHandler).Methods("GET")
	r.HandleFunc("/api/status", app.statusHandler).Methods("GET")
	r.HandleFunc("/api/dailylog/{year:[0-9]{4}}", app.yearHandler).Methods("GET")

	if app.webDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(app.webDir)))
	}
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("response encode failed")
	}
}

func (app *App) rootHandler(w http.ResponseWriter, r *http.Request) {
	if app.webDir == "" {
		writeJSON(w, http.StatusOK, map[string]string{"service": "logweb"})
		return
	}
	year := strconv.Itoa(app.now().Year())
	http.Redirect(w, r, "/"+year+"/"+year+report.TableFileName, http.StatusFound)
}

func (app *App) statusHandler(w http.ResponseWriter, _ *http.Request) {
	s, err := status.ReadFile(app.statusFile)
	if err != nil {
		log.WithError(err).Error("status read failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (app *App) yearHandler(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad year"})
		return
	}

	var entries []dailylog.Entry
	if app.entries != nil {
		entries, err = app.entries.Year(year, app.loc)
	} else {
		entries, err = dailylog.ReadFile(dailylog.YearFile(app.logDir, year, dailylog.LogFileName), app.loc)
	}
	if err != nil {
		log.WithError(err).WithField("year", year).Error("daily log read failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []dailylog.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":    year,
		"entries": entries,
	})
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: logweb <config.yaml>")
	}

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		log.Errorf("config load failed: %v", err)
		os.Exit(status.ExitCode(err))
	}
	if err := config.Validate(cfg); err != nil {
		log.Errorf("config validation failed: %v", err)
		os.Exit(status.ExitCode(err))
	}
	config.Normalize(cfg)

	if err := logging.Setup(cfg.Log, os.Stderr); err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}

	var src entrySource
	if cfg.Store.SQLitePath != "" {
		st, err := store.Open(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatalf("store open failed: %v", err)
		}
		defer st.Close()
		src = st
	}

	app := NewApp(*cfg, src)

	log.WithFields(log.Fields{
		"listen":  cfg.Web.Listen,
		"web_dir": cfg.Paths.WebDir,
		"sqlite":  cfg.Store.SQLitePath != "",
	}).Info("logweb starting")

	if err := http.ListenAndServe(cfg.Web.Listen, app.router()); err != nil {
		log.Fatal(fmt.Errorf("logweb: %w", err))
	}
}
