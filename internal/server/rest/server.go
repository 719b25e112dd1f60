// Package rest exposes the journal over a small JSON HTTP API: session
// login, entry CRUD, sync trigger, report cache and an attachment
// pass-through proxy. Routes are thin; all sync correctness lives below.
package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/daylog/internal/drive"
	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/dmitrijs2005/daylog/internal/server/auth"
	"github.com/dmitrijs2005/daylog/internal/store"
	"github.com/dmitrijs2005/daylog/internal/syncer"
)

// Server bundles the handlers' dependencies.
type Server struct {
	store      *store.Store
	engine     *syncer.Engine
	remote     *drive.Adapter
	users      auth.Users
	secretKey  []byte
	sessionTTL time.Duration
	log        logging.Logger
}

// NewServer wires the REST surface over the core components.
func NewServer(st *store.Store, engine *syncer.Engine, remote *drive.Adapter,
	users auth.Users, secretKey []byte, sessionTTL time.Duration, log logging.Logger) *Server {
	return &Server{
		store:      st,
		engine:     engine,
		remote:     remote,
		users:      users,
		secretKey:  secretKey,
		sessionTTL: sessionTTL,
		log:        log.With("component", "rest"),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(LoggerMiddleware(s.log))

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(AuthMiddleware(s.secretKey))

	protected.HandleFunc("/entries", s.handleListEntries).Methods(http.MethodGet)
	protected.HandleFunc("/entries", s.handleCreateEntry).Methods(http.MethodPost)
	protected.HandleFunc("/entries/{id}", s.handleDeleteEntry).Methods(http.MethodDelete)

	protected.HandleFunc("/sync", s.handleSync).Methods(http.MethodPost)

	protected.HandleFunc("/reports", s.handleGetReport).Methods(http.MethodGet)
	protected.HandleFunc("/reports", s.handleSaveReport).Methods(http.MethodPost)

	protected.HandleFunc("/attachments", s.handleDownloadAttachment).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
