package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"skytheme/codec"
	"skytheme/model"
	"skytheme/palette"
	"skytheme/storage"
	"skytheme/style"
)

// ActiveChangeFunc is called after the active theme changes.
type ActiveChangeFunc func(id model.ThemeID)

type Server struct {
	store    *storage.Store
	content  []string
	onChange ActiveChangeFunc

	// changeMu orders whole SetActive calls, so the last persisted and
	// broadcast theme is always the one Active reports.
	changeMu sync.Mutex
	mu       sync.RWMutex
	active   model.ThemeID

	ws       *WSConnectionManager
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewServer(store *storage.Store, active model.ThemeID, content []string, onChange ActiveChangeFunc) *Server {
	return &Server{
		store:    store,
		content:  content,
		onChange: onChange,
		active:   active,
		ws:       NewWSConnectionManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: log.With().Str("component", "api").Logger(),
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/themes", s.handleThemes)
	mux.HandleFunc("/api/themes/", s.handleThemeByID)
	mux.HandleFunc("/api/tailwind", s.handleTailwind)
	mux.HandleFunc("/api/active", s.handleActive)
	mux.HandleFunc("/api/artifacts", s.handleArtifacts)
	mux.HandleFunc("/api/build", s.handleBuild)
	mux.HandleFunc("/api/export/themes.json", s.handleExport(codec.FormatJSON))
	mux.HandleFunc("/api/export/themes.yaml", s.handleExport(codec.FormatYAML))
	mux.HandleFunc("/api/export/themes.csv", s.handleExportCSV)
	mux.HandleFunc("/theme.css", s.handleStylesheet)
	mux.HandleFunc("/ws", s.handleWS)
}

// Active returns the currently selected theme.
func (s *Server) Active() model.ThemeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActive selects a theme and notifies websocket clients if it changed.
func (s *Server) SetActive(id model.ThemeID) error {
	theme, ok := palette.Lookup(id)
	if !ok {
		return palette.ErrUnknownTheme
	}

	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	s.mu.Lock()
	changed := s.active != id
	s.active = id
	s.mu.Unlock()

	if !changed {
		return nil
	}
	s.logger.Info().Str("theme", string(id)).Msg("active theme changed")
	if s.onChange != nil {
		s.onChange(id)
	}
	s.ws.Broadcast(themeMessage("theme_changed", theme))
	return nil
}

// requireGet rejects anything but GET with 405 and reports whether the
// request may proceed.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	w.WriteHeader(http.StatusMethodNotAllowed)
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------- themes ----------

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	themes := palette.All()
	resp := make([]model.ThemeWithID, 0, len(themes))
	for _, t := range themes {
		resp = append(resp, model.ThemeWithID{ID: t.ID, Wire: t.ToWire()})
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleThemeByID(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/themes/")
	id, err := palette.ParseID(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	t := palette.MustLookup(id)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, model.ThemeWithID{ID: t.ID, Wire: t.ToWire()})
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	themes := palette.All()
	if q := r.URL.Query().Get("theme"); q != "" {
		id, err := palette.ParseID(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		themes = []model.Theme{palette.MustLookup(id)}
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(style.Stylesheet(themes)))
}

func (s *Server) handleTailwind(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	data, err := codec.MarshalDocument(style.TailwindConfig(palette.All(), s.content))
	if err != nil {
		s.logger.Error().Err(err).Msg("render tailwind document")
		http.Error(w, "failed to render document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// ---------- active theme ----------

type activeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		t := palette.MustLookup(s.Active())
		writeJSON(w, http.StatusOK, model.ThemeWithID{ID: t.ID, Wire: t.ToWire()})

	case http.MethodPut:
		var req activeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		id, err := palette.ParseID(req.Theme)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.SetActive(id); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t := palette.MustLookup(id)
		writeJSON(w, http.StatusOK, model.ThemeWithID{ID: t.ID, Wire: t.ToWire()})

	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPut)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ---------- artifacts ----------

func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	s.writeArtifacts(w)
}

func (s *Server) writeArtifacts(w http.ResponseWriter) {
	artifacts, err := s.store.List()
	if err != nil {
		s.logger.Error().Err(err).Msg("list artifacts")
		http.Error(w, "failed to list artifacts", http.StatusInternalServerError)
		return
	}
	if artifacts == nil {
		artifacts = []model.Artifact{}
	}
	writeJSON(w, http.StatusOK, artifacts)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := storage.Build(s.store, palette.All(), s.content); err != nil {
		s.logger.Error().Err(err).Msg("build artifacts")
		http.Error(w, "build failed", http.StatusInternalServerError)
		return
	}
	s.writeArtifacts(w)
}

// ---------- export API ----------

func (s *Server) handleExport(format codec.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireGet(w, r) {
			return
		}

		data, err := codec.Marshal(format, palette.All())
		if err != nil {
			s.logger.Error().Err(err).Str("format", string(format)).Msg("export themes")
			http.Error(w, "failed to export themes", http.StatusInternalServerError)
			return
		}

		contentType := "application/json"
		if format == codec.FormatYAML {
			contentType = "application/yaml"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="themes.`+string(format)+`"`)
		_, _ = w.Write(data)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="themes.csv"`)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"id", "gradient_start", "gradient_middle", "gradient_end",
		"button", "accent", "text", "muted_text", "highlight", "border",
		"weather_card_class", "main_text_class", "secondary_text_class",
	}
	if err := cw.Write(header); err != nil {
		s.logger.Error().Err(err).Msg("write csv header")
		return
	}

	for _, t := range palette.All() {
		record := []string{
			string(t.ID), t.Gradient.Start, t.Gradient.Middle, t.Gradient.End,
			t.Button, t.Accent, t.Text, t.MutedText, t.Highlight, t.Border,
			t.WeatherCardClass, t.MainTextClass, t.SecondaryTextClass,
		}
		if err := cw.Write(record); err != nil {
			s.logger.Error().Err(err).Msg("write csv record")
			return
		}
	}
}

// ---------- websocket ----------

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	s.ws.Add(conn)
	defer func() {
		s.ws.Remove(conn)
		conn.Close()
	}()

	if err := s.ws.WriteJSON(conn, themeMessage("active", palette.MustLookup(s.Active()))); err != nil {
		return
	}

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				s.logger.Debug().Err(err).Msg("websocket read")
			}
			return
		}
	}
}

func themeMessage(kind string, t model.Theme) map[string]interface{} {
	return map[string]interface{}{
		"type":  kind,
		"theme": model.ThemeWithID{ID: t.ID, Wire: t.ToWire()},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writeJSON")
	}
}
