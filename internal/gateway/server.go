package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"searchbyimage/internal/domain"
	"searchbyimage/internal/slogs"
)

const maxBodyBytes = 1 << 20

// Server is an in-memory chat gateway. It queues group-message events per
// bot, keeps the chains bots post back and resolves image ids to URLs.
type Server struct {
	mu      sync.Mutex
	plugins map[string]domain.PluginDescriptor
	queues  map[domain.UserID][]domain.GroupMessageEvent
	outbox  map[domain.GroupID][]domain.MessageChain
	images  map[domain.ImageID]string

	now func() time.Time
}

// NewServer returns an empty gateway.
func NewServer() *Server {
	return &Server{
		plugins: make(map[string]domain.PluginDescriptor),
		queues:  make(map[domain.UserID][]domain.GroupMessageEvent),
		outbox:  make(map[domain.GroupID][]domain.MessageChain),
		images:  make(map[domain.ImageID]string),
		now:     time.Now,
	}
}

// Handler returns the gateway's HTTP API with CORS and access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /plugins", s.handleRegister)
	mux.HandleFunc("POST /events/{bot}", s.handleEnqueue)
	mux.HandleFunc("GET /events/{bot}", s.handleFetch)
	mux.HandleFunc("POST /events/{bot}/ack", s.handleAck)
	mux.HandleFunc("POST /groups/{group}/messages", s.handleSend)
	mux.HandleFunc("GET /groups/{group}/messages", s.handleList)
	mux.HandleFunc("GET /images/{id}", s.handleImage)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return accessLog(c.Handler(mux))
}

// Plugins returns the registered plugin descriptors.
func (s *Server) Plugins() []domain.PluginDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PluginDescriptor, 0, len(s.plugins))
	for _, d := range s.plugins {
		out = append(out, d)
	}
	return out
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var d domain.PluginDescriptor
	if !decode(w, r, &d) {
		return
	}
	if d.ID == "" {
		writeError(w, http.StatusBadRequest, "plugin id is required")
		return
	}
	s.mu.Lock()
	s.plugins[d.ID] = d
	s.mu.Unlock()

	slog.Info("Plugin registered", slogs.ID, d.ID, slogs.Name, d.Name, slogs.Version, d.Version)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	bot, ok := pathInt(w, r, "bot")
	if !ok {
		return
	}
	var ev domain.GroupMessageEvent
	if !decode(w, r, &ev) {
		return
	}
	ev.BotID = domain.UserID(bot)
	if ev.ID == "" {
		ev.ID = domain.EventID(uuid.NewString())
	}
	if ev.Time == 0 {
		ev.Time = s.now().Unix()
	}

	s.mu.Lock()
	s.rememberImages(ev.Message)
	s.queues[ev.BotID] = append(s.queues[ev.BotID], ev)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	bot, ok := pathInt(w, r, "bot")
	if !ok {
		return
	}
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	s.mu.Lock()
	q := s.queues[domain.UserID(bot)]
	if limit <= 0 || limit > len(q) {
		limit = len(q)
	}
	out := make([]domain.GroupMessageEvent, limit)
	copy(out, q[:limit])
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	bot, ok := pathInt(w, r, "bot")
	if !ok {
		return
	}
	var req ackRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Count < 0 {
		writeError(w, http.StatusBadRequest, "count must not be negative")
		return
	}

	s.mu.Lock()
	id := domain.UserID(bot)
	q := s.queues[id]
	if req.Count >= len(q) {
		delete(s.queues, id)
	} else {
		s.queues[id] = append([]domain.GroupMessageEvent(nil), q[req.Count:]...)
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	group, ok := pathInt(w, r, "group")
	if !ok {
		return
	}
	var chain domain.MessageChain
	if !decode(w, r, &chain) {
		return
	}
	if len(chain) == 0 {
		writeError(w, http.StatusBadRequest, "empty message")
		return
	}

	s.mu.Lock()
	s.rememberImages(chain)
	s.outbox[domain.GroupID(group)] = append(s.outbox[domain.GroupID(group)], chain)
	s.mu.Unlock()

	slog.Info("Group message", slogs.GroupID, group, slogs.Count, len(chain))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	group, ok := pathInt(w, r, "group")
	if !ok {
		return
	}
	s.mu.Lock()
	out := append([]domain.MessageChain{}, s.outbox[domain.GroupID(group)]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	id := domain.ImageID(r.PathValue("id"))
	s.mu.Lock()
	u, ok := s.images[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "unknown image")
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{URL: u})
}

// rememberImages records id to URL mappings. Callers hold s.mu.
func (s *Server) rememberImages(chain domain.MessageChain) {
	for _, seg := range chain {
		if seg.Kind == domain.SegmentImage && seg.ImageID != "" && seg.URL != "" {
			s.images[seg.ImageID] = seg.URL
		}
	}
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	n, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		slog.Debug("Request",
			slogs.Method, r.Method,
			slogs.Path, r.URL.Path,
			slogs.Remote, r.RemoteAddr,
			slogs.Status, rec.status,
			slogs.Bytes, rec.bytes,
			slogs.Duration, time.Since(start),
		)
	})
}
