// Package mockapi serves in-memory JSON collections with the same resource
// semantics as the hosted API tada talks to: list, create with a
// server-assigned id, partial update by id, delete by id.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// Record is one stored JSON object.
type Record map[string]any

type collection struct {
	nextID  int
	order   []string
	records map[string]Record
}

// Server holds the collections and routes requests to them.
type Server struct {
	mu     sync.Mutex
	colls  map[string]*collection
	router *httprouter.Router
	log    *zap.Logger
}

// New creates a server exposing the named collections at /<name>.
func New(log *zap.Logger, names ...string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		colls:  make(map[string]*collection, len(names)),
		router: httprouter.New(),
		log:    log,
	}
	for _, n := range names {
		s.colls[n] = &collection{nextID: 1, records: map[string]Record{}}
		base := "/" + n
		s.router.GET(base, s.list(n))
		s.router.POST(base, s.create(n))
		s.router.GET(base+"/:id", s.get(n))
		s.router.PUT(base+"/:id", s.update(n))
		s.router.DELETE(base+"/:id", s.remove(n))
	}
	return s
}

// ServeHTTP tags the request with an id and logs it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rid, err := gonanoid.New()
	if err != nil {
		rid = "-"
	}
	w.Header().Set("X-Request-Id", rid)
	rw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
	s.router.ServeHTTP(rw, r)
	s.log.Info("request",
		zap.String("request_id", rid),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rw.code),
		zap.Duration("took", time.Since(start)),
	)
}

// Seed appends records to a collection, assigning ids, and returns the ids.
func (s *Server) Seed(name string, recs ...Record) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.mustColl(name)
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, c.insert(r))
	}
	return ids
}

// Snapshot returns a copy of a collection in insertion order.
func (s *Server) Snapshot(name string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mustColl(name).all()
}

// mustColl is for the test-facing helpers; handlers answer 404 instead.
func (s *Server) mustColl(name string) *collection {
	c, ok := s.colls[name]
	if !ok {
		panic(fmt.Sprintf("mockapi: unknown collection %q", name))
	}
	return c
}

func (c *collection) insert(r Record) string {
	id := strconv.Itoa(c.nextID)
	c.nextID++
	rec := r.clone()
	rec["id"] = id
	c.records[id] = rec
	c.order = append(c.order, id)
	return id
}

func (c *collection) all() []Record {
	out := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.records[id].clone())
	}
	return out
}

func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (c *collection) delete(id string) bool {
	if _, ok := c.records[id]; !ok {
		return false
	}
	delete(c.records, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Server) list(name string) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, s.Snapshot(name))
	}
}

func (s *Server) create(name string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var rec Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		delete(rec, "id")
		s.mu.Lock()
		c := s.colls[name]
		id := c.insert(rec)
		out := c.records[id].clone()
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, out)
	}
}

func (s *Server) get(name string) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
		s.mu.Lock()
		rec, ok := s.colls[name].records[ps.ByName("id")]
		rec = rec.clone()
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, "Not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) update(name string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var patch Record
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		delete(patch, "id")
		s.mu.Lock()
		rec, ok := s.colls[name].records[ps.ByName("id")]
		if ok {
			for k, v := range patch {
				rec[k] = v
			}
			rec = rec.clone()
		}
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, "Not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) remove(name string) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")
		s.mu.Lock()
		rec, ok := s.colls[name].records[id]
		if ok {
			s.colls[name].delete(id)
		}
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, "Not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
