package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ReloadFunc produces the records for a fresh engine.
type ReloadFunc func() ([]geo.Record, error)

// Engine is what the server queries and reloads. *suggest.Holder implements it.
type Engine interface {
	suggest.ISuggester
	Reload(records []geo.Record) *suggest.Engine
}

// Server handles the IPC for city suggestions
type Server struct {
	engine Engine
	reload ReloadFunc
	opts   suggest.Options

	dec *msgpack.Decoder
	enc *msgpack.Encoder

	requestCount int
}

// NewServer creates a suggestion server using stdin/stdout for IPC.
// reload may be nil, in which case reload requests fail.
func NewServer(engine Engine, reload ReloadFunc, opts suggest.Options) *Server {
	return NewServerWithIO(engine, reload, opts, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w.
func NewServerWithIO(engine Engine, reload ReloadFunc, opts suggest.Options, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine: engine,
		reload: reload,
		opts:   opts,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start announces readiness and serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	if err := s.send(StatusResponse{Status: "ready", Count: s.records()}); err != nil {
		return err
	}

	for {
		// one raw value at a time keeps the stream aligned when a request has the wrong shape
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}
		s.requestCount++

		if err := s.handleRaw(raw); err != nil {
			return err
		}
	}
}

func (s *Server) handleRaw(raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Debugf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid request", 400)
	}
	return s.handleRequest(req)
}

// handleRequest dispatches on the request action
func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "", ActionSuggest:
		return s.handleSuggest(req)
	case ActionReload:
		return s.handleReload(req)
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok", Count: s.records()})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleSuggest(req Request) error {
	start := time.Now()
	suggestions, err := s.opts.Run(s.engine, suggest.Query{
		Prefix:    req.Query,
		Latitude:  req.Lat,
		Longitude: req.Lon,
		Limit:     req.Limit,
	})
	if err != nil {
		var reqErr *suggest.RequestError
		if errors.As(err, &reqErr) {
			log.Debugf("Rejected request %s: %v", req.ID, err)
			return s.sendError(req.ID, reqErr.Error(), 400)
		}
		log.Errorf("Suggest failed for %q: %v", req.Query, err)
		return s.sendError(req.ID, err.Error(), 500)
	}
	elapsed := time.Since(start)

	out := make([]Suggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = Suggestion{
			Name:      sg.Name,
			Latitude:  sg.Latitude,
			Longitude: sg.Longitude,
			Score:     sg.Score,
		}
	}

	return s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleReload(req Request) error {
	if s.reload == nil {
		return s.sendError(req.ID, "reload is not configured", 500)
	}

	start := time.Now()
	records, err := s.reload()
	if err != nil {
		// the live engine stays published
		log.Errorf("Reload failed: %v", err)
		return s.sendError(req.ID, err.Error(), 500)
	}
	e := s.engine.Reload(records)
	count := e.Stats()["records"]
	log.Infof("Reloaded %d records in %v", count, time.Since(start))

	return s.send(StatusResponse{ID: req.ID, Status: "ok", Count: count})
}

func (s *Server) records() int {
	return s.engine.Stats()["records"]
}

// send encodes one response onto the output stream
func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
