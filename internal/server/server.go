// Package server exposes molfile parsing and rendering over HTTP.
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/h1w0xxx/molrec/internal/mdl"
	"github.com/h1w0xxx/molrec/internal/molecule"
	"github.com/h1w0xxx/molrec/internal/render"
	"github.com/h1w0xxx/molrec/internal/sdf"
)

const maxBodyBytes = 1 << 20

type Options struct {
	Parse  sdf.Options
	Logger *slog.Logger
	// Library is an indexed SD file served by /api/molecule/random.
	Library  string
	MaxSize  int
	FontPath string

	// MaxResults and ResultTTL bound the results kept for GET
	// /api/molecule/{id}; zero values use 1024 entries and one hour.
	MaxResults int
	ResultTTL  time.Duration
}

type Server struct {
	opts   Options
	logger *slog.Logger

	results *resultStore

	mu      sync.Mutex
	offsets []int64
	rng     *rand.Rand
}

// New creates a server. When opts.Library is set its index is loaded, or
// built in memory when the .index file is missing.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 600
	}
	s := &Server{
		opts:    opts,
		logger:  opts.Logger,
		results: newResultStore(opts.MaxResults, opts.ResultTTL),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if opts.Library != "" {
		offsets, err := loadOrBuildIndex(opts.Library)
		if err != nil {
			return nil, err
		}
		s.offsets = offsets
		s.logger.Info("library loaded", "path", opts.Library, "molecules", len(offsets))
	}
	return s, nil
}

// Handler returns the HTTP routes of s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/molecule/parse", s.handleParse)
	mux.HandleFunc("POST /api/molecule/render", s.handleRender)
	mux.HandleFunc("GET /api/molecule/random", s.handleRandom)
	mux.HandleFunc("GET /api/molecule/{id}", s.handleGet)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Error: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// statusFor maps parse failures onto 422 and everything else onto 500.
func statusFor(err error) int {
	var re *mdl.RecordError
	switch {
	case errors.As(err, &re),
		errors.Is(err, sdf.ErrTruncated),
		errors.Is(err, sdf.ErrBadCountsLine),
		errors.Is(err, sdf.ErrUnsupportedVersion),
		errors.Is(err, mdl.ErrUnknownChargeCode),
		errors.Is(err, molecule.ErrUnknownElement):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// readMolecule parses the request body as a molfile.
func (s *Server) readMolecule(w http.ResponseWriter, r *http.Request) (*molecule.Molecule, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return nil, false
	}
	mol, err := sdf.ParseMolBlock(string(body), s.opts.Parse)
	if err != nil {
		s.logger.Info("rejected molfile", "error", err)
		s.writeError(w, statusFor(err), err)
		return nil, false
	}
	molecule.Hydrogenate(mol)
	return mol, true
}

func (s *Server) store(mol *molecule.Molecule) ParseResponse {
	rsp := newParseResponse(uuid.New().String(), mol)
	s.results.put(rsp)
	return rsp
}

func newParseResponse(id string, mol *molecule.Molecule) ParseResponse {
	rsp := ParseResponse{
		ID:     id,
		Name:   mol.Name,
		Atoms:  make([]AtomJSON, len(mol.Atoms)),
		Bonds:  make([]BondJSON, len(mol.Bonds)),
		Chiral: molecule.ChiralCarbons(mol),
	}
	if rsp.Chiral == nil {
		rsp.Chiral = []int{}
	}
	for i, a := range mol.Atoms {
		rsp.Atoms[i] = AtomJSON{
			Element:        a.Element,
			X:              a.X,
			Y:              a.Y,
			Z:              a.Z,
			MassDifference: a.MassDifference,
			Charge:         a.Charge,
			Radical:        a.Radical,
			HCount:         a.HCount,
		}
	}
	for i, b := range mol.Bonds {
		rsp.Bonds[i] = BondJSON{From: b.From, To: b.To, Order: b.Order.String()}
	}
	return rsp
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	mol, ok := s.readMolecule(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.store(mol))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rsp, ok := s.results.get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("molecule %q not found", id))
		return
	}
	s.writeJSON(w, http.StatusOK, rsp)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	if s.opts.Library == "" {
		s.writeError(w, http.StatusNotFound, errors.New("no molecule library configured"))
		return
	}
	s.mu.Lock()
	mol, err := sdf.PickRandom(s.opts.Library, s.offsets, s.rng, s.opts.Parse)
	s.mu.Unlock()
	switch {
	case errors.Is(err, sdf.ErrEmptyIndex):
		s.writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.writeError(w, statusFor(err), err)
		return
	}
	molecule.Hydrogenate(mol)
	s.writeJSON(w, http.StatusOK, s.store(mol))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	mol, ok := s.readMolecule(w, r)
	if !ok {
		return
	}
	parsed := s.store(mol)

	cols, rows := render.AutoGrid(len(parsed.Chiral))
	cfg, err := render.NewConfig(mol, s.opts.MaxSize, cols, rows)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("failed to calculate render config: %w", err))
		return
	}
	cfg.FontPath = s.opts.FontPath
	for _, idx := range parsed.Chiral {
		cfg.Highlight[idx] = true
	}

	img, regions, err := render.PNG(mol, cfg)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to draw molecule: %w", err))
		return
	}

	set := make(map[string]struct{}, len(parsed.Chiral))
	for _, idx := range parsed.Chiral {
		set[cfg.Region(mol, idx)] = struct{}{}
	}
	chiralRegions := make([]string, 0, len(set))
	for lbl := range set {
		chiralRegions = append(chiralRegions, lbl)
	}
	sort.Strings(chiralRegions)

	s.writeJSON(w, http.StatusOK, RenderResponse{
		ID:            parsed.ID,
		Image:         "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
		Regions:       regions,
		ChiralRegions: chiralRegions,
	})
}
