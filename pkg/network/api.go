package network

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/conlang"
	"codeberg.org/n30w/nimi/pkg/export"
	"codeberg.org/n30w/nimi/pkg/grammar"
	"codeberg.org/n30w/nimi/pkg/lexicon"
	"codeberg.org/n30w/nimi/pkg/memory"
)

const maxConfigBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type romanizeResponse struct {
	IPA   string `json:"ipa"`
	Roman string `json:"roman"`
}

type assimilateResponse struct {
	Word  string `json:"word"`
	IPA   string `json:"ipa"`
	Roman string `json:"roman"`
}

type sentencesResponse struct {
	ID        string             `json:"id"`
	Sentences []grammar.Sentence `json:"sentences"`
}

// createGeneration generates a language from the server defaults overlaid
// with the optional JSON config in the request body.
func (s *Server) createGeneration(w http.ResponseWriter, r *http.Request) {
	cfg := s.defaults.Clone()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxConfigBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "failed to read request body"))
		return
	}

	if len(body) > 0 {
		err = json.Unmarshal(body, &cfg)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "failed to decode config"))
			return
		}
	}

	n, err := s.sentenceCount(r, s.config.sentences)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	g, err := conlang.Generate(cfg, n, s.logger)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrInvalidConfig) {
			status = http.StatusUnprocessableEntity
		}
		s.writeError(w, status, err)
		return
	}

	err = s.events.Publish(g.Summary(), func() error {
		return s.store.Save(g)
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Debug("stored generation", "id", g.Key(), "stored", s.store.Len())

	s.writeJSON(w, http.StatusCreated, g)
}

func (s *Server) listGenerations(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	recent := s.store.Recent(n)
	summaries := make([]conlang.Summary, len(recent))

	for i, g := range recent {
		summaries[i] = g.Summary()
	}

	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) getGeneration(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, g)
}

// getSentences composes fresh sentences from a stored dictionary. The
// dictionary is a snapshot and is only read.
func (s *Server) getSentences(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}

	n, err := s.sentenceCount(r, s.config.sentences)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	gen := conlang.NewGenerator(0, s.logger)

	sentences := gen.GenerateSentences(g.Dictionary, g.Config, n)
	if sentences == nil && n > 0 {
		s.writeError(
			w,
			http.StatusUnprocessableEntity,
			errors.New(grammar.InsufficientVocabulary),
		)
		return
	}

	s.writeJSON(w, http.StatusOK, sentencesResponse{
		ID:        g.Key(),
		Sentences: sentences,
	})
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+g.Key()+`.csv"`)

	err := export.WriteCSV(w, g.Dictionary)
	if err != nil {
		s.logger.Error("failed to export csv", "id", g.Key(), "err", err)
	}
}

func (s *Server) exportJSON(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, g.Dictionary)
}

func (s *Server) getWord(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}

	roman := r.PathValue("roman")

	e, ok := g.Dictionary.Lookup(roman)
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.Wrapf(memory.ErrNotFound, "word %q", roman))
		return
	}

	s.writeJSON(w, http.StatusOK, e)
}

func (s *Server) romanize(w http.ResponseWriter, r *http.Request) {
	ipa := r.URL.Query().Get("ipa")

	s.writeJSON(w, http.StatusOK, romanizeResponse{
		IPA:   ipa,
		Roman: conlang.Romanize(ipa),
	})
}

// assimilate borrows a word into the inventory of the generation named by
// the "generation" query parameter, or into the default inventory.
func (s *Server) assimilate(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("missing word"))
		return
	}

	inv := s.defaults.Inventory

	if id := r.URL.Query().Get("generation"); id != "" {
		g, err := s.store.Get(id)
		if err != nil {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		inv = g.Config.Inventory
	}

	res := assimilateResponse{Word: word}

	if e, ok := lexicon.Borrow(word, inv); ok {
		res.IPA = e.IPA
		res.Roman = e.Roman
	}

	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (conlang.Generation, bool) {
	g, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, memory.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return g, false
	}

	return g, true
}

func (s *Server) sentenceCount(r *http.Request, fallback int) (int, error) {
	n, err := queryInt(r, "n", fallback)
	if err != nil {
		return 0, err
	}

	if n < 0 || n > maxSentences {
		return 0, errors.Errorf("n must be in 0..%d", maxSentences)
	}

	return n, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}

	return n, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		s.logger.Error("failed to write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error(err)
	} else {
		s.logger.Debug("request failed", "status", status, "err", err)
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
