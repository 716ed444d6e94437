// Command server exposes the navlang analyzer as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/analyze?sentence=<text>
//	POST /api/analyze/batch   body: {"sentences":["...", ...]}
//	GET  /api/decompose?token=<word>
//	GET  /api/lexicon?root=<word>
//
// Configuration is read once at startup from navlang.yaml (working
// directory) and NAVLANG_* environment variables.
package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/navi-tools/navlang"
)

// ---- JSON response types ------------------------------------------------

type morphemeJSON struct {
	Surface    string `json:"surface"`
	Attachment string `json:"attachment"`
	Gloss      string `json:"gloss"`
}

type wordJSON struct {
	Token      string         `json:"token"`
	Position   int            `json:"position"`
	Root       string         `json:"root,omitempty"`
	POS        string         `json:"pos"`
	Gloss      string         `json:"gloss,omitempty"`
	Case       string         `json:"case,omitempty"`
	Number     string         `json:"number,omitempty"`
	Tense      string         `json:"tense,omitempty"`
	Affect     string         `json:"affect,omitempty"`
	Adposition string         `json:"adposition,omitempty"`
	Morphemes  []morphemeJSON `json:"morphemes,omitempty"`
	Unresolved bool           `json:"unresolved,omitempty"`
}

type edgeJSON struct {
	Head      int    `json:"head"`
	Dependent int    `json:"dependent"`
	Relation  string `json:"relation"`
}

type clauseJSON struct {
	Root  int        `json:"root"`
	Edges []edgeJSON `json:"edges"`
}

type issueJSON struct {
	Position int    `json:"position"`
	Token    string `json:"token"`
	Kind     string `json:"kind"`
}

type sentenceJSON struct {
	Text     string       `json:"text"`
	Words    []wordJSON   `json:"words"`
	Edges    []edgeJSON   `json:"edges"`
	Clauses  []clauseJSON `json:"clauses"`
	Verbless bool         `json:"verbless"`
	Issues   []issueJSON  `json:"issues,omitempty"`
}

type batchResponse struct {
	ID        string          `json:"id"`
	Sentences []*sentenceJSON `json:"sentences"`
	Errors    []string        `json:"errors"`
	POSTally  map[string]int  `json:"pos_tally"`
}

type decomposeResponse struct {
	Token          string     `json:"token"`
	Decompositions []wordJSON `json:"decompositions"`
}

type lexiconResponse struct {
	Root    string      `json:"root"`
	Entries []entryJSON `json:"entries"`
}

type entryJSON struct {
	Root       string `json:"root"`
	POS        string `json:"pos"`
	Gloss      string `json:"gloss"`
	Frequency  int    `json:"frequency"`
	Transitive bool   `json:"transitive,omitempty"`
	Subtype    string `json:"subtype,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toWordJSON(token string, position int, d *navlang.Decomposition) wordJSON {
	w := wordJSON{
		Token:      token,
		Position:   position,
		POS:        d.POS.String(),
		Unresolved: d.Unresolved,
	}
	if d.Unresolved {
		return w
	}
	w.Root = d.Root
	w.Gloss = d.Gloss
	w.Adposition = d.Features.Adposition
	switch d.POS {
	case navlang.POSNoun, navlang.POSPronoun:
		w.Case = d.Features.Case.String()
		w.Number = d.Features.Number.String()
	case navlang.POSVerb:
		w.Tense = d.Features.Tense.String()
		w.Affect = d.Features.Affect.String()
	}
	for _, m := range d.Morphemes {
		w.Morphemes = append(w.Morphemes, morphemeJSON{
			Surface:    m.Surface,
			Attachment: m.Attachment.String(),
			Gloss:      m.Gloss,
		})
	}
	return w
}

func toSentenceJSON(an *navlang.SentenceAnalysis) *sentenceJSON {
	out := &sentenceJSON{
		Text:     an.Text,
		Words:    make([]wordJSON, 0, len(an.Words)),
		Edges:    make([]edgeJSON, 0, len(an.Edges)),
		Clauses:  make([]clauseJSON, 0, len(an.Clauses)),
		Verbless: an.Verbless,
	}
	for i := range an.Words {
		w := &an.Words[i]
		out.Words = append(out.Words, toWordJSON(w.Form.Text, w.Form.Position, &w.Decomposition))
	}
	for _, e := range an.Edges {
		out.Edges = append(out.Edges, edgeJSON{Head: e.Head, Dependent: e.Dependent, Relation: e.Relation.String()})
	}
	for _, c := range an.Clauses {
		cj := clauseJSON{Root: c.Root, Edges: make([]edgeJSON, 0, len(c.Edges))}
		for _, e := range c.Edges {
			cj.Edges = append(cj.Edges, edgeJSON{Head: e.Head, Dependent: e.Dependent, Relation: e.Relation.String()})
		}
		out.Clauses = append(out.Clauses, cj)
	}
	for _, is := range an.Issues {
		out.Issues = append(out.Issues, issueJSON{Position: is.Position, Token: is.Token, Kind: is.Kind.String()})
	}
	return out
}

func writeJSON(log zerolog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(log zerolog.Logger, w http.ResponseWriter, status int, msg string) {
	writeJSON(log, w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleAnalyze(a *navlang.Analyzer, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(log, w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		sentence := r.URL.Query().Get("sentence")
		if sentence == "" {
			writeError(log, w, http.StatusBadRequest, "missing 'sentence' query parameter")
			return
		}
		an, err := a.AnalyzeSentence(r.Context(), sentence)
		if err != nil {
			writeError(log, w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(log, w, http.StatusOK, toSentenceJSON(an))
	}
}

func handleBatch(a *navlang.Analyzer, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(log, w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Sentences []string `json:"sentences"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Sentences) == 0 {
			writeError(log, w, http.StatusBadRequest, "body must be JSON with a non-empty 'sentences' array")
			return
		}
		res, err := a.AnalyzeBatch(r.Context(), body.Sentences)
		if err != nil {
			writeError(log, w, http.StatusInternalServerError, err.Error())
			return
		}
		resp := batchResponse{
			ID:        res.ID,
			Sentences: make([]*sentenceJSON, len(res.Analyses)),
			Errors:    make([]string, len(res.Errs)),
			POSTally:  make(map[string]int, len(res.POSTally)),
		}
		for i, an := range res.Analyses {
			if an != nil {
				resp.Sentences[i] = toSentenceJSON(an)
			}
		}
		for i, e := range res.Errs {
			if e != nil {
				resp.Errors[i] = e.Error()
			}
		}
		for pos, n := range res.POSTally {
			resp.POSTally[pos.String()] = n
		}
		writeJSON(log, w, http.StatusOK, resp)
	}
}

func handleDecompose(a *navlang.Analyzer, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(log, w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		token := r.URL.Query().Get("token")
		if token == "" {
			writeError(log, w, http.StatusBadRequest, "missing 'token' query parameter")
			return
		}
		if err := navlang.CheckToken(token); err != nil {
			writeError(log, w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		ds := a.Decompose(r.Context(), token)
		resp := decomposeResponse{Token: token, Decompositions: make([]wordJSON, 0, len(ds))}
		for i := range ds {
			resp.Decompositions = append(resp.Decompositions, toWordJSON(token, 0, &ds[i]))
		}
		status := http.StatusOK
		if len(ds) == 0 {
			status = http.StatusNotFound
		}
		writeJSON(log, w, status, resp)
	}
}

func handleLexicon(lex navlang.Lexicon, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(log, w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		root := r.URL.Query().Get("root")
		if root == "" {
			writeError(log, w, http.StatusBadRequest, "missing 'root' query parameter")
			return
		}
		entries, err := lex.Lookup(r.Context(), root)
		if err != nil {
			if errors.Is(err, navlang.ErrLexiconUnavailable) {
				writeError(log, w, http.StatusBadGateway, err.Error())
				return
			}
			writeError(log, w, http.StatusInternalServerError, err.Error())
			return
		}
		resp := lexiconResponse{Root: root, Entries: make([]entryJSON, 0, len(entries))}
		for _, e := range entries {
			resp.Entries = append(resp.Entries, entryJSON{
				Root:       e.Root,
				POS:        e.POS.String(),
				Gloss:      e.Gloss,
				Frequency:  e.Frequency,
				Transitive: e.Transitive,
				Subtype:    e.Subtype,
			})
		}
		// sort for deterministic output
		sort.Slice(resp.Entries, func(i, j int) bool {
			if resp.Entries[i].POS != resp.Entries[j].POS {
				return resp.Entries[i].POS < resp.Entries[j].POS
			}
			return resp.Entries[i].Gloss < resp.Entries[j].Gloss
		})
		status := http.StatusOK
		if len(entries) == 0 {
			status = http.StatusNotFound
		}
		writeJSON(log, w, status, resp)
	}
}

// ---- main ---------------------------------------------------------------

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	viper.SetDefault("addr", ":8080")
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("lexicon_url", "")
	viper.SetDefault("lexicon_timeout", "3s")
	viper.SetDefault("workers", 0)
	viper.SetConfigName("navlang")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("navlang")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("read config")
		}
	}

	dataDir := viper.GetString("data_dir")
	log.Info().Str("data_dir", dataDir).Msg("loading grammar data")
	grammar, fileLex, err := navlang.LoadDataDir(dataDir)
	if err != nil {
		// the grammar table is the one fatal dependency
		log.Fatal().Err(err).Msg("load grammar data")
	}

	var lexicon navlang.Lexicon = fileLex
	if u := viper.GetString("lexicon_url"); u != "" {
		lexicon = navlang.NewHTTPLexicon(u, viper.GetDuration("lexicon_timeout"))
		log.Info().Str("url", u).Msg("using remote lexicon")
	}

	analyzer, err := navlang.New(grammar, lexicon,
		navlang.WithLogger(log),
		navlang.WithWorkers(viper.GetInt("workers")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("construct analyzer")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/batch", handleBatch(analyzer, log))
	mux.HandleFunc("/api/analyze", handleAnalyze(analyzer, log))
	mux.HandleFunc("/api/decompose", handleDecompose(analyzer, log))
	mux.HandleFunc("/api/lexicon", handleLexicon(lexicon, log))

	handler := cors.Default().Handler(mux)
	addr := viper.GetString("addr")
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
