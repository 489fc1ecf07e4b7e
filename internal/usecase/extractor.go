package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cv-generator/internal/model"
	"cv-generator/internal/store"
	"cv-generator/pkg/ai"
)

// Fetcher retrieves the plain-text rendering of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Completer turns a prompt into a model completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// UpstreamError wraps a collaborator failure so handlers can name the stage
// that failed.
type UpstreamError struct {
	Stage string // "fetch" or "completion"
	Err   error
}

func (e *UpstreamError) Error() string { return e.Stage + " failed: " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// Result is the outcome of one extraction run. A malformed model reply is
// not an error: Parsed is false and RawContent plus the parse diagnostics
// describe what came back.
type Result struct {
	SessionID   string
	RawContent  string
	Parsed      bool
	CV          *model.CVRecord
	ParseError  string
	ParseOffset int64
}

// Extractor orchestrates fetch → prompt → complete → clean → parse → store.
type Extractor struct {
	fetcher   Fetcher
	completer Completer
	store     store.SessionStore
	log       zerolog.Logger
}

func NewExtractor(f Fetcher, c Completer, s store.SessionStore, log zerolog.Logger) *Extractor {
	return &Extractor{fetcher: f, completer: c, store: s, log: log}
}

// ExtractFromURL runs the full pipeline for one target URL. Upstream
// failures return an UpstreamError; a reply that fails to parse returns a
// degraded Result with a nil error.
func (e *Extractor) ExtractFromURL(ctx context.Context, url, sessionID string) (*Result, error) {
	if sessionID == "" {
		sessionID = store.DefaultSessionID
	}
	log := e.log.With().
		Str("req_id", uuid.New().String()).
		Str("url", url).
		Str("session_id", sessionID).
		Logger()

	pageText, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Error().Err(err).Msg("page fetch failed")
		return nil, &UpstreamError{Stage: "fetch", Err: err}
	}
	log.Info().Int("page_len", len(pageText)).Msg("page fetched")

	reply, err := e.completer.Complete(ctx, ai.BuildExtractionPrompt(pageText))
	if err != nil {
		log.Error().Err(err).Msg("completion failed")
		return nil, &UpstreamError{Stage: "completion", Err: err}
	}

	res := e.ProcessReply(reply, sessionID)
	if res.Parsed {
		log.Info().Strs("fields", res.CV.PresentFields()).Msg("cv extracted and stored")
	} else {
		log.Warn().Int64("offset", res.ParseOffset).Str("error", res.ParseError).
			Msg("model reply is not valid JSON")
	}
	return res, nil
}

// ProcessReply cleans a raw model reply, parses it as a CVRecord, and on
// success stores it under sessionID. Parse failure degrades to a Result
// carrying the raw text and the error offset.
func (e *Extractor) ProcessReply(raw, sessionID string) *Result {
	if sessionID == "" {
		sessionID = store.DefaultSessionID
	}
	cleaned := ai.CleanModelReply(raw)
	cv, perr := model.ParseCVRecord([]byte(cleaned))
	if perr != nil {
		return &Result{
			SessionID:   sessionID,
			RawContent:  raw,
			ParseError:  perr.Err.Error(),
			ParseOffset: perr.Offset,
		}
	}
	e.store.Put(sessionID, cv)
	return &Result{SessionID: sessionID, RawContent: raw, Parsed: true, CV: cv}
}
