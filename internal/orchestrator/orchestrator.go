// Package orchestrator sequences analyses over a shared input set:
// cache lookup, prompt build, model call with a per-kind retry budget,
// payload extraction, sanitization, cache store, optional persistence.
// Chained kinds receive the sanitized prerequisite result as prompt
// context; a failed prerequisite degrades the dependent instead of
// aborting it.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"autoinspect/internal/analysis"
	"autoinspect/internal/extract"
	"autoinspect/internal/fingerprint"
	"autoinspect/internal/imagesource"
	"autoinspect/internal/llmclient"
	"autoinspect/internal/prompt"
	"autoinspect/internal/report"
	"autoinspect/internal/resultcache"
	"autoinspect/internal/sanitize"
	"autoinspect/internal/util/jsonutil"
)

// Request is one analysis input set: the photographs plus optional
// vehicle metadata. The first image is the primary content for
// fingerprinting and bounding boxes.
type Request struct {
	ReportID string
	Images   []llmclient.Attachment
	Vehicle  analysis.VehicleInfo
}

var ErrNoImages = errors.New("orchestrator: request carries no images")

// ErrNoImageSource means a ref-based run was requested but no image
// source was configured.
var ErrNoImageSource = errors.New("orchestrator: no image source configured")

// Service owns the pipeline's client handle and caches explicitly; no
// package-level state. Construct one per process (or per test) and
// share it across callers; all methods are safe for concurrent use.
type Service struct {
	client    llmclient.Client
	sanitizer *sanitize.Sanitizer
	store     report.Store
	images    imagesource.Source
	log       *zap.Logger

	damage     *resultcache.Cache[analysis.AnalysisResult]
	valuations *resultcache.Cache[analysis.ValuationResult]
	reports    *resultcache.Cache[analysis.ReportResult]

	budgets     map[analysis.Kind]int
	temperature float32
	callTimeout time.Duration
	now         func() time.Time
}

type Option func(*Service)

// WithStore persists every sanitized result as an opaque blob.
func WithStore(st report.Store) Option { return func(s *Service) { s.store = st } }

func WithLogger(log *zap.Logger) Option { return func(s *Service) { s.log = log } }

// WithImageSource enables ref-based runs: RunRefs resolves image
// references through src before analysis.
func WithImageSource(src imagesource.Source) Option { return func(s *Service) { s.images = src } }

// WithRetryBudgets sets per-kind retries after the first attempt.
func WithRetryBudgets(b map[analysis.Kind]int) Option {
	return func(s *Service) {
		for k, v := range b {
			s.budgets[k] = v
		}
	}
}

func WithSanitizer(sn *sanitize.Sanitizer) Option { return func(s *Service) { s.sanitizer = sn } }

func WithTemperature(t float32) Option { return func(s *Service) { s.temperature = t } }

// WithCallTimeout bounds each model invocation so a hung call cannot
// block the chain indefinitely.
func WithCallTimeout(d time.Duration) Option { return func(s *Service) { s.callTimeout = d } }

// WithClock injects the timestamp source used for provenance.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(client llmclient.Client, cacheCapacity int, opts ...Option) (*Service, error) {
	dmg, err := resultcache.New[analysis.AnalysisResult](cacheCapacity)
	if err != nil {
		return nil, err
	}
	val, err := resultcache.New[analysis.ValuationResult](cacheCapacity)
	if err != nil {
		return nil, err
	}
	rep, err := resultcache.New[analysis.ReportResult](cacheCapacity)
	if err != nil {
		return nil, err
	}
	s := &Service{
		client:     client,
		sanitizer:  sanitize.NewDefault(),
		log:        zap.NewNop(),
		damage:     dmg,
		valuations: val,
		reports:    rep,
		budgets: map[analysis.Kind]int{
			analysis.KindDamage:    1,
			analysis.KindValuation: 1,
			analysis.KindReport:    1,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ClearCaches drops all memoized results.
func (s *Service) ClearCaches() {
	s.damage.Clear()
	s.valuations.Clear()
	s.reports.Clear()
}

// Run executes the requested kinds plus their prerequisites against one
// input set. It returns an error only for unusable requests; per-kind
// failures are reported on the stages.
func (s *Service) Run(ctx context.Context, req Request, kinds ...analysis.Kind) (*RunResult, error) {
	if len(req.Images) == 0 {
		return nil, ErrNoImages
	}
	if len(kinds) == 0 {
		kinds = []analysis.Kind{analysis.KindDamage}
	}
	res := &RunResult{
		RunID:    uuid.NewString(),
		ReportID: req.ReportID,
		Stages:   map[analysis.Kind]*Stage{},
	}
	order := expandKinds(kinds)
	for _, k := range order {
		res.Stages[k] = &Stage{Kind: k, State: StatePending}
	}
	log := s.log.With(zap.String("run_id", res.RunID), zap.String("report_id", req.ReportID))

	for _, k := range order {
		st := res.Stages[k]
		if err := ctx.Err(); err != nil {
			// Abandon: canceled runs mark remaining stages failed
			// without consuming any attempts.
			st.State = StateFailed
			st.Err = err
			continue
		}
		st.State = StateRunning
		s.runStage(ctx, req, res, st, log)
	}
	return res, nil
}

// RunRefs resolves image references through the configured source and
// runs the requested kinds over the fetched bytes. The image owner
// stays the upstream storage; this pipeline only reads.
func (s *Service) RunRefs(ctx context.Context, reportID string, refs []string, vehicle analysis.VehicleInfo, kinds ...analysis.Kind) (*RunResult, error) {
	if s.images == nil {
		return nil, ErrNoImageSource
	}
	if len(refs) == 0 {
		return nil, ErrNoImages
	}
	images := make([]llmclient.Attachment, 0, len(refs))
	for _, ref := range refs {
		img, err := s.images.Fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		images = append(images, llmclient.Attachment{MIMEType: img.MIMEType, Data: img.Bytes})
	}
	return s.Run(ctx, Request{ReportID: reportID, Images: images, Vehicle: vehicle}, kinds...)
}

// AnalyzeDamage runs only the damage analysis.
func (s *Service) AnalyzeDamage(ctx context.Context, req Request) (analysis.AnalysisResult, error) {
	if len(req.Images) == 0 {
		return analysis.AnalysisResult{}, ErrNoImages
	}
	key := s.cacheKey(req, analysis.KindDamage, s.discriminator(req, false))
	var attempts int
	out, err := s.damage.GetOrCompute(ctx, key, func(ctx context.Context) (analysis.AnalysisResult, error) {
		raw, prov, n, err := s.invoke(ctx, analysis.KindDamage, prompt.Damage(req.Vehicle), req)
		attempts = n
		if err != nil {
			return analysis.AnalysisResult{}, err
		}
		return s.sanitizer.Damage(raw, prov), nil
	})
	if err != nil {
		return analysis.AnalysisResult{}, &StageError{Kind: analysis.KindDamage, Attempts: attempts, Err: err}
	}
	return out, nil
}

// Valuate runs only the valuation. damage may be nil; the prompt then
// states that no assessment is available.
func (s *Service) Valuate(ctx context.Context, req Request, damage *analysis.AnalysisResult) (analysis.ValuationResult, error) {
	if len(req.Images) == 0 {
		return analysis.ValuationResult{}, ErrNoImages
	}
	key := s.cacheKey(req, analysis.KindValuation, s.discriminator(req, damage != nil))
	var attempts int
	out, err := s.valuations.GetOrCompute(ctx, key, func(ctx context.Context) (analysis.ValuationResult, error) {
		raw, prov, n, err := s.invoke(ctx, analysis.KindValuation, prompt.Valuation(req.Vehicle, damage), req)
		attempts = n
		if err != nil {
			return analysis.ValuationResult{}, err
		}
		return s.sanitizer.Valuation(raw, prov, damage != nil), nil
	})
	if err != nil {
		return analysis.ValuationResult{}, &StageError{Kind: analysis.KindValuation, Attempts: attempts, Err: err}
	}
	return out, nil
}

// runStage executes one stage, threading prerequisite results from the
// run record and noting degradation when they are missing.
func (s *Service) runStage(ctx context.Context, req Request, res *RunResult, st *Stage, log *zap.Logger) {
	start := s.now()
	switch st.Kind {
	case analysis.KindDamage:
		out, err := s.AnalyzeDamage(ctx, req)
		s.finishStage(ctx, res, st, err, log, start, func() []byte {
			res.Damage = &out
			return marshalBlob(out)
		})

	case analysis.KindValuation:
		st.Degraded = s.noteDegraded(res, st, analysis.KindDamage, log)
		out, err := s.Valuate(ctx, req, res.Damage)
		s.finishStage(ctx, res, st, err, log, start, func() []byte {
			res.Valuation = &out
			return marshalBlob(out)
		})

	case analysis.KindReport:
		dmgMissing := s.noteDegraded(res, st, analysis.KindDamage, log)
		valMissing := s.noteDegraded(res, st, analysis.KindValuation, log)
		st.Degraded = dmgMissing || valMissing
		out, err := s.composeReport(ctx, req, res.Damage, res.Valuation)
		s.finishStage(ctx, res, st, err, log, start, func() []byte {
			res.Report = &out
			return marshalBlob(out)
		})
	}
}

func (s *Service) composeReport(ctx context.Context, req Request, dmg *analysis.AnalysisResult, val *analysis.ValuationResult) (analysis.ReportResult, error) {
	disc := s.discriminator(req, dmg != nil)
	if val != nil {
		disc += "+val"
	}
	key := s.cacheKey(req, analysis.KindReport, disc)
	var attempts int
	out, err := s.reports.GetOrCompute(ctx, key, func(ctx context.Context) (analysis.ReportResult, error) {
		raw, prov, n, err := s.invoke(ctx, analysis.KindReport, prompt.Report(req.Vehicle, dmg, val), req)
		attempts = n
		if err != nil {
			return analysis.ReportResult{}, err
		}
		return s.sanitizer.Report(raw, prov), nil
	})
	if err != nil {
		return analysis.ReportResult{}, &StageError{Kind: analysis.KindReport, Attempts: attempts, Err: err}
	}
	return out, nil
}

// noteDegraded records a PrerequisiteFailedError when the named
// prerequisite did not reach done in this run.
func (s *Service) noteDegraded(res *RunResult, st *Stage, prereq analysis.Kind, log *zap.Logger) bool {
	p, ok := res.Stages[prereq]
	if !ok || p.State == StateDone {
		return false
	}
	perr := &PrerequisiteFailedError{Kind: st.Kind, Prerequisite: prereq, Err: p.Err}
	log.Warn("running degraded", zap.String("kind", string(st.Kind)), zap.Error(perr))
	return true
}

func (s *Service) finishStage(ctx context.Context, res *RunResult, st *Stage, err error, log *zap.Logger, start time.Time, commit func() []byte) {
	var se *StageError
	if errors.As(err, &se) {
		st.Attempts = se.Attempts
	}
	if err != nil {
		st.State = StateFailed
		st.Err = err
		log.Warn("stage failed",
			zap.String("kind", string(st.Kind)),
			zap.Int("attempts", st.Attempts),
			zap.Duration("took", s.now().Sub(start)),
			zap.Error(err))
		return
	}
	blob := commit()
	st.State = StateDone
	log.Info("stage done",
		zap.String("kind", string(st.Kind)),
		zap.Bool("degraded", st.Degraded),
		zap.Duration("took", s.now().Sub(start)))
	if s.store != nil && strings.TrimSpace(res.ReportID) != "" && blob != nil {
		if err := s.store.Save(ctx, res.ReportID, st.Kind, blob); err != nil {
			// Persistence is a collaborator concern; the analysis
			// itself succeeded.
			log.Warn("store save failed", zap.String("kind", string(st.Kind)), zap.Error(err))
		}
	}
}

// invoke performs the model call with the kind's retry budget, then
// extracts the JSON payload. Extraction failures consume the budget
// like transport failures: a repeat call may produce a well-formed
// reply, re-parsing the same reply cannot.
func (s *Service) invoke(ctx context.Context, kind analysis.Kind, promptText string, req Request) (any, analysis.Provenance, int, error) {
	budget, ok := s.budgets[kind]
	if !ok {
		budget = 1
	}
	vreq := llmclient.VisionRequest{
		System:      prompt.System,
		Prompt:      promptText,
		Attachments: req.Images,
		Temperature: s.temperature,
	}
	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= budget; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			break
		}
		attempts++
		raw, err := s.generate(ctx, vreq)
		if err == nil {
			payload, perr := extract.Payload(raw)
			if perr == nil {
				prov := s.provenance()
				return payload, prov, attempts, nil
			}
			err = perr
		}
		lastErr = err
		if llmclient.IsPermanent(err) {
			break
		}
	}
	return nil, analysis.Provenance{}, attempts, lastErr
}

func (s *Service) generate(ctx context.Context, vreq llmclient.VisionRequest) (string, error) {
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}
	return s.client.GenerateVision(ctx, vreq)
}

func (s *Service) provenance() analysis.Provenance {
	provider, model := splitClientName(s.client.Name())
	return analysis.Provenance{
		Provider:  provider,
		Model:     model,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
}

func splitClientName(name string) (provider, model string) {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i], name[i+1:]
	}
	return name, name
}

// cacheKey fingerprints every attachment so a changed second photo is a
// different analysis. The digest frames each image's length and the
// image count: one photo "ab" and two photos "a","b" must not share a
// key, since the prompt binds bounding boxes to the first photograph.
func (s *Service) cacheKey(req Request, kind analysis.Kind, disc string) string {
	blobs := make([][]byte, 0, len(req.Images))
	for _, img := range req.Images {
		blobs = append(blobs, img.Data)
	}
	return fingerprint.Key(fingerprint.SumAll(blobs...), kind, disc)
}

// discriminator folds everything besides the image bytes that shapes the
// prompt into the cache key.
func (s *Service) discriminator(req Request, withDamageCtx bool) string {
	disc := "bare"
	if !req.Vehicle.Empty() {
		disc = "vehicle:" + fingerprint.Sum(marshalBlob(req.Vehicle))[:16]
	}
	if withDamageCtx {
		disc += "+dmg"
	}
	return disc
}

func marshalBlob(v any) []byte {
	b, err := jsonutil.MarshalNoEscape(v)
	if err != nil {
		return nil
	}
	return b
}
