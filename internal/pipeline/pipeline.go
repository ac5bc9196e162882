// Package pipeline orchestrates fetching source documents, running the
// verification search, classifying the results, and rendering reports.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/citelens/citelens/internal/cache"
	"github.com/citelens/citelens/internal/classify"
	"github.com/citelens/citelens/internal/llm"
	"github.com/citelens/citelens/internal/model"
	"github.com/citelens/citelens/internal/resolve"
	"github.com/citelens/citelens/internal/util"
	"github.com/citelens/citelens/internal/verify"
	"github.com/citelens/citelens/internal/worker"
)

// Pipeline wires the fetcher, searcher, and trust engine together.
type Pipeline struct {
	fetcher    *Fetcher
	searcher   *verify.Searcher
	docCache   cache.Cache // nil when caching is disabled
	robots     *util.RobotsChecker
	limiter    *worker.HostLimiter
	renderer   *Renderer
	summarizer *llm.Summarizer // nil when LLM summary is disabled
	config     *model.Config
}

// NewPipeline creates a pipeline from the configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	p := &Pipeline{
		fetcher:  NewFetcher(cfg.HTTP),
		searcher: verify.NewSearcher(),
		limiter:  worker.NewHostLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}

	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		p.docCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	} else if cfg.Cache.Enabled {
		p.docCache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
	}

	if cfg.HTTP.RespectRobots {
		p.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, 10*time.Second)
	}

	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			p.summarizer = s
		}
	}

	return p
}

// VerifyCitations runs the full search ladder for each citation and
// returns the classified report. Per-citation failures (unreachable
// source, robots denial) become not_found records with the failure in
// the attempt trail; they never abort the run.
func (p *Pipeline) VerifyCitations(ctx context.Context, file *CitationsFile) (*model.Report, error) {
	if file == nil || len(file.Citations) == 0 {
		return nil, fmt.Errorf("no citations to verify")
	}

	// Fetched documents are shared across citations within the run.
	docs := make(map[string]*verify.Document)
	records := make([]Record, 0, len(file.Citations))

	for i := range file.Citations {
		c := file.Citations[i]

		doc, err := p.documentFor(ctx, c.SourceURL, docs)
		var verification *model.Verification
		if err != nil {
			verification = &model.Verification{
				Status: model.StatusNotFound,
				SearchAttempts: []model.SearchAttempt{{
					Method: "fetch_source",
					Phrase: c.Phrase,
					Note:   fmt.Sprintf("source unavailable: %v", err),
				}},
			}
		} else {
			verification = p.searcher.Search(c, doc)
		}

		records = append(records, Record{Citation: &file.Citations[i], Verification: verification})
	}

	report := p.BuildReport(file.Source, records)

	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.Summarize(ctx, report)
		if err != nil {
			fmt.Printf("Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// ClassifyRecords classifies pre-existing verification records.
func (p *Pipeline) ClassifyRecords(file *RecordsFile) (*model.Report, error) {
	if file == nil || len(file.Records) == 0 {
		return nil, fmt.Errorf("no records to classify")
	}
	return p.BuildReport(file.Source, file.Records), nil
}

// BuildReport classifies every record, resolves its evidence image,
// and aggregates the summary. Classification is recomputed on every
// call: records may have been replaced by a polling search process
// since the last build, so nothing here is memoized.
func (p *Pipeline) BuildReport(source string, records []Record) *model.Report {
	report := &model.Report{
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Citations:   make([]model.CitationResult, 0, len(records)),
	}

	for _, r := range records {
		status := classify.Status(r.Verification)
		result := model.CitationResult{
			Citation:     r.Citation,
			Verification: r.Verification,
			Status:       status,
			TrustLevel:   classify.Level(r.Verification),
			Image:        resolve.Image(r.Verification),
		}
		report.Citations = append(report.Citations, result)

		report.Summary.Total++
		switch {
		case status.IsPartialMatch:
			report.Summary.Partial++
			report.Summary.Verified++
		case status.IsVerified:
			report.Summary.Verified++
		case status.IsMiss:
			report.Summary.Missed++
		case status.IsPending:
			report.Summary.Pending++
		default:
			report.Summary.Unknown++
		}
	}

	return report
}

// documentFor returns the searchable document for a source URL, going
// through the per-run map, the document cache, robots gating, and the
// host rate limiter in that order.
func (p *Pipeline) documentFor(ctx context.Context, sourceURL string, docs map[string]*verify.Document) (*verify.Document, error) {
	if sourceURL == "" {
		return nil, fmt.Errorf("citation has no source URL")
	}
	if doc, ok := docs[sourceURL]; ok {
		return doc, nil
	}

	body, contentType, err := p.fetchBody(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	var doc *verify.Document
	if strings.Contains(strings.ToLower(contentType), "html") {
		doc, err = verify.DocumentFromHTML(body)
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
	} else {
		doc = verify.DocumentFromText(body)
	}

	docs[sourceURL] = doc
	return doc, nil
}

// cachedDocument is the cache envelope for a fetched body; the content
// type decides how the body is parsed on a later hit.
type cachedDocument struct {
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

func (p *Pipeline) fetchBody(ctx context.Context, sourceURL string) (string, string, error) {
	key := cache.DocumentKey(sourceURL)

	if p.docCache != nil {
		if raw, found := p.docCache.Get(key); found {
			var entry cachedDocument
			if err := json.Unmarshal(raw, &entry); err == nil {
				return entry.Body, entry.ContentType, nil
			}
			_ = p.docCache.Delete(key)
		}
	}

	if p.robots != nil {
		allowed, crawlDelay, err := p.robots.CanFetch(ctx, sourceURL)
		if err != nil {
			return "", "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return "", "", fmt.Errorf("blocked by robots.txt")
		}
		if crawlDelay > 0 {
			select {
			case <-ctx.Done():
				return "", "", ctx.Err()
			case <-time.After(crawlDelay):
			}
		}
	}

	if err := p.limiter.Wait(ctx, sourceURL); err != nil {
		return "", "", fmt.Errorf("rate limit: %w", err)
	}

	result, err := p.fetcher.FetchWithRetry(ctx, sourceURL)
	if err != nil {
		return "", "", err
	}

	if p.docCache != nil {
		if raw, err := json.Marshal(cachedDocument{ContentType: result.ContentType, Body: result.Body}); err == nil {
			_ = p.docCache.Set(key, raw, 0)
		}
	}

	return result.Body, result.ContentType, nil
}
