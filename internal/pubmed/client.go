// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed fetches bibliographic records from the NCBI E-utilities
// API and extracts them into flat records.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pubmed-sweep/internal/httputil"
	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

// defaultBaseURL is the production E-utilities root. Tests substitute an
// httptest server through FetchConfig.BaseURL.
const defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	defaultBatchSize   = 200
	defaultPacingDelay = time.Second
	defaultTimeout     = 30 * time.Second
	defaultTool        = "pubmed-sweep"
	defaultUserAgent   = "pubmed-sweep/0.1"
)

// Client is a sequential E-utilities client. All configuration is explicit
// at construction; there is no ambient global state. Calls are paced by a
// fixed politeness delay and retried per the configured policy.
type Client struct {
	http    *http.Client
	cfg     types.FetchConfig
	retry   httputil.Policy
	limiter *rate.Limiter
	log     io.Writer
}

// New builds a Client from cfg, filling unset fields with defaults.
// Progress and warnings are written to w.
func New(cfg types.FetchConfig, w io.Writer) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.PacingDelay <= 0 {
		cfg.PacingDelay = defaultPacingDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Tool == "" {
		cfg.Tool = defaultTool
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if w == nil {
		w = io.Discard
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		retry:   httputil.NewPolicy(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay, cfg.Retry.Multiplier),
		limiter: rate.NewLimiter(rate.Every(cfg.PacingDelay), 1),
		log:     w,
	}
}

// FetchAll runs search+fetch for every chunk in order and returns the
// concatenated raw articles with per-chunk statistics. The cumulative
// number of identifiers never exceeds maxRecords. Identifiers are
// deduplicated within a chunk before fetching; duplicates across chunks
// are left for the dedup stage. Any failed call aborts the run with a
// *FetchError and discards results from earlier chunks.
func (c *Client) FetchAll(ctx context.Context, chunks []string, maxRecords int) ([]PubmedArticle, []types.ChunkStats, error) {
	var all []PubmedArticle
	var stats []types.ChunkStats

	remaining := maxRecords
	for _, chunk := range chunks {
		if remaining <= 0 {
			break
		}

		count, ids, err := c.Search(ctx, chunk, remaining)
		if err != nil {
			return nil, nil, &FetchError{Chunk: chunk, Op: "esearch", Err: err}
		}
		ids = dedupeIDs(ids)
		if len(ids) > remaining {
			ids = ids[:remaining]
		}
		fmt.Fprintf(c.log, "chunk matched %d records, fetching %d\n", count, len(ids))

		fetched := 0
		for start := 0; start < len(ids); start += c.cfg.BatchSize {
			end := min(start+c.cfg.BatchSize, len(ids))
			batch, err := c.FetchBatch(ctx, ids[start:end])
			if err != nil {
				return nil, nil, &FetchError{Chunk: chunk, Op: "efetch", Err: err}
			}
			all = append(all, batch...)
			fetched += len(batch)
		}

		remaining -= len(ids)
		stats = append(stats, types.ChunkStats{Query: chunk, Matched: count, Fetched: fetched})
	}
	return all, stats, nil
}

// Search runs an ESearch call for one chunk and returns the total match
// count plus at most retmax matching PMIDs.
func (c *Client) Search(ctx context.Context, chunk string, retmax int) (int, []string, error) {
	params := c.baseParams()
	params.Set("db", "pubmed")
	params.Set("term", chunk)
	params.Set("retmax", strconv.Itoa(retmax))
	params.Set("retmode", "json")

	body, err := c.call(ctx, "esearch.fcgi", params)
	if err != nil {
		return 0, nil, err
	}
	defer body.Close()

	var env esearchEnvelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return 0, nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	count, err := strconv.Atoi(env.Result.Count)
	if err != nil {
		return 0, nil, fmt.Errorf("esearch count %q: %w", env.Result.Count, err)
	}
	return count, env.Result.IDList, nil
}

// FetchBatch runs one EFetch call for a batch of PMIDs and returns the
// parsed citations. The identifier list is sent in the request body so
// batch size is not constrained by URL length.
func (c *Client) FetchBatch(ctx context.Context, ids []string) ([]PubmedArticle, error) {
	params := c.baseParams()
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	body, err := c.post(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var set articleSet
	if err := xml.NewDecoder(body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}
	return set.Articles, nil
}

// baseParams returns the identification parameters sent on every call.
func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("tool", c.cfg.Tool)
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	return params
}

func (c *Client) call(ctx context.Context, endpoint string, params url.Values) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(ctx, req)
}

func (c *Client) post(ctx context.Context, endpoint string, params url.Values) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/"+endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(ctx, req)
}

// do waits out the pacing delay, executes the request under the retry
// policy, and rejects non-200 statuses.
func (c *Client) do(ctx context.Context, req *http.Request) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.retry.Do(ctx, c.http, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("E-utilities returned HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// dedupeIDs removes repeated identifiers, preserving first-seen order.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
