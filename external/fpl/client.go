package fpl

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-insight/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/manager"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
	"github.com/riskibarqy/fpl-insight/internal/platform/resilience"
	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

const (
	defaultBaseURL      = "https://fantasy.premierleague.com/api"
	defaultUserAgent    = "fpl-insight/1.0"
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 16 << 20
)

var (
	errFPLTransient = crerr.New("fpl transient failure")
	errFPLNotFound  = crerr.New("fpl resource not found")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// RawStore, when enabled, records every fetched payload.
	RawStore *RawStore
	// ReplayRaw serves stored payloads instead of fetching them. Offline runs only: a
	// replaying client never sees upstream changes.
	ReplayRaw bool
}

// Client reads the public FPL API. It implements usecase.UpstreamSource.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight[[]byte]
	raw          *RawStore
	replay       bool
}

var _ usecase.UpstreamSource = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("fpl circuit breaker state changed", "from", from, "to", to)
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		userAgent:    userAgent,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(breakerCfg),
		raw:          cfg.RawStore,
		replay:       cfg.ReplayRaw && cfg.RawStore.Enabled(),
	}
}

func (c *Client) FetchBootstrap(ctx context.Context) (usecase.Bootstrap, error) {
	var payload bootstrapPayload
	raw, err := c.doJSON(ctx, "/bootstrap-static/", &payload, true)
	if err != nil {
		return usecase.Bootstrap{}, fmt.Errorf("fetch bootstrap-static: %w", err)
	}

	var general map[string]any
	if err := sonic.Unmarshal(raw, &general); err != nil {
		return usecase.Bootstrap{}, fmt.Errorf("decode bootstrap-static: %w", err)
	}

	teams := make([]usecase.ExternalTeam, 0, len(payload.Teams))
	for _, item := range payload.Teams {
		teams = append(teams, usecase.ExternalTeam{
			ID:    item.ID,
			Name:  item.Name,
			Short: item.ShortName,
			Strength: team.Strength{
				Overall:     item.Strength,
				OverallHome: item.StrengthOverallHome,
				OverallAway: item.StrengthOverallAway,
				AttackHome:  item.StrengthAttackHome,
				AttackAway:  item.StrengthAttackAway,
				DefenceHome: item.StrengthDefenceHome,
				DefenceAway: item.StrengthDefenceAway,
			},
		})
	}

	return usecase.Bootstrap{
		Teams:    teams,
		Elements: payload.Elements,
		Raw:      general,
	}, nil
}

func (c *Client) FetchFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	var payload []fixturePayload
	if _, err := c.doJSON(ctx, "/fixtures/", &payload, true); err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(payload))
	for _, item := range payload {
		out = append(out, fixture.Fixture{
			ID:         item.ID,
			Event:      item.Event,
			TeamH:      item.TeamH,
			TeamA:      item.TeamA,
			TeamHScore: item.TeamHScore,
			TeamAScore: item.TeamAScore,
			Started:    item.Started != nil && *item.Started,
			Finished:   item.Finished,
		})
	}
	return out, nil
}

// FetchLive returns the per-player stats of one gameweek. Gameweeks that have not
// started come back with no elements.
func (c *Client) FetchLive(ctx context.Context, gw int) (gameweek.Live, error) {
	if gw <= 0 {
		return gameweek.Live{}, fmt.Errorf("%w: gameweek must be greater than zero", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/event/%d/live/", gw)
	var payload livePayload
	raw, err := c.doJSON(ctx, path, &payload, false)
	if err != nil {
		if stderrors.Is(err, errFPLNotFound) {
			return gameweek.Live{Gameweek: gw}, nil
		}
		return gameweek.Live{}, fmt.Errorf("fetch live gameweek=%d: %w", gw, err)
	}

	out := gameweek.Live{Gameweek: gw, Elements: make([]gameweek.LiveElement, 0, len(payload.Elements))}
	for _, item := range payload.Elements {
		out.Elements = append(out.Elements, gameweek.LiveElement{ID: item.ID, Stats: item.Stats})
	}
	// Empty gameweeks are not recorded so a later refresh can pick them up once they start.
	if !out.Empty() {
		c.record(ctx, path, raw)
	}
	return out, nil
}

func (c *Client) FetchManagerSelection(ctx context.Context, entryID, gw int) (manager.Selection, error) {
	if entryID <= 0 || gw <= 0 {
		return manager.Selection{}, fmt.Errorf("%w: entry id and gameweek must be greater than zero", usecase.ErrInvalidInput)
	}

	var entry entryPayload
	if _, err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/", entryID), &entry, false); err != nil {
		return manager.Selection{}, fmt.Errorf("fetch entry=%d: %w", entryID, mapNotFound(err))
	}

	var picks picksPayload
	if _, err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw), &picks, false); err != nil {
		return manager.Selection{}, fmt.Errorf("fetch picks entry=%d gameweek=%d: %w", entryID, gw, mapNotFound(err))
	}

	out := manager.Selection{
		EntryID:  entryID,
		Name:     entry.Name,
		Gameweek: gw,
		Picks:    make([]int, 0, len(picks.Picks)),
	}
	for _, pick := range picks.Picks {
		out.Picks = append(out.Picks, pick.Element)
	}
	return out, nil
}

// doJSON decodes the payload at path into target and returns the raw body. When record
// is set, fetched payloads are written to the raw store.
func (c *Client) doJSON(ctx context.Context, path string, target any, record bool) ([]byte, error) {
	var (
		raw      []byte
		replayed bool
		err      error
	)
	if c.replay {
		raw, replayed, err = c.raw.Read(path)
		if err != nil {
			c.logger.WarnContext(ctx, "raw payload replay failed, fetching upstream", "path", path, "error", err)
		}
	}

	if !replayed {
		raw, err = c.fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		if record {
			c.record(ctx, path, raw)
		}
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("%w: decode provider payload %s: %v", usecase.ErrDependencyUnavailable, path, err)
	}
	return raw, nil
}

func (c *Client) record(ctx context.Context, path string, raw []byte) {
	if err := c.raw.Write(path, raw); err != nil {
		c.logger.WarnContext(ctx, "raw payload record failed", "path", path, "error", err)
	}
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	fullURL := c.baseURL + path
	raw, err, _ := c.flight.Do(path, func() ([]byte, error) {
		var body []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			body, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isFPLCircuitFailure)
		return body, execErr
	})

	switch {
	case err == nil:
		return raw, nil
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State(), "path", path)
		return nil, fmt.Errorf("%w: fpl api is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case stderrors.Is(err, errFPLNotFound), stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errFPLTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s", errFPLNotFound, fullURL)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func mapNotFound(err error) error {
	if stderrors.Is(err, errFPLNotFound) {
		return fmt.Errorf("%w: %w", usecase.ErrNotFound, err)
	}
	return err
}

func isFPLCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errFPLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
