// Package registry is a read-only client for the Companies House REST API.
//
// Every call performs exactly one GET. Failures are logged and returned as
// typed errors with a nil record; callers are expected to render the missing
// record as "no data" rather than abort.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the public Companies House API host.
	DefaultBaseURL = "https://api.companieshouse.gov.uk"

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv = "COMPANIES_HOUSE_API_KEY"

	// DefaultFilingPageSize is the items_per_page sent for filing history.
	DefaultFilingPageSize = 100

	tracerName = "github.com/pengelbrecht/chsearch/internal/registry"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 8 << 20

	// maxErrorBody caps how much of an error body ends up in a StatusError.
	maxErrorBody = 512
)

// Config holds configuration for creating a Client.
type Config struct {
	// APIKey is the Companies House API key. When empty the key is read
	// from APIKeyEnv.
	APIKey string

	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient is used for all requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger receives request failures. Defaults to slog.Default().
	Logger *slog.Logger

	// Tracer wraps each call in a span. Defaults to the global provider.
	Tracer trace.Tracer
}

// Client wraps the four registry lookups used by the TUI.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewClient creates a registry client. Returns a *MissingCredentialError if
// no API key is configured or found in the environment.
func NewClient(config Config) (*Client, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnv)
	}
	if apiKey == "" {
		return nil, &MissingCredentialError{EnvVar: APIKeyEnv}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		tracer:     tracer,
	}, nil
}

// SearchCompanies searches companies by name.
func (c *Client) SearchCompanies(ctx context.Context, query string) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	ctx, span := c.tracer.Start(ctx, "registry.SearchCompanies",
		trace.WithAttributes(attribute.Int("query.length", len(query))))
	defer span.End()

	var result SearchResult
	path := "/search/companies?q=" + url.QueryEscape(query)
	if err := c.get(ctx, span, path, &result); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.items", len(result.Items)))
	return &result, nil
}

// GetProfile returns the profile for a company.
func (c *Client) GetProfile(ctx context.Context, companyNumber string) (*CompanyProfile, error) {
	ctx, span := c.startCompanySpan(ctx, "registry.GetProfile", companyNumber)
	defer span.End()

	var profile CompanyProfile
	if err := c.get(ctx, span, "/company/"+url.PathEscape(companyNumber), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetFilingHistory returns up to pageSize filing history items. A pageSize
// of zero or less uses DefaultFilingPageSize.
func (c *Client) GetFilingHistory(ctx context.Context, companyNumber string, pageSize int) (*FilingHistory, error) {
	if pageSize <= 0 {
		pageSize = DefaultFilingPageSize
	}

	ctx, span := c.startCompanySpan(ctx, "registry.GetFilingHistory", companyNumber)
	defer span.End()

	var history FilingHistory
	path := "/company/" + url.PathEscape(companyNumber) + "/filing-history?items_per_page=" + strconv.Itoa(pageSize)
	if err := c.get(ctx, span, path, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// GetPersonsWithSignificantControl returns the PSC register for a company.
func (c *Client) GetPersonsWithSignificantControl(ctx context.Context, companyNumber string) (*PSCList, error) {
	ctx, span := c.startCompanySpan(ctx, "registry.GetPersonsWithSignificantControl", companyNumber)
	defer span.End()

	var pscs PSCList
	path := "/company/" + url.PathEscape(companyNumber) + "/persons-with-significant-control"
	if err := c.get(ctx, span, path, &pscs); err != nil {
		return nil, err
	}
	return &pscs, nil
}

func (c *Client) startCompanySpan(ctx context.Context, name, companyNumber string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("company.number", companyNumber)))
}

// get performs one authenticated GET and decodes the JSON body into result.
// Every failure is logged and recorded on span before being returned; a 404
// is logged at debug level.
func (c *Client) get(ctx context.Context, span trace.Span, path string, result any) error {
	err := c.do(ctx, path, result)
	switch {
	case err == nil:
	case IsNotFound(err):
		// Unknown companies and exempt PSC registers answer 404.
		c.logger.Debug("registry record not found", "path", path)
		span.SetAttributes(attribute.Bool("registry.not_found", true))
		span.SetStatus(codes.Error, err.Error())
	default:
		c.logger.Warn("registry request failed", "path", path, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, path string, result any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("registry: creating request: %w", err)
	}
	request.SetBasicAuth(c.apiKey, "")
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &TransportError{Path: path, Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return &TransportError{Path: path, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return &StatusError{Path: path, StatusCode: response.StatusCode, Body: text}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("registry: decoding %s: %w", path, err)
	}

	c.logger.Debug("registry request", "path", path, "status", response.StatusCode, "bytes", len(body))
	return nil
}
