package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shoppy-store/internal/config"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// ErrGraphQL is wrapped by every error reported in a GraphQL "errors" array
var ErrGraphQL = errors.New("shopify graphql error")

// Client talks to the Shopify Storefront GraphQL API
type Client struct {
	endpoint   string
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a new Storefront GraphQL client. The client never
// retries; failures are reported to the caller as-is.
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-Shopify-Storefront-Access-Token", cfg.StorefrontToken)

	return &Client{
		endpoint:   Endpoint(cfg.StoreDomain, cfg.APIVersion),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Endpoint builds the Storefront GraphQL URL for a shop domain. A domain
// given with an explicit http:// scheme keeps it, anything else is served
// over https.
func Endpoint(domain, apiVersion string) string {
	scheme := "https"
	if strings.HasPrefix(domain, "http://") {
		scheme = "http"
	}
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimSuffix(domain, "/")

	return fmt.Sprintf("%s://%s/api/%s/graphql.json", scheme, domain, apiVersion)
}

// Close releases idle connections held by the underlying HTTP client
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// UserError is a validation error returned in a mutation payload
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}

// UserErrorsError is returned when a mutation reports user errors
type UserErrorsError struct {
	Operation string
	Errors    []UserError
}

func (e *UserErrorsError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, ue := range e.Errors {
		field := strings.Join(ue.Field, ".")
		if field == "" {
			parts = append(parts, ue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, ue.Message))
	}
	return fmt.Sprintf("shopify %s failed: %s", e.Operation, strings.Join(parts, "; "))
}

// Execute executes a GraphQL query/mutation and decodes its data into out
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(GraphQLRequest{Query: query, Variables: variables}).
		Post(c.endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to execute request: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		return fmt.Errorf("shopify API error: status %d, body: %s", resp.StatusCode(), body)
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal([]byte(body), &graphQLResp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(graphQLResp.Errors) > 0 {
		messages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			messages[i] = gqlErr.Message
		}
		return fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(messages, "; "))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(graphQLResp.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
