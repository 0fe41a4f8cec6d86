package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/rs/zerolog/log"
	"resty.dev/v3"

	"qalookup/internal/domain"
)

// NoMatchErrno is the errno the service uses when it has no answer
const NoMatchErrno = -1

// Version is sent in the User-Agent header
var Version = "dev"

// ErrMalformedRecord is returned when the service reports a match but the
// record it sends back is incomplete
var ErrMalformedRecord = errors.New("malformed answer record")

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.Code, e.Body)
}

// Searcher looks up the answer for a question.
// A nil record with a nil error means the service has no answer.
type Searcher interface {
	Search(ctx context.Context, question string) (*domain.AnswerRecord, error)
}

// Options configures a Client
type Options struct {
	Endpoint    string
	Timeout     time.Duration
	Retries     uint
	RetryDelay  time.Duration
	StrictErrno bool
}

// Client talks to the answer lookup endpoint
type Client struct {
	httpClient  *resty.Client
	endpoint    string
	retries     uint
	retryDelay  time.Duration
	strictErrno bool
}

// SearchRequest is the JSON body sent to the service
type SearchRequest struct {
	Question string `json:"question"`
}

// SearchResponse is the JSON envelope returned by the service
type SearchResponse struct {
	Data    *domain.AnswerRecord `json:"data"`
	Errno   int                  `json:"errno"`
	Message string               `json:"message"`
}

// NewClient creates a client for the given endpoint
func NewClient(opts Options) *Client {
	httpClient := resty.New()
	httpClient.SetHeader("Content-Type", "application/json")
	httpClient.SetHeader("Accept", "application/json")
	httpClient.SetHeader("User-Agent", "qalookup/"+Version)
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}

	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 200 * time.Millisecond
	}

	return &Client{
		httpClient:  httpClient,
		endpoint:    opts.Endpoint,
		retries:     opts.Retries,
		retryDelay:  retryDelay,
		strictErrno: opts.StrictErrno,
	}
}

// Close releases idle connections
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Search posts the question and interprets the envelope
func (c *Client) Search(ctx context.Context, question string) (*domain.AnswerRecord, error) {
	var result *SearchResponse
	err := retry.Do(
		func() error {
			resp, err := c.post(ctx, question)
			if err != nil {
				if !isRetryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = resp
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retries+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Uint("attempt", n+1).Err(err).Str("question", question).Msg("retrying lookup")
		}),
	)
	if err != nil {
		return nil, err
	}

	if !c.matched(result.Errno) {
		log.Debug().
			Int("errno", result.Errno).
			Str("message", result.Message).
			Str("question", question).
			Msg("no answer for question")
		return nil, nil
	}
	if result.Data == nil {
		return nil, fmt.Errorf("%w: missing data (errno %d)", ErrMalformedRecord, result.Errno)
	}
	if err := result.Data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	record := result.Data.Clone()
	return &record, nil
}

// matched applies the errno contract. The service only documents -1 as its
// negative answer; strict mode accepts nothing but 0.
func (c *Client) matched(errno int) bool {
	if c.strictErrno {
		return errno == 0
	}
	return errno != NoMatchErrno
}

func (c *Client) post(ctx context.Context, question string) (*SearchResponse, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(SearchRequest{Question: question}).
		SetResult(&SearchResponse{}).
		// The service does not always label its JSON bodies
		SetForceResponseContentType("application/json").
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, &StatusError{Code: response.StatusCode(), Body: response.String()}
	}

	body, ok := response.Result().(*SearchResponse)
	if !ok || body == nil {
		return nil, fmt.Errorf("%w: unreadable response body: %s", ErrMalformedRecord, response.String())
	}
	return body, nil
}

// isRetryable reports whether a failed attempt may be repeated
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrMalformedRecord) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError || statusErr.Code == http.StatusTooManyRequests
	}
	return true
}
