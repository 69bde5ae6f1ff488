package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
)

// Options configures a resty client. Zero fields fall back to Defaults.
type Options struct {
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	Debug            bool
	// PublicOnly refuses connections to loopback, private, link-local and
	// other non-routable addresses. The check runs at dial time, so it
	// also covers redirects and DNS answers that change between lookups.
	PublicOnly bool
}

// Defaults are the baseline options for outbound clients.
func Defaults() Options {
	return Options{
		Timeout:          30 * time.Second,
		RetryCount:       2,
		RetryWaitTime:    500 * time.Millisecond,
		RetryMaxWaitTime: 5 * time.Second,
	}
}

// HclogAdapter forwards resty log lines to an hclog.Logger.
type HclogAdapter struct {
	logger hclog.Logger
}

func NewHclogAdapter(logger hclog.Logger) resty.Logger {
	return &HclogAdapter{logger: logger}
}

func (a *HclogAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

func (a *HclogAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

func (a *HclogAdapter) Infof(format string, v ...interface{}) {
	a.logger.Info(fmt.Sprintf(format, v...))
}

func (a *HclogAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// New builds a resty client that retries transport errors and 5xx
// responses. Bodies of responses that are about to be retried are closed,
// which matters for requests made with SetDoNotParseResponse.
func New(logger hclog.Logger, opts Options) *resty.Client {
	opts = applyDefaults(opts)

	client := resty.New()
	if logger != nil {
		client.SetLogger(NewHclogAdapter(logger))
	}

	client.
		SetDebug(opts.Debug).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(opts.RetryMaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, ErrNonPublicAddress)
			}
			return r != nil && r.StatusCode() >= http.StatusInternalServerError
		}).
		AddRetryHook(func(r *resty.Response, _ error) {
			// hooks also run after the final attempt, whose body the caller reads
			if r == nil || r.RawResponse == nil || r.Request == nil || r.Request.Attempt > opts.RetryCount {
				return
			}
			r.RawResponse.Body.Close()
		})

	if opts.PublicOnly {
		client.SetTransport(PublicOnlyTransport())
	}

	return client
}

func applyDefaults(opts Options) Options {
	def := Defaults()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	}
	if opts.RetryWaitTime <= 0 {
		opts.RetryWaitTime = def.RetryWaitTime
	}
	if opts.RetryMaxWaitTime <= 0 {
		opts.RetryMaxWaitTime = def.RetryMaxWaitTime
	}
	return opts
}
