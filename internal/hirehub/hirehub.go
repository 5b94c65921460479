// Package hirehub is a client for the recruitment management backend API.
// It covers the reads and writes the interview scheduling flow needs:
// applications, the interviewer roster, job interview sequences, and
// interview records. Everything else the backend offers is out of scope.
package hirehub

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://localhost:8000/api"
	userAgent     = "hire-scheduler (https://github.com/CharbelDaher34/hair-AI-sub001)"
	// Max value for list requests per page.
	perPage = "100"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a backend client. The token is injected explicitly; the client
// never reads ambient session state.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
