// Package translate calls an external translation backend. Failures of any
// kind (timeout, non-2xx, malformed body) degrade to a structured
// unsuccessful result rather than an error the caller must branch on.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sarveshkp/bhashik/internal/romanize"
)

// Request describes one translation call.
type Request struct {
	Text        string `json:"text"`
	TargetLang  string `json:"target_lang"`
	SourceLang  string `json:"source_lang,omitempty"`
	IsRomanized bool   `json:"is_romanized,omitempty"`
}

// Response is the fixed envelope returned to API callers.
type Response struct {
	Success        bool   `json:"success"`
	TranslatedText string `json:"translated_text,omitempty"`
	SourceLang     string `json:"source_lang,omitempty"`
	TargetLang     string `json:"target_lang,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Client talks to the translation backend. A nil converter disables the
// romanized pre-conversion step.
type Client struct {
	baseURL   string
	http      *http.Client
	converter *romanize.Converter
	log       *logrus.Entry
}

func New(baseURL string, timeout time.Duration, converter *romanize.Converter) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		converter: converter,
		log:       logrus.WithField("component", "translate"),
	}
}

type backendRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type backendResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// Translate performs one call. Romanized source text is first converted to
// native script when a converter is wired, since the backend models expect
// native input; a conversion failure just sends the original text.
func (c *Client) Translate(ctx context.Context, req Request) Response {
	if strings.TrimSpace(req.Text) == "" {
		return Response{Success: false, Error: "empty text"}
	}
	if c.baseURL == "" {
		return Response{Success: false, Error: "translation backend not configured"}
	}

	text := req.Text
	if req.IsRomanized && c.converter != nil {
		converted := c.converter.Convert(text, req.SourceLang, false)
		if converted.Statistics.ConversionRate > 0 {
			text = converted.ConvertedText
		}
	}

	source := req.SourceLang
	if source == "" {
		source = "auto"
	}

	payload, err := json.Marshal(backendRequest{
		Q: text, Source: source, Target: req.TargetLang, Format: "text",
	})
	if err != nil {
		return Response{Success: false, Error: fmt.Sprintf("encode request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return Response{Success: false, Error: fmt.Sprintf("build request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.WithError(err).Warn("translation backend unreachable")
		return Response{Success: false, Error: "translation backend unreachable"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Response{Success: false, Error: "read response failed"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithField("status", resp.StatusCode).Warn("translation backend error")
		return Response{Success: false, Error: fmt.Sprintf("backend status %d", resp.StatusCode)}
	}

	var backend backendResponse
	if err := json.Unmarshal(body, &backend); err != nil {
		return Response{Success: false, Error: "malformed backend response"}
	}
	if backend.Error != "" {
		return Response{Success: false, Error: backend.Error}
	}

	return Response{
		Success:        true,
		TranslatedText: backend.TranslatedText,
		SourceLang:     source,
		TargetLang:     req.TargetLang,
	}
}
