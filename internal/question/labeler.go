package question

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Label struct {
	ModuleNo    int    `json:"module_no"`
	Marks       int    `json:"marks"`
	BloomsLevel string `json:"blooms_level"`
}

// Labeler assigns module/marks/Bloom's level to a raw question string.
// The model itself lives outside this service.
type Labeler interface {
	Label(ctx context.Context, text string) (Label, error)
}

// HTTPLabeler calls a remote classifier endpoint: POST {"text": ...} -> Label.
type HTTPLabeler struct {
	URL    string
	Client *http.Client
}

func NewHTTPLabeler(url string) *HTTPLabeler {
	return &HTTPLabeler{URL: url, Client: &http.Client{Timeout: 15 * time.Second}}
}

func (l *HTTPLabeler) Label(ctx context.Context, text string) (Label, error) {
	body, _ := json.Marshal(map[string]string{"text": text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.URL, bytes.NewReader(body))
	if err != nil {
		return Label{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := l.Client.Do(req)
	if err != nil {
		return Label{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Label{}, fmt.Errorf("classifier returned %d", resp.StatusCode)
	}
	var out Label
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Label{}, err
	}
	return out, nil
}

// NoopLabeler leaves questions unlabeled; used when no classifier is configured.
type NoopLabeler struct{}

func (NoopLabeler) Label(ctx context.Context, text string) (Label, error) {
	return Label{}, nil
}
