package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/valpere/peremd/internal/lang"
)

// DeepLService talks to the DeepL REST API. It is the only fully metered
// backend: every Translate queries remaining quota first and fails fast
// before the paid call, and glossaries are created and deleted per call.
type DeepLService struct {
	authKey string
	baseURL string
	client  *http.Client
}

// NewDeepLService builds a client for the given auth key. Keys issued for
// the free tier (":fx" suffix) are routed to the free endpoint.
func NewDeepLService(authKey string) *DeepLService {
	base := "https://api.deepl.com"
	if strings.HasSuffix(authKey, ":fx") {
		base = "https://api-free.deepl.com"
	}
	return &DeepLService{
		authKey: authKey,
		baseURL: base,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *DeepLService) Name() string {
	return "deepl"
}

func (s *DeepLService) Translate(ctx context.Context, req Request) (string, error) {
	if s.authKey == "" {
		return "", fmt.Errorf("no authentication key configured: %w", ErrAuthentication)
	}

	unitLen := utf8.RuneCountInString(req.Text)

	// Quota precheck happens before anything that costs money.
	usage, err := s.Usage(ctx)
	if err != nil {
		return "", err
	}
	if usage.AnyLimitReached {
		return "", fmt.Errorf("account: %w", ErrLimitReached)
	}
	if usage.Valid && int64(unitLen) > usage.Remaining() {
		return "", fmt.Errorf("character usage %d of %d, need %d more: %w",
			usage.Count, usage.Limit, unitLen, ErrQuotaExceeded)
	}

	body := map[string]any{
		"text":                []string{req.Text},
		"source_lang":         req.Pair.Source,
		"target_lang":         req.Pair.Target,
		"preserve_formatting": true,
	}

	if req.Context != "" {
		headroom := MaxRequestChars - unitLen
		if headroom > 0 {
			snippet := []rune(req.Context)
			if len(snippet) > headroom {
				snippet = snippet[:headroom]
			}
			body["context"] = string(snippet)
		}
	}

	if len(req.Glossary) > 0 {
		if !req.Pair.GlossarySupported() {
			return "", fmt.Errorf("glossaries only work between %s: %w",
				strings.Join(lang.GlossaryCodes(), ", "), ErrUnsupported)
		}
		glossaryID, err := s.createGlossary(ctx, req.Pair, req.Glossary)
		if err != nil {
			return "", err
		}
		// The glossary lives exactly as long as this call, failure included.
		defer func() {
			if derr := s.deleteGlossary(context.WithoutCancel(ctx), glossaryID); derr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to delete temporary glossary %s: %v\n", glossaryID, derr)
			}
		}()
		body["glossary_id"] = glossaryID
	}

	var resp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := s.do(ctx, http.MethodPost, "/v2/translate", body, &resp); err != nil {
		return "", err
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("empty translation response")
	}
	return resp.Translations[0].Text, nil
}

// Usage queries the account's character consumption and limit.
func (s *DeepLService) Usage(ctx context.Context) (Usage, error) {
	if s.authKey == "" {
		return Usage{}, fmt.Errorf("no authentication key configured: %w", ErrAuthentication)
	}
	var resp struct {
		CharacterCount int64 `json:"character_count"`
		CharacterLimit int64 `json:"character_limit"`
	}
	if err := s.do(ctx, http.MethodGet, "/v2/usage", nil, &resp); err != nil {
		return Usage{}, err
	}
	return Usage{
		Valid:           resp.CharacterLimit > 0,
		Count:           resp.CharacterCount,
		Limit:           resp.CharacterLimit,
		AnyLimitReached: resp.CharacterLimit > 0 && resp.CharacterCount >= resp.CharacterLimit,
	}, nil
}

func (s *DeepLService) createGlossary(ctx context.Context, pair lang.Pair, entries map[string]string) (string, error) {
	terms := make([]string, 0, len(entries))
	for term := range entries {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	var tsv strings.Builder
	for _, term := range terms {
		tsv.WriteString(term + "\t" + entries[term] + "\n")
	}

	body := map[string]any{
		"name":           "peremd-" + uuid.NewString(),
		"source_lang":    pair.Source,
		"target_lang":    pair.Target,
		"entries":        tsv.String(),
		"entries_format": "tsv",
	}
	var resp struct {
		GlossaryID string `json:"glossary_id"`
	}
	if err := s.do(ctx, http.MethodPost, "/v2/glossaries", body, &resp); err != nil {
		return "", fmt.Errorf("creating glossary: %w", err)
	}
	if resp.GlossaryID == "" {
		return "", fmt.Errorf("glossary creation returned no id")
	}
	return resp.GlossaryID, nil
}

func (s *DeepLService) deleteGlossary(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v2/glossaries/"+id, nil, nil)
}

func (s *DeepLService) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+s.authKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("API returned status %d: %w", resp.StatusCode, ErrAuthentication)
	case resp.StatusCode == 456: // DeepL: quota exceeded
		return fmt.Errorf("API returned status %d: %w", resp.StatusCode, ErrQuotaExceeded)
	case resp.StatusCode >= 300:
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
