package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// LabelInfo is what the vision model extracts from a cigar band photo.
type LabelInfo struct {
	Brand    string `json:"brand"`
	Name     string `json:"name"`
	Strength string `json:"strength"`
	Details  string `json:"details"`
}

// ScanResult is the parsed outcome of one identification call. Info is nil
// when the model declined to identify or returned something unparsable; Raw
// always carries the model's verbatim reply for diagnostics.
type ScanResult struct {
	Info       *LabelInfo
	ErrMessage string
	Raw        string
}

const systemPrompt = `You are an expert cigar identifier. Analyze the image and extract: cigar brand, name, strength, and any visible details. Return ONLY a JSON object with these fields: {"brand": "", "name": "", "strength": "", "details": ""}. If you can't identify it, return {"error": "Unable to identify cigar"}.`

// Client talks to an OpenAI-compatible chat-completions endpoint with
// vision support.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiURL     string
	apiKey     string
	model      string
}

func NewClient(apiURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 3), // 1 req/sec with burst of 3
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// IdentifyLabel sends the image to the vision model and parses its JSON
// reply. A non-nil error means the upstream call itself failed; model-level
// "can't identify" outcomes come back inside the ScanResult.
func (c *Client) IdentifyLabel(ctx context.Context, imageBase64 string) (*ScanResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: "Please identify this cigar from the label. Return only JSON."},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
			}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vision response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("vision response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("vision api: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("vision api: empty response")
	}

	return ParseModelReply(parsed.Choices[0].Message.Content), nil
}

// ParseModelReply interprets the model's textual answer. Models sometimes
// wrap JSON in markdown fences, so those are stripped first.
func ParseModelReply(content string) *ScanResult {
	result := &ScanResult{Raw: content}

	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var fields map[string]string
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return result
	}

	if msg, ok := fields["error"]; ok {
		result.ErrMessage = msg
		return result
	}

	result.Info = &LabelInfo{
		Brand:    fields["brand"],
		Name:     fields["name"],
		Strength: fields["strength"],
		Details:  fields["details"],
	}
	return result
}
