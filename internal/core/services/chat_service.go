package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"growthpot/internal/config"
)

// Chat service errors
var (
	ErrChatRateLimited = errors.New("assistant rate limit exceeded")
	ErrChatNoCredits   = errors.New("assistant credits exhausted")
	ErrChatUpstream    = errors.New("assistant gateway error")
)

const chatSystemPrompt = `You are Chandra, a friendly and enthusiastic assistant for a Chit Fund (Chitti/Pot) management app.
You help users with fund setup, payments, the monthly spin, fund name suggestions, and general questions about how chit funds work.
Keep responses concise (2-4 short paragraphs max), use bullet points for lists, and stay on fund-related topics.`

// scriptedReplies is the keyword fallback used when no gateway is
// configured. First matching keyword wins.
var scriptedReplies = []struct {
	keyword string
	reply   string
}{
	{"hello", "Hi there! 👋 I'm your Growth Pot assistant. How can I help you today?"},
	{"help", "I can help you with:\n• Understanding how Chitti funds work\n• Calculating your monthly payouts\n• Explaining the spinning wheel\n• Answering questions about payments"},
	{"how does chitti work", "A Chitti fund is a community savings system:\n\n1️⃣ A group agrees on a monthly contribution\n2️⃣ Each month, contributions are pooled\n3️⃣ One member wins the pot via the spin\n4️⃣ This repeats until everyone wins once!"},
	{"payment", "To submit a payment:\n1. Pay your Admin via Cash/UPI/Bank\n2. Take a screenshot of your payment\n3. Upload it in the app\n4. Wait for Admin approval ✅"},
	{"spin", "The Spinning Wheel selects the monthly winner randomly from all verified members who haven't won yet. It's fair and transparent! 🎡"},
}

const scriptedDefault = "I'm here to help! Try asking about:\n• How Chitti works\n• Payment process\n• The spinning wheel\n• Or just say hello! 😊"

// ChatMessage is one turn of the assistant conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatService answers the decorative assistant widget. With a configured
// gateway it proxies an OpenAI-style completion endpoint and passes the
// SSE stream through; without one it streams a scripted keyword reply in
// the same framing, so the client handles both identically.
type ChatService struct {
	cfg    config.ChatConfig
	client *http.Client
}

// NewChatService creates a new chat service
func NewChatService(cfg config.ChatConfig) *ChatService {
	return &ChatService{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Stream returns an SSE-framed reply stream for the given conversation.
// The caller owns the returned reader and must close it.
func (s *ChatService) Stream(ctx context.Context, messages []ChatMessage) (io.ReadCloser, error) {
	if s.cfg.APIKey == "" {
		return s.scriptedStream(messages), nil
	}
	return s.gatewayStream(ctx, messages)
}

// gatewayStream proxies the upstream completion endpoint
func (s *ChatService) gatewayStream(ctx context.Context, messages []ChatMessage) (io.ReadCloser, error) {
	payload := map[string]interface{}{
		"model":    s.cfg.Model,
		"stream":   true,
		"messages": append([]ChatMessage{{Role: "system", Content: chatSystemPrompt}}, messages...),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, ErrChatRateLimited
		case http.StatusPaymentRequired:
			return nil, ErrChatNoCredits
		default:
			errBody, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("%w: status %d: %s", ErrChatUpstream, resp.StatusCode, string(errBody))
		}
	}

	return resp.Body, nil
}

// scriptedStream synthesizes an SSE stream from the keyword table
func (s *ChatService) scriptedStream(messages []ChatMessage) io.ReadCloser {
	reply := scriptedDefault
	if last := lastUserMessage(messages); last != "" {
		lower := strings.ToLower(last)
		for _, entry := range scriptedReplies {
			if strings.Contains(lower, entry.keyword) {
				reply = entry.reply
				break
			}
		}
	}

	var buf bytes.Buffer
	// One delta chunk per line keeps the client's incremental rendering alive
	for _, line := range strings.SplitAfter(reply, "\n") {
		if line == "" {
			continue
		}
		chunk := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"delta": map[string]string{"content": line}},
			},
		}
		data, _ := json.Marshal(chunk)
		fmt.Fprintf(&buf, "data: %s\n\n", data)
	}
	buf.WriteString("data: [DONE]\n\n")

	return io.NopCloser(&buf)
}

func lastUserMessage(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}
