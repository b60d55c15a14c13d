package services

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"growthpot/internal/config"

	"github.com/stretchr/testify/require"
)

func readScriptedReply(t *testing.T, stream io.ReadCloser) string {
	t.Helper()
	defer stream.Close()

	var reply strings.Builder
	sawDone := false

	scanner := bufio.NewScanner(stream)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			sawDone = true
			break
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		require.NoError(t, json.Unmarshal([]byte(data), &chunk))
		require.Len(t, chunk.Choices, 1)
		reply.WriteString(chunk.Choices[0].Delta.Content)
	}
	require.NoError(t, scanner.Err())
	require.True(t, sawDone, "stream must end with the [DONE] sentinel")

	return reply.String()
}

func TestScriptedChatStream(t *testing.T) {
	// No API key configured: replies come from the keyword table
	svc := NewChatService(config.ChatConfig{})
	ctx := context.Background()

	stream, err := svc.Stream(ctx, []ChatMessage{{Role: "user", Content: "Hello!"}})
	require.NoError(t, err)
	require.Contains(t, readScriptedReply(t, stream), "Growth Pot assistant")

	stream, err = svc.Stream(ctx, []ChatMessage{{Role: "user", Content: "Tell me about the SPIN please"}})
	require.NoError(t, err)
	require.Contains(t, readScriptedReply(t, stream), "Spinning Wheel")

	// Unknown topics fall through to the generic pitch
	stream, err = svc.Stream(ctx, []ChatMessage{{Role: "user", Content: "what is the weather"}})
	require.NoError(t, err)
	require.Contains(t, readScriptedReply(t, stream), "I'm here to help")
}

func TestScriptedChatUsesLastUserMessage(t *testing.T) {
	svc := NewChatService(config.ChatConfig{})

	stream, err := svc.Stream(context.Background(), []ChatMessage{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "Hi there!"},
		{Role: "user", Content: "how do I submit a payment?"},
	})
	require.NoError(t, err)
	require.Contains(t, readScriptedReply(t, stream), "Admin approval")
}
