package openai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/logging"
)

type fakeChat struct {
	gotParams openai.ChatCompletionNewParams
	resp      *openai.ChatCompletion
	err       error
}

func (f *fakeChat) New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	f.gotParams = body
	return f.resp, f.err
}

func newTestClient(chat *fakeChat) *Client {
	return NewClient("test-key", "gpt-4o-mini", "",
		WithChatClient(chat),
		WithLogger(logging.NewDisabledLogger()),
	)
}

func TestGenerate_Success(t *testing.T) {
	chat := &fakeChat{
		resp: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  ls -la\n"}},
			},
		},
	}
	client := newTestClient(chat)

	got, err := client.Generate(context.Background(), "list files")
	require.NoError(t, err)
	assert.Equal(t, "ls -la", got)
	assert.Equal(t, "gpt-4o-mini", string(chat.gotParams.Model))
	require.Len(t, chat.gotParams.Messages, 1)
}

func TestGenerate_NoChoices(t *testing.T) {
	client := newTestClient(&fakeChat{resp: &openai.ChatCompletion{}})

	_, err := client.Generate(context.Background(), "list files")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestGenerate_BlankContent(t *testing.T) {
	chat := &fakeChat{
		resp: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "   "}},
			},
		},
	}
	client := newTestClient(chat)

	_, err := client.Generate(context.Background(), "list files")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestGenerate_CanceledContext(t *testing.T) {
	client := newTestClient(&fakeChat{err: context.Canceled})

	_, err := client.Generate(context.Background(), "list files")
	assert.ErrorIs(t, err, llm.ErrCanceled)
}

func TestGenerate_TransportError(t *testing.T) {
	client := newTestClient(&fakeChat{err: errors.New("dial tcp: lookup api.openai.com: no such host")})

	_, err := client.Generate(context.Background(), "list files")

	var provErr *llm.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, llm.KindNetwork, provErr.Kind)
}

func TestName(t *testing.T) {
	client := newTestClient(&fakeChat{})
	assert.Equal(t, "openai", client.Name())
	assert.Equal(t, "gpt-4o-mini", client.Model())
}
