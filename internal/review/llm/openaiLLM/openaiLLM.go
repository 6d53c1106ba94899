package openaiLLM

import (
	"context"
	"errors"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/llm"
	"github.com/2CentsCapitalHR/adgm-review-api/pkg/logger_i"
)

type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

// GetOpenAIClient is the alternate reviewer backend, selected with
// LLM_PROVIDER=openai.
func GetOpenAIClient(modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OPENAI_API_KEY is not set")
			return
		}
		openaiClient = &llmClient{
			client:    openai.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI client created")
	})

	if openaiClient == nil {
		return nil
	}
	return openaiClient
}

func (c *llmClient) Review(ctx context.Context, instruction string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.ModelContext),
			openai.UserMessage(instruction),
		},
		Temperature: openai.Float(float64(config.ModelTemperature)),
	})
	if err != nil {
		log.Error("OpenAI review call failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty openai response")
	}
	return resp.Choices[0].Message.Content, nil
}
