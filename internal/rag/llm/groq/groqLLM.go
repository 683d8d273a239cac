package groq

import (
	"context"
	"errors"
	"sync"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/rag/llm"
	"github.com/avashisht/paperbase/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Groq exposes an OpenAI-compatible chat completions API, so the OpenAI
// client pointed at Groq's base URL is all this provider needs.
type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var groqClient *llmClient
var once sync.Once

func GetGroqClient(apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_groq")
		if apikey == "" {
			logger.Error("GROQ_API_KEY is not set")
			return
		}
		groqClient = &llmClient{
			client: openai.NewClient(
				option.WithAPIKey(apikey),
				option.WithBaseURL(config.GroqBaseURL),
			),
			modelName: modelName,
		}
		logger.Info("Groq client created", "model", modelName)
	})

	if groqClient == nil {
		return nil
	}
	return groqClient
}

func (c *llmClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       openai.ChatModel(c.modelName),
		Temperature: openai.Float(config.ModelTemperature),
		MaxTokens:   openai.Int(config.MaxCompletionTokens),
	})
	if err != nil {
		log.Error("Groq completion failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("groq returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
