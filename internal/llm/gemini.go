package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/olist-agent-poc/server/internal/agent/model"
	errx "github.com/olist-agent-poc/server/internal/core/error"
	logx "github.com/olist-agent-poc/server/pkg/logger"
)

// Completer is the single synchronous request/response surface the agent
// needs from a language model. No streaming.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds the configuration for chat model creation.
type Config struct {
	APIKey  string
	BaseURL string
	Router  model.RouterModelConfig
	Answer  model.AnswerModelConfig
}

// Clients holds the two Gemini-backed completers: a low-temperature router
// model for classification and an answer model for everything else.
type Clients struct {
	Router Completer
	Answer Completer
}

// NewGeminiClients creates both completers over one shared Gemini client.
func NewGeminiClients(ctx context.Context, cfg Config) (*Clients, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	routerModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Router.Model,
		Temperature: &cfg.Router.Temperature,
		MaxTokens:   &cfg.Router.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating router model")
		return nil, fmt.Errorf("error creating router model: %w", err)
	}

	answerModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Answer.Model,
		Temperature: &cfg.Answer.Temperature,
		MaxTokens:   &cfg.Answer.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(0)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating answer model")
		return nil, fmt.Errorf("error creating answer model: %w", err)
	}

	return &Clients{
		Router: &geminiCompleter{cm: routerModel, modelName: cfg.Router.Model},
		Answer: &geminiCompleter{cm: answerModel, modelName: cfg.Answer.Model},
	}, nil
}

type geminiCompleter struct {
	cm        *gemini.ChatModel
	modelName string
}

func (g *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := g.cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", errx.WrapModel(err)
	}
	if out == nil {
		return "", errx.WrapModel(fmt.Errorf("model returned no message"))
	}
	logUsage(g.modelName, out)
	return out.Content, nil
}

// logUsage records token usage and the derived USD cost for one model call.
func logUsage(modelName string, out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
	logx.Debug().
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}
