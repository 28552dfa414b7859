package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/assistant-relay/internal/application/service"
	"github.com/khoahotran/assistant-relay/internal/config"
	"github.com/khoahotran/assistant-relay/internal/domain/chat"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.deepseek.com/v1"
	DefaultModel   = "deepseek-chat"
	DefaultTimeout = 30 * time.Second

	Temperature float32 = 0.7
	MaxTokens           = 2048
)

var tracer = otel.Tracer("llm_adapter")

type deepSeekAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

// NewDeepSeekAdapter builds the gateway from the credential loaded at startup.
// A missing key is replaced by config.PlaceholderAPIKey so the server can still boot;
// the provider will then reject every call with 401.
func NewDeepSeekAdapter(cfg config.Config, log logger.Logger) service.CompletionGateway {
	apiKey := cfg.DeepSeek.APIKey
	if apiKey == "" {
		log.Warn("DEEPSEEK_API_KEY is not set, using placeholder credential")
		apiKey = config.PlaceholderAPIKey
	}

	baseURL := cfg.DeepSeek.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.DeepSeek.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.DeepSeek.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = baseURL
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	log.Info("DeepSeek chat adapter initialized",
		zap.String("base_url", baseURL),
		zap.String("model", model),
		zap.Duration("timeout", timeout),
	)
	return &deepSeekAdapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		log:    log,
	}
}

func (a *deepSeekAdapter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	ctx, span := tracer.Start(ctx, "Complete")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", a.model), attribute.Int("llm.messages", len(messages)))

	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
		Stream:      false,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		appErr := classify(err)
		span.RecordError(appErr)
		a.log.Error("DeepSeek API request failed", err, zap.String("kind", appErr.BaseError.Error()))
		return "", appErr
	}

	if len(resp.Choices) == 0 {
		appErr := apperror.NewUpstreamMalformed("response has no choices", nil)
		span.RecordError(appErr)
		a.log.Error("DeepSeek API returned no choices", appErr, zap.String("response_id", resp.ID))
		return "", appErr
	}

	span.SetAttributes(attribute.Int("llm.completion_tokens", resp.Usage.CompletionTokens))
	return resp.Choices[0].Message.Content, nil
}

// classify maps go-openai errors onto the two upstream kinds.
func classify(err error) *apperror.AppError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperror.NewUpstream(fmt.Sprintf("provider returned status %d", apiErr.HTTPStatusCode), err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperror.NewUpstream(fmt.Sprintf("provider returned status %d", reqErr.HTTPStatusCode), err)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return apperror.NewUpstreamMalformed("cannot decode provider response", err)
	}
	return apperror.NewUpstream("transport failure", err)
}

func toOpenAIMessages(messages []chat.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return out
}
