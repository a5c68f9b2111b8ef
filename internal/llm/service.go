package llm

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RichardoC/support-chat/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

type Config struct {
	BaseURL  string
	APIKey   string
	Model    string
	Preamble string
	// Timeout bounds a single provider call. Zero means no limit.
	Timeout time.Duration
}

type settings struct {
	preamble string
	model    string
}

type Service struct {
	llm      llms.Model
	logger   *zap.Logger
	timeout  time.Duration
	settings atomic.Pointer[settings]
}

func New(cfg Config, logger *zap.Logger) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}
	return NewWithModel(model, cfg, logger), nil
}

// NewWithModel builds a Service around an already constructed model.
func NewWithModel(model llms.Model, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Preamble == "" {
		cfg.Preamble = DefaultPreamble
	}

	s := &Service{llm: model, logger: logger, timeout: cfg.Timeout}
	s.settings.Store(&settings{preamble: cfg.Preamble, model: cfg.Model})
	return s
}

// Reconfigure swaps the preamble and model used by later calls. Empty values
// keep the current setting.
func (s *Service) Reconfigure(preamble, model string) {
	cur := s.settings.Load()
	next := *cur
	if preamble != "" {
		next.preamble = preamble
	}
	if model != "" {
		next.model = model
	}
	s.settings.Store(&next)
	s.logger.Info("Provider settings reloaded",
		zap.String("model", next.model),
		zap.Int("preambleLength", len(next.preamble)))
}

func (s *Service) Model() string {
	return s.settings.Load().model
}

func (s *Service) Preamble() string {
	return s.settings.Load().preamble
}

// Complete sends the preamble followed by messages to the provider and returns
// the first choice's text. A response without content yields "" and no error.
func (s *Service) Complete(ctx context.Context, messages []models.Message) (string, error) {
	cur := s.settings.Load()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.llm.GenerateContent(ctx, buildPrompt(cur.preamble, messages), llms.WithModel(cur.model))
	if err != nil {
		if isEmptyResponse(err) {
			return "", nil
		}
		return "", &ProviderError{Kind: Classify(err), Err: err}
	}

	s.logger.Debug("Completion received",
		zap.String("model", cur.model),
		zap.Int("messages", len(messages)+1),
		zap.Duration("elapsed", time.Since(start)))

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}

func buildPrompt(preamble string, messages []models.Message) []llms.MessageContent {
	prompt := make([]llms.MessageContent, 0, len(messages)+1)
	prompt = append(prompt, llms.TextParts(schema.ChatMessageTypeSystem, preamble))
	for _, m := range messages {
		prompt = append(prompt, llms.TextParts(messageType(m.Role), m.Content))
	}
	return prompt
}

// messageType maps a wire role onto langchaingo's message types. Unrecognised
// roles are passed through as-is and rejected by the provider client.
func messageType(role models.Role) schema.ChatMessageType {
	switch role {
	case models.RoleSystem:
		return schema.ChatMessageTypeSystem
	case models.RoleUser:
		return schema.ChatMessageTypeHuman
	case models.RoleAssistant:
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageType(role)
	}
}
