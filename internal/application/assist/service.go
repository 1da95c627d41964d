package assist

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/identity"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// ChatCompleter is the slice of the OpenAI client the assistant needs
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// QuotaStore tracks per-tenant monthly assist usage. Implementations must
// be safe for concurrent use.
type QuotaStore interface {
	// Consume atomically increments the tenant's counter for the given
	// month and reports whether the call stayed within the limit.
	Consume(ctx context.Context, tenantID uuid.UUID, month string, limit int) (bool, error)
	// Usage returns the tenant's consumed count for the month
	Usage(ctx context.Context, tenantID uuid.UUID, month string) (int, error)
}

const (
	defaultModel    = openai.GPT4oMini
	defaultCacheTTL = 30 * time.Minute
	maxPromptLen    = 500
)

const systemPrompt = `You write concise, professional invoice line item descriptions.
Given a rough phrase from the user, respond with a single polished description
suitable for a customer-facing invoice. Respond with the description text only,
no quotes, no explanations, at most 30 words.`

// SuggestionResponse carries an assist result
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
	Cached     bool   `json:"cached"`
	Remaining  int    `json:"remaining"`
}

type cacheEntry struct {
	suggestion string
	expiresAt  time.Time
}

// Service suggests invoice line descriptions via a chat completion model.
// Responses are cached in process so retyping the same phrase within the
// TTL costs no quota and no API call.
type Service struct {
	client     ChatCompleter
	tenantRepo identity.TenantRepository
	quotas     QuotaStore
	model      string
	cacheTTL   time.Duration
	logger     *zap.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// Option is a functional option for configuring the assist Service
type Option func(*Service)

// WithModel overrides the chat completion model
func WithModel(model string) Option {
	return func(s *Service) { s.model = model }
}

// WithCacheTTL overrides the response cache TTL
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cacheTTL = ttl }
}

// NewService creates a new assist Service
func NewService(client ChatCompleter, tenantRepo identity.TenantRepository, quotas QuotaStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		client:     client,
		tenantRepo: tenantRepo,
		quotas:     quotas,
		model:      defaultModel,
		cacheTTL:   defaultCacheTTL,
		logger:     logger,
		cache:      make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SuggestDescription turns a rough phrase into a polished invoice line
// description. Quota is charged per uncached API call, keyed to the
// tenant's plan allowance for the current month.
func (s *Service) SuggestDescription(ctx context.Context, tenantID uuid.UUID, prompt string) (*SuggestionResponse, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, shared.NewValidationError("Prompt cannot be empty")
	}
	if len(prompt) > maxPromptLen {
		return nil, shared.NewValidationError("Prompt cannot exceed 500 characters")
	}
	if s.client == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidOperation, "Description assistance is not enabled")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	limit := tenant.Plan.AssistQuota()
	month := time.Now().UTC().Format("2006-01")

	if cached, ok := s.fromCache(tenantID, prompt); ok {
		used, err := s.quotas.Usage(ctx, tenantID, month)
		if err != nil {
			used = limit
		}
		return &SuggestionResponse{
			Suggestion: cached,
			Cached:     true,
			Remaining:  remaining(limit, used),
		}, nil
	}

	allowed, err := s.quotas.Consume(ctx, tenantID, month, limit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, shared.ErrRateLimited
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.3,
		MaxTokens:   120,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.logger.Error("chat completion failed",
			zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Description suggestion is unavailable")
	}
	if len(resp.Choices) == 0 {
		return nil, shared.NewDomainError(shared.CodeInternal, "Description suggestion is unavailable")
	}

	suggestion := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.toCache(tenantID, prompt, suggestion)

	used, err := s.quotas.Usage(ctx, tenantID, month)
	if err != nil {
		used = limit
	}
	return &SuggestionResponse{
		Suggestion: suggestion,
		Remaining:  remaining(limit, used),
	}, nil
}

func remaining(limit, used int) int {
	if used >= limit {
		return 0
	}
	return limit - used
}

func cacheKey(tenantID uuid.UUID, prompt string) string {
	return tenantID.String() + "|" + strings.ToLower(prompt)
}

func (s *Service) fromCache(tenantID uuid.UUID, prompt string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[cacheKey(tenantID, prompt)]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.suggestion, true
}

func (s *Service) toCache(tenantID uuid.UUID, prompt, suggestion string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Opportunistic cleanup keeps the map from growing unbounded
	now := time.Now()
	for key, entry := range s.cache {
		if now.After(entry.expiresAt) {
			delete(s.cache, key)
		}
	}
	s.cache[cacheKey(tenantID, prompt)] = cacheEntry{
		suggestion: suggestion,
		expiresAt:  now.Add(s.cacheTTL),
	}
}
