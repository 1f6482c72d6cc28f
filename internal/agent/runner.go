package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"StockScout/internal/domain/models"
	"StockScout/pkg/logger"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	ModeTool   = "tool"
	ModeSchema = "schema"

	toolName = "get_stock_info"

	// One round of tool execution plus the final answer is the expected
	// shape; a few extra rounds tolerate model retries.
	maxToolRounds = 4

	toolInstructions = "You are an agent that answers free-form questions about stocks. " +
		"Invoke the get_stock_info tool with the user's query and reply with its JSON output."

	schemaInstructions = "You are an agent that answers free-form questions about stocks. " +
		"Respond ONLY with JSON matching the required schema, without calling any external service."
)

// StockInfoFunc is the pipeline entrypoint the tool-mode agent invokes.
type StockInfoFunc func(ctx context.Context, query string) (*models.StockInfo, error)

// Runner drives the two agent modes against the OpenAI chat completions API:
// tool mode executes the aggregation pipeline as a function tool, schema mode
// asks the model to produce the same record shape on its own.
type Runner struct {
	client   openai.Client
	model    openai.ChatModel
	sessions SessionStore
	pipeline StockInfoFunc
	logger   *logger.Logger
	schema   map[string]any
}

func NewRunner(apiKey, model string, sessions SessionStore, pipeline StockInfoFunc, l *logger.Logger, opts ...option.RequestOption) *Runner {
	clientOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Runner{
		client:   openai.NewClient(clientOpts...),
		model:    openai.ChatModel(model),
		sessions: sessions,
		pipeline: pipeline,
		logger:   l,
		schema:   OutputSchema(),
	}
}

// Run answers query in the given mode, reading and extending the session.
func (r *Runner) Run(ctx context.Context, mode, sessionID, query string) (string, error) {
	switch mode {
	case ModeTool:
		return r.runTool(ctx, sessionID, query)
	case ModeSchema:
		return r.runSchema(ctx, sessionID, query)
	default:
		return "", fmt.Errorf("unknown agent mode %q", mode)
	}
}

func (r *Runner) runTool(ctx context.Context, sessionID, query string) (string, error) {
	messages, err := r.buildMessages(ctx, sessionID, toolInstructions, query)
	if err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Model:    r.model,
		Messages: messages,
		Tools:    []openai.ChatCompletionToolUnionParam{r.stockInfoTool()},
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := r.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("chat completion returned no choices")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, r.remember(ctx, sessionID, query, msg.Content)
		}

		params.Messages = append(params.Messages, msg.ToParam())
		for _, tc := range msg.ToolCalls {
			out, err := r.executeTool(ctx, tc.Function.Name, tc.Function.Arguments)
			if err != nil {
				return "", err
			}
			params.Messages = append(params.Messages, openai.ToolMessage(out, tc.ID))
		}
	}

	return "", fmt.Errorf("agent exceeded %d tool rounds", maxToolRounds)
}

func (r *Runner) runSchema(ctx context.Context, sessionID, query string) (string, error) {
	messages, err := r.buildMessages(ctx, sessionID, schemaInstructions, query)
	if err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Model:    r.model,
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "stock_info",
					Strict: openai.Bool(true),
					Schema: r.schema,
				},
			},
		},
	}

	resp, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content

	// Validate the record shape once at the boundary.
	var info models.StockInfo
	if err := json.Unmarshal([]byte(content), &info); err != nil {
		return "", fmt.Errorf("schema-mode output is not a valid stock info record: %w", err)
	}

	return content, r.remember(ctx, sessionID, query, content)
}

func (r *Runner) buildMessages(ctx context.Context, sessionID, instructions, query string) ([]openai.ChatCompletionMessageParamUnion, error) {
	history, err := r.sessions.Turns(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(instructions))
	for _, t := range history {
		switch t.Role {
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(t.Content))
		default:
			messages = append(messages, openai.UserMessage(t.Content))
		}
	}
	messages = append(messages, openai.UserMessage(query))
	return messages, nil
}

func (r *Runner) remember(ctx context.Context, sessionID, query, answer string) error {
	now := time.Now()
	return r.sessions.Append(ctx, sessionID,
		Turn{Role: RoleUser, Content: query, At: now},
		Turn{Role: RoleAssistant, Content: answer, At: now},
	)
}

func (r *Runner) executeTool(ctx context.Context, name, arguments string) (string, error) {
	if name != toolName {
		return "", fmt.Errorf("model called unknown tool %q", name)
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("tool arguments: %w", err)
	}

	r.logger.Info("tool call", logger.String("tool", name), logger.String("query", args.Query))

	info, err := r.pipeline(ctx, args.Query)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("marshal tool result: %w", err)
	}
	return string(b), nil
}

func (r *Runner) stockInfoTool() openai.ChatCompletionToolUnionParam {
	return openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        toolName,
		Description: openai.String("Answer a free-form stock question with ticker, price, change percentage and news."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Free-form question about a stock.",
				},
			},
			"required": []string{"query"},
		},
	})
}
