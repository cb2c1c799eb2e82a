// Package assistantapi wraps the hosted assistant provider behind the
// interfaces the domain layer consumes.
package assistantapi

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"chatdesk/assistant-api/internal/config"
	"chatdesk/assistant-api/internal/domain/run"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// Client talks to the hosted assistant API. It implements run.Provider,
// assistant.Provider and conversation.ThreadCreator.
type Client struct {
	api *openai.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{api: openai.NewClient(cfg.OpenAIAPIKey)}
}

// CreateThread provisions an empty provider-owned thread.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "create thread", err, "assistantapi-create-thread")
	}
	return thread.ID, nil
}

// AddUserMessage appends the user's text to the thread.
func (c *Client) AddUserMessage(ctx context.Context, threadID, text string) error {
	_, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "add user message", err, "assistantapi-add-message")
	}
	return nil
}

// CreateRun starts an assistant run on the thread.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (*run.Run, error) {
	created, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{AssistantID: assistantID})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "create run", err, "assistantapi-create-run")
	}
	return mapRun(created), nil
}

// RetrieveRun fetches the current state of a run.
func (c *Client) RetrieveRun(ctx context.Context, threadID, runID string) (*run.Run, error) {
	fetched, err := c.api.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "retrieve run", err, "assistantapi-retrieve-run")
	}
	return mapRun(fetched), nil
}

// SubmitToolOutputs acknowledges all pending tool calls of a run.
func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []run.ToolOutput) error {
	request := openai.SubmitToolOutputsRequest{}
	for _, out := range outputs {
		request.ToolOutputs = append(request.ToolOutputs, openai.ToolOutput{
			ToolCallID: out.CallID,
			Output:     out.Output,
		})
	}
	if _, err := c.api.SubmitToolOutputs(ctx, threadID, runID, request); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "submit tool outputs", err, "assistantapi-tool-outputs")
	}
	return nil
}

// ListMessages returns the thread's messages, newest first.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]run.ThreadMessage, error) {
	list, err := c.api.ListMessage(ctx, threadID, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "list messages", err, "assistantapi-list-messages")
	}

	messages := make([]run.ThreadMessage, 0, len(list.Messages))
	for _, msg := range list.Messages {
		mapped := run.ThreadMessage{Role: msg.Role}
		for _, content := range msg.Content {
			block := run.ContentBlock{Type: content.Type}
			if content.Text != nil {
				block.Text = content.Text.Value
			}
			mapped.Content = append(mapped.Content, block)
		}
		messages = append(messages, mapped)
	}
	return messages, nil
}

// CreateAssistant provisions a hosted assistant and returns its id.
func (c *Client) CreateAssistant(ctx context.Context, name, instructions, model string) (string, error) {
	created, err := c.api.CreateAssistant(ctx, openai.AssistantRequest{
		Model:        model,
		Name:         &name,
		Instructions: &instructions,
	})
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "create assistant", err, "assistantapi-create-assistant")
	}
	return created.ID, nil
}

// UpdateAssistant replaces the assistant's name and instructions in place.
func (c *Client) UpdateAssistant(ctx context.Context, id, name, instructions, model string) (string, error) {
	modified, err := c.api.ModifyAssistant(ctx, id, openai.AssistantRequest{
		Model:        model,
		Name:         &name,
		Instructions: &instructions,
	})
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "update assistant", err, "assistantapi-update-assistant")
	}
	return modified.ID, nil
}

// mapRun converts the provider run payload into the domain shape.
func mapRun(src openai.Run) *run.Run {
	mapped := &run.Run{
		ID:     src.ID,
		Status: run.Status(src.Status),
	}
	if src.LastError != nil {
		mapped.FailureDetail = src.LastError.Message
	}
	if src.RequiredAction != nil && src.RequiredAction.SubmitToolOutputs != nil {
		for _, call := range src.RequiredAction.SubmitToolOutputs.ToolCalls {
			mapped.PendingToolCalls = append(mapped.PendingToolCalls, run.ToolCall{ID: call.ID})
		}
	}
	return mapped
}
