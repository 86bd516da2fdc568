// Package llm generates grounded answers with the OpenAI chat API.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

const (
	// maxOutputTokens caps reply length.
	maxOutputTokens = 800

	temperature = 0.7
	topP        = 0.95
)

// Generator produces chat completions for retrieval-augmented prompts.
type Generator struct {
	client *openai.Client
	model  openai.ChatModel
}

// NewGenerator creates a Generator using the shared OpenAI client.
func NewGenerator(client *openai.Client) *Generator {
	return &Generator{
		client: client,
		model:  openai.ChatModelGPT4o,
	}
}

// BuildPrompt assembles the grounding prompt: retrieved context, the user's
// question, and instructions to answer only from that context.
func BuildPrompt(contextBlock, question string) string {
	var b strings.Builder
	b.WriteString("You are an AI assistant that answers questions based on the provided context from documents.\n\n")
	b.WriteString("Context from documents:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\nUser question: ")
	b.WriteString(question)
	b.WriteString("\n\nInstructions:\n")
	b.WriteString("- Answer the question based ONLY on the information in the context above\n")
	b.WriteString("- If the context doesn't contain enough information to answer, say so\n")
	b.WriteString("- Be concise but thorough\n")
	b.WriteString("- Cite specific information from the context when relevant\n\n")
	b.WriteString("Answer:")
	return b.String()
}

// Generate submits the prompt and returns the model's reply verbatim.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:               g.model,
		Temperature:         openai.Float(temperature),
		TopP:                openai.Float(topP),
		MaxCompletionTokens: openai.Int(maxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
