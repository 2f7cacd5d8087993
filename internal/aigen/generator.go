// Package aigen drafts new question strings from a topic description. It is
// a text-generation collaborator only; drafted questions enter the bank
// through the normal upload/labeling path.
package aigen

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type DraftRequest struct {
	Subject      string `json:"subject"`
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
	Marks        int    `json:"marks"`
	BloomsLevel  string `json:"blooms_level"`
}

type Generator struct {
	client *openai.Client
	model  string
}

// NewFromEnv reads OPENAI_API_KEY; a missing key yields a generator that
// reports itself unavailable.
func NewFromEnv(model string) *Generator {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return &Generator{model: model}
	}
	return &Generator{client: openai.NewClient(key), model: model}
}

func (g *Generator) Available() bool { return g.client != nil }

func (g *Generator) Draft(ctx context.Context, req DraftRequest) ([]string, error) {
	if g.client == nil {
		return nil, fmt.Errorf("no AI provider configured")
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an expert educational question designer specializing in creating exam questions."},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion")
	}
	lines := CleanLines(resp.Choices[0].Message.Content)
	if len(lines) > req.NumQuestions {
		lines = lines[:req.NumQuestions]
	}
	return lines, nil
}

var bloomsGuidance = map[string]string{
	"Remember":   "Recall or recognize information, facts, definitions, or procedures. Use verbs like: define, list, identify, name, recall, state.",
	"Understand": "Grasp the meaning of information, interpret ideas, or compare and contrast concepts. Use verbs like: explain, summarize, classify, describe, discuss.",
	"Apply":      "Use learned information in new situations or solve problems. Use verbs like: apply, solve, use, demonstrate, calculate, illustrate.",
	"Analyze":    "Break down information into parts and determine relationships or organization. Use verbs like: analyze, differentiate, examine, categorize, compare.",
	"Evaluate":   "Make judgments based on criteria and standards. Use verbs like: evaluate, critique, justify, assess, defend, argue.",
	"Create":     "Combine elements to form a new whole or original product. Use verbs like: design, construct, compose, formulate, invent, propose.",
}

func marksGuidance(marks int) string {
	switch {
	case marks <= 2:
		return "These are short answer questions that require brief, specific responses (1-2 sentences)."
	case marks <= 5:
		return "These are medium-length questions that require explanations with some detail (2-4 sentences)."
	case marks <= 10:
		return "These are long answer questions that require comprehensive explanations with examples (4-8 sentences)."
	default:
		return "These are essay-type questions that require detailed, well-structured responses with multiple points and examples (8+ sentences)."
	}
}

func BuildPrompt(req DraftRequest) string {
	guidance, ok := bloomsGuidance[req.BloomsLevel]
	if !ok {
		guidance = "Generate appropriate questions for this cognitive level."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "GENERATE %d EDUCATIONAL QUESTIONS WITH THESE SPECIFICATIONS:\n\n", req.NumQuestions)
	fmt.Fprintf(&b, "SUBJECT: %s\nTOPIC: %s\nMARKS PER QUESTION: %d\nBLOOM'S TAXONOMY LEVEL: %s\n\n",
		req.Subject, req.Topic, req.Marks, req.BloomsLevel)
	fmt.Fprintf(&b, "BLOOM'S LEVEL DESCRIPTION:\n%s\n\n", guidance)
	fmt.Fprintf(&b, "LENGTH GUIDANCE:\n%s\n\n", marksGuidance(req.Marks))
	b.WriteString(`INSTRUCTIONS:
1. Each question must match the requested Bloom's level and mark weight.
2. Do NOT number the questions.
3. Place each question on a separate line.
4. Do NOT include answer keys, explanations, or markdown formatting.
5. Make questions specific and actionable; avoid vague or overly general questions.

Generate the questions now, one per line:`)
	return b.String()
}

// CleanLines splits a completion into question lines, stripping leading
// numbering/bullets and dropping anything too short to be a real question.
func CleanLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		s := strings.TrimSpace(line)
		s = strings.TrimLeft(s, "0123456789.)- ")
		s = strings.TrimSpace(s)
		if len(s) <= 10 {
			continue
		}
		out = append(out, s)
	}
	return out
}
