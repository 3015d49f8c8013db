// Package agent implements the Gemini powered portfolio assistant.
//
// A facilitator chats with the user and delegates questions to experts, each
// one a separate chat with its own tools.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, fmt.Fprintln if nil.
	Print func(w io.Writer, answer string)
}

// New creates a new Agent reading user input from r and writing answers to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start creates the chats of all the experts and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive session. prompts are sent first, as if typed by
// the user. The session ends on "bye" or at the end of the input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to cfo portfolio assist. Type 'bye' to exit.")

	for {
		input, err := a.next(&prompts)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.print(content.Parts[0].Text)
	}
}

// next prints the prompt and returns the next user input, trimmed. Pending
// prompts are consumed before reading.
func (a *Agent) next(prompts *[]string) (string, error) {
	fmt.Fprint(a.w, prompt)
	if len(*prompts) > 0 {
		input := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		fmt.Fprintln(a.w, input)
		return input, nil
	}
	input, err := a.r.ReadString('\n')
	if err == io.EOF && strings.TrimSpace(input) != "" {
		// last line without a newline.
		return strings.TrimSpace(input), nil
	}
	return strings.TrimSpace(input), err
}

func (a *Agent) print(answer string) {
	if a.Print != nil {
		a.Print(a.w, answer)
		return
	}
	fmt.Fprintln(a.w, answer)
}
