// Package console is a line-oriented terminal front end for the chat backend.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go_chat_client/models"
	"go_chat_client/services"
)

// ChatAPI is the subset of services.ChatClient the console drives.
type ChatAPI interface {
	CreateSession(ctx context.Context, userIdentifier string) (*models.SessionCreateResponse, error)
	SendQuery(ctx context.Context, req models.ChatQueryRequest) (*models.ChatResponse, error)
	SubmitFeedback(ctx context.Context, req models.FeedbackRequest) error
	HealthCheck(ctx context.Context) (*models.HealthResponse, error)
}

const helpText = `Commands:
  /new                    start a new session
  /mode full_book|selection
  /select <text>          set the passage used in selection mode (empty clears it)
  /good [comment]         rate the last answer as helpful
  /bad [comment]          rate the last answer as not helpful
  /health                 check the backend
  /help                   show this help
  /exit                   quit
Anything else is sent as a question.`

// Console holds the conversation state; the client itself stays stateless.
type Console struct {
	api    ChatAPI
	in     *bufio.Scanner
	out    io.Writer
	userID string

	sessionID      string
	mode           models.ChatMode
	selection      string
	lastResponseID string
}

func New(api ChatAPI, in io.Reader, out io.Writer, userID string) *Console {
	return &Console{
		api:    api,
		in:     bufio.NewScanner(in),
		out:    out,
		userID: userID,
		mode:   models.ModeFullBook,
	}
}

func (c *Console) SessionID() string {
	return c.sessionID
}

// Run reads lines until /exit, EOF or ctx is done. Lines are read on a
// separate goroutine so a cancelled ctx ends Run at an idle prompt.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Book chat. Type /help for commands.")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		for c.in.Scan() {
			select {
			case lines <- c.in.Text():
			case <-done:
				return
			}
		}
		scanErr <- c.in.Err()
	}()

	for {
		fmt.Fprint(c.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				return <-scanErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if quit := c.Handle(ctx, line); quit {
				fmt.Fprintln(c.out, "Goodbye!")
				return nil
			}
		}
	}
}

// Handle executes one input line and reports whether the console should quit.
func (c *Console) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		c.ask(ctx, line)
		return false
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/exit", "/quit":
		return true
	case "/help":
		fmt.Fprintln(c.out, helpText)
	case "/new":
		c.newSession(ctx)
	case "/mode":
		c.setMode(arg)
	case "/select":
		c.selection = arg
		if arg == "" {
			fmt.Fprintln(c.out, "Selection cleared.")
		} else {
			fmt.Fprintf(c.out, "Selection set (%d chars).\n", utf8.RuneCountInString(arg))
		}
	case "/good":
		c.rate(ctx, models.RatingPositive, arg)
	case "/bad":
		c.rate(ctx, models.RatingNegative, arg)
	case "/health":
		c.health(ctx)
	default:
		fmt.Fprintf(c.out, "Unknown command %s. Type /help.\n", cmd)
	}
	return false
}

func (c *Console) newSession(ctx context.Context) {
	resp, err := c.api.CreateSession(ctx, c.userID)
	if err != nil {
		c.printError(err)
		return
	}
	c.sessionID = resp.SessionID
	c.lastResponseID = ""
	fmt.Fprintf(c.out, "Session %s started (%s).\n", resp.SessionID, resp.CreatedAt)
}

func (c *Console) setMode(arg string) {
	mode := models.ChatMode(arg)
	if !mode.Valid() {
		fmt.Fprintf(c.out, "Unknown mode %q. Use full_book or selection.\n", arg)
		return
	}
	c.mode = mode
	fmt.Fprintf(c.out, "Mode: %s\n", mode)
}

func (c *Console) ask(ctx context.Context, question string) {
	req := models.ChatQueryRequest{
		Query:     question,
		Mode:      c.mode,
		SessionID: c.sessionID,
	}
	if c.mode == models.ModeSelection {
		req.SelectedText = c.selection
	}

	resp, err := c.api.SendQuery(ctx, req)
	if err != nil {
		c.printError(err)
		return
	}
	if resp.SessionID != "" {
		c.sessionID = resp.SessionID
	}
	c.lastResponseID = resp.ResponseID

	fmt.Fprintf(c.out, "Bot: %s\n", resp.ResponseText)
	if len(resp.SourceChunks) > 0 {
		fmt.Fprintln(c.out, "Sources:")
		for i, chunk := range resp.SourceChunks {
			fmt.Fprintf(c.out, "  %d. %s (%.2f) %s\n", i+1, chunk.Citation(), chunk.RelevanceScore, chunk.URL)
		}
	}
	fmt.Fprintf(c.out, "(%d ms)\n", resp.ResponseTimeMs)
}

func (c *Console) rate(ctx context.Context, rating models.FeedbackRating, comment string) {
	if c.lastResponseID == "" {
		fmt.Fprintln(c.out, "No answer to rate yet.")
		return
	}
	err := c.api.SubmitFeedback(ctx, models.FeedbackRequest{
		ResponseID:   c.lastResponseID,
		Rating:       rating,
		FeedbackText: comment,
	})
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, "Thanks for the feedback!")
}

func (c *Console) health(ctx context.Context) {
	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Backend %s (version %s)\n", resp.Status, resp.Version)
}

func (c *Console) printError(err error) {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, services.ErrRateLimited):
		fmt.Fprintf(c.out, "Slow down: %s\n", err)
	case errors.As(err, &apiErr):
		fmt.Fprintf(c.out, "Error: %s\n", err)
	default:
		fmt.Fprintf(c.out, "Backend unreachable: %s\n", err)
	}
}
