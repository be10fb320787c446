package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alexshd/omeganet"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const chatBanner = "OmegaNet Cognitive Simulation Starting... Type 'exit' to quit or 'summary' to see agent stats."

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the population interactively",
		Long: `Chat opens a console over a live population.

  exit                   quit and write the summary
  summary                print every agent's capacity, entropy and fact count
  talk to NAME: MESSAGE  ask a single agent
  teach NAME: FACT       add a fact to an agent's memory

Any other line is broadcast: the population advances one tick and every
agent and entity responds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("summary") {
				cfg.Output.SummaryPath, _ = cmd.Flags().GetString("summary")
			}

			sim, err := newSimulation(cfg, newLogger(cmd, cfg), nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session := &chatSession{controller: sim.controller}
			if err := session.serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return writeSummary(cmd, sim.controller, uuid.NewString(), cfg.Output.SummaryPath)
		},
	}

	cmd.Flags().String("summary", "", "Path for the JSON summary (empty disables)")

	return cmd
}

// errQuit ends a chat session.
var errQuit = errors.New("quit")

// chatSession interprets console lines against one controller.
type chatSession struct {
	controller *omeganet.LoopController
}

// serve reads lines from in until exit, EOF, or ctx is done.
func (s *chatSession) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(out, chatBanner)

	// The scanner blocks on input, so it runs apart from the prompt loop
	// and an interrupt can end the session between lines.
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, "\nYour input: ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-scanErr:
					return err
				default:
					return ctx.Err()
				}
			}
			err := s.handle(ctx, line, out)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// handle executes one console line.
func (s *chatSession) handle(ctx context.Context, line string, out io.Writer) error {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)

	switch {
	case line == "":
		return nil

	case lower == "exit":
		return errQuit

	case lower == "summary":
		for _, a := range s.controller.Agents() {
			fmt.Fprintln(out, a.Describe())
		}
		return nil

	case strings.HasPrefix(lower, "talk to"):
		name, message, ok := splitDirective(line, len("talk to"))
		if !ok {
			fmt.Fprintln(out, "Invalid syntax. Use: talk to [AgentName]: [message]")
			return nil
		}
		agent, err := s.controller.Agent(name)
		if err != nil {
			fmt.Fprintln(out, "Agent not found.")
			return nil
		}
		fmt.Fprintln(out, agent.Respond(message))
		return nil

	case strings.HasPrefix(lower, "teach "):
		name, fact, ok := splitDirective(line, len("teach"))
		if !ok || fact == "" {
			fmt.Fprintln(out, "Invalid syntax. Use: teach [AgentName]: [fact]")
			return nil
		}
		agent, err := s.controller.Agent(name)
		if err != nil {
			fmt.Fprintln(out, "Agent not found.")
			return nil
		}
		if agent.AddFact(fact) {
			fmt.Fprintf(out, "%s learned a new fact (Facts=%d).\n", agent.Name(), agent.MemorySize())
		} else {
			fmt.Fprintf(out, "%s already knows that.\n", agent.Name())
		}
		return nil
	}

	// Broadcast: advance the population one tick, then everyone answers.
	if _, err := s.controller.Step(ctx); err != nil {
		return err
	}
	for _, a := range s.controller.Agents() {
		fmt.Fprintln(out, a.Respond(line))
	}
	for _, e := range s.controller.Entities() {
		fmt.Fprintln(out, e.Respond(line))
	}
	return nil
}

// splitDirective parses "<keyword> NAME: TEXT" after skipping the keyword.
func splitDirective(line string, keywordLen int) (name, text string, ok bool) {
	head, text, found := strings.Cut(line[keywordLen:], ":")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(head)
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(text), true
}
