package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/scenario"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play generated scenarios on the console (no database)",
	Long: `Generate and interactively answer scenarios for one category.

This is a stateless developer tool: no database and no audit log.
Useful for evaluating scenario quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", string(scenario.CategoryPhishing), "Category: phishing, daily, work, fake_news")
	previewCmd.Flags().Int("count", 5, "Number of rounds to play (at most 15)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	catVal, _ := cmd.Flags().GetString("category")
	count, _ := cmd.Flags().GetInt("count")

	cat, err := scenario.ParseCategory(catVal)
	if err != nil {
		return err
	}
	if count < 1 || count > challenge.Length {
		return fmt.Errorf("invalid count %d: must be between 1 and %d", count, challenge.Length)
	}

	file, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cmd, file, "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := commandContext(cmd)

	// No EventRepo: logging skipped.
	engine, err := buildEngine(ctx, file, nil)
	if err != nil {
		return err
	}
	return playConsole(ctx, engine, cat, count, os.Stdin, cmd.OutOrStdout())
}

// playConsole runs count rounds of a challenge over a line-oriented
// terminal. It returns nil when input ends early.
func playConsole(ctx context.Context, engine *challenge.Engine, cat scenario.Category, count int, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	c := challenge.New(cat)
	req, err := c.Start()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d rounds\n\n", cat.Title(), count)

	for {
		engine.Resolve(ctx, c, req)
		req = nil

		switch c.Phase {
		case challenge.PhaseScenarioError:
			fmt.Fprintf(out, "Scenario generation failed: %s\n", c.Error)
			fmt.Fprint(out, "Press Enter to retry, q to quit: ")
			line, ok := readLine()
			if !ok || line == "q" {
				return nil
			}
			req, _ = c.Retry()

		case challenge.PhaseAwaitingAnswer:
			printScenario(out, c)
			fmt.Fprint(out, "\nYour answer: ")
			line, ok := readLine()
			if !ok {
				fmt.Fprintln(out, "\n(input closed)")
				return nil
			}
			req, err = answerFromInput(c, line)
			if err != nil {
				fmt.Fprintf(out, "%v\n\n", err)
			}

		case challenge.PhaseFeedbackError:
			printVerdict(out, c)
			fmt.Fprintf(out, "Explanation unavailable: %s\n\n", c.Error)
			if c.Score.Total >= count {
				printSummary(out, c)
				return nil
			}
			req, _ = c.Skip()

		case challenge.PhaseShowingFeedback:
			printVerdict(out, c)
			fmt.Fprintf(out, "Explanation: %s\n\n", c.Feedback)
			if c.Score.Total >= count {
				printSummary(out, c)
				return nil
			}
			req, _ = c.Dismiss()

		default:
			return fmt.Errorf("unexpected phase %s", c.Phase)
		}
	}
}

func printSummary(out io.Writer, c *challenge.Challenge) {
	fmt.Fprintf(out, "── Summary: %d/%d correct (%d%%) ──\n", c.Score.Correct, c.Score.Total, c.Score.Percentage())
	fmt.Fprintln(out, c.Score.Message())
}

func printScenario(out io.Writer, c *challenge.Challenge) {
	s := c.Scenario
	fmt.Fprintf(out, "── Round %d/%d ──\n", c.Round(), challenge.Length)
	if s.Sender != "" {
		fmt.Fprintf(out, "From:    %s\n", s.Sender)
	}
	if s.Subject != "" {
		fmt.Fprintf(out, "Subject: %s\n", s.Subject)
	}

	if s.Type == scenario.TypeIdentifyElement {
		for i, seg := range s.Segments {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, strings.TrimSpace(seg.Text))
		}
	} else {
		fmt.Fprintln(out, s.Body)
	}

	fmt.Fprintf(out, "\n%s\n", s.Question)
	for i, o := range s.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, o)
	}
	switch s.Type {
	case scenario.TypeMultipleSelect:
		fmt.Fprintln(out, "(enter every matching number, separated by commas)")
	case scenario.TypeIdentifyElement:
		fmt.Fprintln(out, "(enter the number of the suspicious part)")
	}
}

func printVerdict(out io.Writer, c *challenge.Challenge) {
	if c.LastCorrect {
		fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		return
	}
	fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Correct answer: %s\n", c.Scenario.CorrectAnswerText())
}

// answerFromInput turns a line of 1-based numbers into the operation that
// matches the round's question type.
func answerFromInput(c *challenge.Challenge, line string) (*challenge.Request, error) {
	s := c.Scenario
	if s == nil {
		return nil, fmt.Errorf("no scenario to answer")
	}

	switch s.Type {
	case scenario.TypeIdentifyElement:
		n, err := parseChoice(line, len(s.Segments))
		if err != nil {
			return nil, err
		}
		return c.Pick(n)

	case scenario.TypeMultipleSelect:
		var picks []string
		for _, part := range strings.Split(line, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			n, err := parseChoice(part, len(s.Options))
			if err != nil {
				return nil, err
			}
			picks = append(picks, s.Options[n])
		}
		if err := c.SetSelection(picks); err != nil {
			return nil, err
		}
		return c.Submit()

	default:
		n, err := parseChoice(line, len(s.Options))
		if err != nil {
			return nil, err
		}
		return c.Choose(s.Options[n])
	}
}

// parseChoice converts a 1-based number to an index below max.
func parseChoice(s string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > max {
		return 0, fmt.Errorf("enter a number between 1 and %d", max)
	}
	return n - 1, nil
}
