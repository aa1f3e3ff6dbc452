// Package shell reads one employee's review from an operator and prints the
// result.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rgehrsitz/appraise/internal/facts"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const (
	productivityPrompt  = "Enter employee productivity (0-100): "
	teamworkPrompt      = "Enter employee teamwork level (Poor, Good, Excellent): "
	communicationPrompt = "Enter employee communication level (Poor, Adequate, Excellent): "

	resultPrefix = "Employee evaluation result: "
)

var resultStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("39"))

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Prompter collects the employee facts. In interactive mode prompts are
// written to out and an unparsable productivity is asked for again; otherwise
// input is read line by line without prompts and the first bad line is an
// error.
type Prompter struct {
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
}

func NewPrompter(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{
		in:          bufio.NewScanner(in),
		out:         out,
		interactive: interactive,
	}
}

// ReadEmployee reads productivity, teamwork and communication, in that
// order, into a fact bundle.
func (p *Prompter) ReadEmployee() (facts.Facts, error) {
	productivity, err := p.readProductivity()
	if err != nil {
		return nil, err
	}
	teamwork, err := p.readLine(teamworkPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read teamwork level: %w", err)
	}
	communication, err := p.readLine(communicationPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read communication level: %w", err)
	}

	return facts.Facts{
		"productivity":  facts.Int(productivity),
		"teamwork":      facts.Text(teamwork),
		"communication": facts.Text(communication),
	}, nil
}

func (p *Prompter) readProductivity() (int, error) {
	for {
		line, err := p.readLine(productivityPrompt)
		if err != nil {
			return 0, fmt.Errorf("failed to read productivity: %w", err)
		}
		productivity, err := strconv.Atoi(line)
		if err == nil {
			return productivity, nil
		}
		if !p.interactive {
			return 0, fmt.Errorf("productivity must be an integer, got %q", line)
		}
		fmt.Fprintln(p.out, "Productivity must be a whole number.")
	}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	if p.interactive {
		fmt.Fprint(p.out, prompt)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// RenderResult formats the outcome line, styled for a terminal when styled
// is set.
func RenderResult(outcome string, styled bool) string {
	if styled {
		return resultPrefix + resultStyle.Render(outcome)
	}
	return resultPrefix + outcome
}

// IsEndOfInput reports whether err means the operator closed the input.
func IsEndOfInput(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
