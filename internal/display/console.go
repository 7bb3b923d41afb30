package display

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// Console reads a human player's decisions from a line based terminal
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole creates a console prompting on out and reading from in
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Prompt shows the table from the player's seat and reads one line. It
// matches game.PromptFunc.
func (c *Console) Prompt(view game.RoundView) (string, error) {
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, RenderTable(view.Players, view.Dealer, view.Step > 1))
	fmt.Fprintf(c.out, "%s, you have %d. %s ",
		NameStyle.Render(view.Self.Name), view.Self.Score, InfoStyle.Render("hit or stand?"))

	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}
