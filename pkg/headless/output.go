package headless

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	noticeStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Output handles console output for headless mode
type Output struct {
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates an output handler writing to stdout/stderr
func NewOutput() *Output {
	return &Output{out: os.Stdout, errOut: os.Stderr}
}

// Delta prints incremental reply text without a trailing newline
func (o *Output) Delta(text string) {
	fmt.Fprint(o.out, text)
}

// Line prints a full line of reply text
func (o *Output) Line(text string) {
	fmt.Fprintln(o.out, text)
}

// Notice prints a faint informational line to stderr so it never mixes
// with reply text on stdout
func (o *Output) Notice(text string) {
	fmt.Fprintln(o.errOut, noticeStyle.Render(text))
}

// Error prints an error line to stderr
func (o *Output) Error(text string) {
	fmt.Fprintln(o.errOut, errorStyle.Render(text))
}
