package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Display renders the screen as lines on a terminal.
type Display struct {
	mutex sync.Mutex
	out   io.Writer

	dateColor   *color.Color
	resultColor *color.Color
	errorColor  *color.Color
	mutedColor  *color.Color
}

func NewDisplay(out io.Writer) *Display {
	return &Display{
		out:         out,
		dateColor:   color.New(color.FgCyan, color.Bold),
		resultColor: color.New(color.FgGreen, color.Bold),
		errorColor:  color.New(color.FgRed, color.Bold),
		mutedColor:  color.New(color.Faint),
	}
}

func (d *Display) ShowDate(text string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	fmt.Fprint(d.out, "Rates of ")
	d.dateColor.Fprintln(d.out, text)
}

func (d *Display) ShowCurrencyOptions(options []string, inputIndex, outputIndex int) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.mutedColor.Fprintf(d.out, "Currencies: %s\n", strings.Join(options, ", "))
	fmt.Fprintf(d.out, "From %s to %s\n", option(options, inputIndex), option(options, outputIndex))
}

func (d *Display) ShowResult(text string, visible bool) {
	if !visible {
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	fmt.Fprint(d.out, "= ")
	d.resultColor.Fprintln(d.out, text)
}

func (d *Display) ShowLoading(loading bool) {
	if !loading {
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.mutedColor.Fprintln(d.out, "Loading exchange rates...")
}

func (d *Display) ShowError(message string, cancelable bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.errorColor.Fprintln(d.out, message)
	if cancelable {
		d.mutedColor.Fprintln(d.out, "Type 'retry' to try again or keep working with the previous date.")
		return
	}
	d.mutedColor.Fprintln(d.out, "Type 'retry' to try again.")
}

// HideError is a no-op: the popup is a line already printed.
func (d *Display) HideError() {}

func (d *Display) Share(title, text string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	_, err := fmt.Fprintf(d.out, "%s\n  %s\n", title, text)
	return err
}

func option(options []string, index int) string {
	if index < 0 || index >= len(options) {
		return "?"
	}
	return options[index]
}
