package ui

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps briandowns/spinner with our color scheme
type Spinner struct {
	spinner *spinner.Spinner
}

// NewSpinner creates a new spinner with a message
func NewSpinner(message string) *Spinner {
	s := spinner.New(
		spinner.CharSets[14], // dots style
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
	)
	return &Spinner{spinner: s}
}

// Start starts the spinner
func (s *Spinner) Start() {
	s.spinner.Start()
}

// Stop stops the spinner
func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(format string, args ...interface{}) {
	s.spinner.Stop()
	_, _ = successColor.Printf("%s %s\n", successSymbol, fmt.Sprintf(format, args...))
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(format string, args ...interface{}) {
	s.spinner.Stop()
	_, _ = errorColor.Printf("%s %s\n", errorSymbol, fmt.Sprintf(format, args...))
}

// Warning stops the spinner and shows a warning message
func (s *Spinner) Warning(format string, args ...interface{}) {
	s.spinner.Stop()
	_, _ = warningColor.Printf("%s %s\n", warningSymbol, fmt.Sprintf(format, args...))
}

// UpdateMessage updates the spinner message while it's running
func (s *Spinner) UpdateMessage(message string) {
	s.spinner.Suffix = " " + message
}

// WithSpinner runs a function with a spinner.
// On failure the spinner reports the failure and the error is returned.
func WithSpinner(message string, fn func() error) error {
	s := NewSpinner(message)
	s.Start()

	if err := fn(); err != nil {
		s.Error("%s failed", message)
		return err
	}

	s.Success("%s", message)
	return nil
}
