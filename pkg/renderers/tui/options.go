package tui

import "io"

// Option configures the Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints group headings and
// messages.
func WithOutput(w io.Writer) Option {
	return func(f *Filler) {
		if w != nil {
			f.out = w
		}
	}
}
