package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noborus/ov/oviewer"
)

// errNoTerminal is returned when the pager is used before the program is attached
var errNoTerminal = errors.New("program not set")

// terminal is the part of *tea.Program the pager needs
type terminal interface {
	ReleaseTerminal() error
	RestoreTerminal() error
}

// Pager shows long text (record details, help) in ov, handing the terminal
// over while it runs
type Pager struct {
	term terminal
	view func(content string) error
}

// NewPager creates a pager backed by ov
func NewPager() *Pager {
	return &Pager{view: runOV}
}

// SetTerminal attaches the program whose terminal the pager borrows
func (p *Pager) SetTerminal(t terminal) {
	p.term = t
}

// Show blocks until the user leaves the pager
func (p *Pager) Show(content string) error {
	if p.term == nil {
		return errNoTerminal
	}

	// Release terminal control to run ov
	if err := p.term.ReleaseTerminal(); err != nil {
		return fmt.Errorf("failed to release terminal: %w", err)
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.term.RestoreTerminal()
	}()

	return p.view(content)
}

func runOV(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to start pager: %w", err)
	}

	// Leave our screen alone on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
