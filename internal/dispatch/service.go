package dispatch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/boxbuddy/boxbuddy/internal/history"
	"github.com/boxbuddy/boxbuddy/internal/model"
	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// Service dispatches actions to distrobox
type Service struct {
	distrobox *platform.Distrobox

	mu       sync.RWMutex
	terminal string // configured terminal, empty means auto-detect
	recorder history.Recorder

	now func() time.Time
}

var (
	_ Dispatcher = (*Service)(nil)
	_ Registry   = (*Service)(nil)
)

// NewService creates a dispatcher over the given distrobox wrapper
func NewService(distrobox *platform.Distrobox) *Service {
	return &Service{
		distrobox: distrobox,
		now:       time.Now,
	}
}

// SetRecorder sets where action results are recorded. Nil disables history.
func (s *Service) SetRecorder(recorder history.Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = recorder
}

// SetTerminal sets the preferred terminal emulator
func (s *Service) SetTerminal(terminal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terminal = strings.TrimSpace(terminal)
}

// Terminal returns the preferred terminal emulator
func (s *Service) Terminal() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terminal
}

// IsInstalled implements Registry
func (s *Service) IsInstalled() bool {
	return s.distrobox.IsInstalled()
}

// ListBoxes implements Registry
func (s *Service) ListBoxes(ctx context.Context) ([]model.Box, error) {
	return s.distrobox.ListBoxes(ctx)
}

// Perform implements Dispatcher
func (s *Service) Perform(ctx context.Context, action model.Action, box string) error {
	switch action {
	case model.ActionShowApplications:
		log.Printf("Show applications requested for %s, nothing to do", box)
		return nil
	case model.ActionCreate:
		return s.Create(ctx, CreateOptions{Name: box})
	}

	if err := CheckBoxName(box); err != nil {
		return invalidName(action, box, err)
	}

	return s.record(ctx, action, box, func() error {
		switch action {
		case model.ActionDelete:
			return s.distrobox.Remove(ctx, box)
		case model.ActionUpgrade:
			return s.distrobox.Upgrade(ctx, box)
		case model.ActionOpenTerminal:
			return s.launchInTerminal(s.distrobox.EnterCommand(box))
		default:
			return fmt.Errorf("unsupported action: %s", action)
		}
	})
}

// Create implements Dispatcher
func (s *Service) Create(ctx context.Context, opts CreateOptions) error {
	if err := CheckBoxName(opts.Name); err != nil {
		return invalidName(model.ActionCreate, opts.Name, err)
	}
	name := strings.TrimSpace(opts.Name)

	return s.record(ctx, model.ActionCreate, name, func() error {
		return s.launchInTerminal(s.distrobox.CreateCommand(name, opts.Image))
	})
}

// launchInTerminal starts a terminal running command and does not wait
func (s *Service) launchInTerminal(command []string) error {
	runner := s.distrobox.Runner()
	term, err := platform.ResolveTerminal(s.Terminal(), runner.LookPath)
	if err != nil {
		return err
	}

	log.Printf("Launching %s for: %s", term.Command, strings.Join(command, " "))
	return runner.Start(term.Command, term.Argv(command...)...)
}

// record runs call, converts failures and stores the outcome
func (s *Service) record(ctx context.Context, action model.Action, box string, call func() error) error {
	entry := history.NewEntry(action, box, s.now())

	var failed *ActionFailedError
	if err := call(); err != nil {
		if platform.IsNotFound(err) && !action.IsDetached() {
			err = fmt.Errorf("%w: %w", platform.ErrToolUnavailable, err)
		}
		failed = newActionFailed(action, box, err)
		log.Printf("Action failed: %v", failed)
		entry = entry.Finish(failed, s.now())
		entry.Detail = failed.Detail
	} else {
		log.Printf("Action %s succeeded for %s", action, box)
		entry = entry.Finish(nil, s.now())
	}

	s.mu.RLock()
	recorder := s.recorder
	s.mu.RUnlock()
	if recorder != nil {
		if err := recorder.Record(ctx, entry); err != nil {
			log.Printf("Failed to record history: %v", err)
		}
	}

	if failed != nil {
		return failed
	}
	return nil
}
