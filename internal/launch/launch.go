// Package launch starts an IDE on a project through a desktop launcher.
package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/strrl/jb-recent/pkg/models"
)

// DefaultCommand launches a desktop entry by id
const DefaultCommand = "gtk-launch"

var ErrEmptyCommand = errors.New("launcher command is empty")

// Launcher runs Command followed by the desktop file and project path
type Launcher struct {
	Command []string
	// Start runs argv without waiting for it; nil means a detached exec
	Start func(argv []string) error
}

// New splits a shell-style launcher command line
func New(command string) (Launcher, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return Launcher{}, fmt.Errorf("failed to parse launcher command %q: %w", command, err)
	}
	if len(args) == 0 {
		return Launcher{}, ErrEmptyCommand
	}
	return Launcher{Command: args}, nil
}

// Argv returns the full command line for an action
func (l Launcher) Argv(action models.LaunchAction) []string {
	argv := make([]string, 0, len(l.Command)+2)
	argv = append(argv, l.Command...)
	return append(argv, action.DesktopFile, action.ProjectPath)
}

// Launch starts the IDE and returns once the process is spawned
func (l Launcher) Launch(action models.LaunchAction) error {
	if len(l.Command) == 0 {
		return ErrEmptyCommand
	}
	argv := l.Argv(action)
	slog.Debug("launching", "argv", shellquote.Join(argv...))

	start := l.Start
	if start == nil {
		start = startDetached
	}
	if err := start(argv); err != nil {
		return fmt.Errorf("failed to launch %s: %w", action.DesktopFile, err)
	}
	return nil
}

func startDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
