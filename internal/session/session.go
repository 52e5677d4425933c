// Package session restarts the desktop processes that pick up recoloured
// artifacts: the window manager and the panel.
package session

import (
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-ps"
)

// Manager launches detached restart commands.
type Manager struct {
	log hclog.Logger
}

// New builds a Manager. A nil logger disables logging.
func New(log hclog.Logger) *Manager {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Manager{log: log}
}

// Running reports whether a process with the given executable name exists.
func Running(name string) (bool, error) {
	pids, err := findProcessByName(name)
	if err != nil {
		return false, err
	}
	return len(pids) > 0, nil
}

// findProcessByName finds all processes with the given executable name.
func findProcessByName(name string) ([]int, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if p.Executable() == name {
			pids = append(pids, p.Pid())
		}
	}

	return pids, nil
}

// start launches a command detached from this process; output is
// discarded and the child is not waited on.
func (m *Manager) start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	// Reap the child in the background so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	m.log.Debug("started", "command", name, "args", args)
	return nil
}

// RestartWindowManager replaces the running xfwm4 instance.
func (m *Manager) RestartWindowManager() error {
	return m.start("xfwm4", "--replace")
}

// RestartPanel asks xfce4-panel to restart itself.
func (m *Manager) RestartPanel() error {
	return m.start("xfce4-panel", "-r")
}
