// Package pidfile enforces one agent per account: two concurrent browser
// sessions would double-book construction slots and race the hero
// inventory.
package pidfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

type PIDFile struct {
	path string
}

func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire writes this process's PID, failing when another live agent
// already holds the file. A stale file left by a dead or crashed agent is
// cleared silently.
func (p *PIDFile) Acquire() error {
	if pid, ok := p.readExisting(); ok {
		if processAlive(pid) {
			return fmt.Errorf("agent is already running (PID %d)", pid)
		}
		_ = os.Remove(p.path)
	}

	data := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	return nil
}

// Release removes the PID file. A missing file is not an error, so Release
// is safe to call more than once.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing PID file: %w", err)
	}
	return nil
}

// readExisting returns the PID recorded in the file, if the file exists and
// holds a number. An unparseable file is treated as absent and removed.
func (p *PIDFile) readExisting() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		_ = os.Remove(p.path)
		return 0, false
	}
	return pid, true
}

// processAlive probes the PID with signal 0. EPERM still means alive: the
// process exists but belongs to someone else.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return err == syscall.EPERM
}
