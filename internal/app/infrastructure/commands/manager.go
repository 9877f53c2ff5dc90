package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

// Manager loads the command set from a JSON file and serves trigger
// lookups against an index that is swapped atomically on every
// successful reload. A rejected load keeps the previous index active.
type Manager struct {
	log  logger.Logger
	path string

	mu        sync.RWMutex
	byTrigger map[string]*Command
	commands  []*Command
}

func New(log logger.Logger, path string) (*Manager, error) {
	m := &Manager{
		log:       log,
		path:      path,
		byTrigger: make(map[string]*Command),
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		m.log.Warn("Commands file does not exist, creating an empty one", slog.String("path", path))
		if err := writeAtomic(path, []byte("{}\n"), 0644); err != nil {
			return nil, fmt.Errorf("create commands file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat commands file: %w", err)
	}

	// A malformed initial file is not fatal; the bot starts with an
	// empty command set and picks the file up on the next valid reload.
	if err := m.Reload(); err != nil {
		m.log.Error("Failed to load commands, starting with an empty set", err)
	}

	return m, nil
}

// Reload re-reads the file and swaps the trigger index only when the
// whole set parses and carries no trigger collisions.
func (m *Manager) Reload() error {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("read commands file: %w", err)
	}

	var data map[string]commandData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse commands file: %w", err)
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	byTrigger := make(map[string]*Command, len(data))
	commands := make([]*Command, 0, len(data))
	for _, name := range names {
		cmd := newCommand(name, data[name])
		for _, trigger := range cmd.Triggers {
			if other, ok := byTrigger[trigger]; ok {
				return fmt.Errorf("duplicate trigger %q in commands %q and %q", trigger, cmd.Name, other.Name)
			}
			byTrigger[trigger] = cmd
		}
		commands = append(commands, cmd)
	}

	m.mu.Lock()
	m.byTrigger = byTrigger
	m.commands = commands
	m.mu.Unlock()

	m.log.Info("Commands updated", slog.Int("commands", len(commands)), slog.Int("triggers", len(byTrigger)))
	return nil
}

// Resolve looks up an already-normalized trigger.
func (m *Manager) Resolve(trigger string) (*Command, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmd, ok := m.byTrigger[trigger]
	return cmd, ok
}

func (m *Manager) All() []*Command {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.commands
}

// Watch polls the file for modification time or size changes and
// reloads. A failed reload is logged and leaves the active set intact.
func (m *Manager) Watch(interval time.Duration) {
	go m.watchLoop(interval)
}

func (m *Manager) watchLoop(interval time.Duration) {
	var lastMod time.Time
	var lastSize int64

	if info, err := os.Stat(m.path); err == nil {
		lastMod, lastSize = info.ModTime(), info.Size()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		info, err := os.Stat(m.path)
		if err != nil {
			continue
		}

		if info.ModTime().Equal(lastMod) && info.Size() == lastSize {
			continue
		}
		lastMod, lastSize = info.ModTime(), info.Size()

		m.log.Info("Commands file changed, updating commands", slog.String("path", m.path))
		if err := m.Reload(); err != nil {
			m.log.Error("Commands update rejected, keeping previous set", err)
		}
	}
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", base, time.Now().UnixNano()))

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
