package ports

import "github.com/adam-gdovin/keysight-local-bot/internal/app/infrastructure/commands"

type CommandsPort interface {
	Resolve(trigger string) (*commands.Command, bool)
	All() []*commands.Command
	Reload() error
}
