package ports

// RelayPort forwards a rendered command message to the automation client
// and blocks until the keyed reply arrives or the deadline passes.
type RelayPort interface {
	Send(message string) (string, error)
}

type SessionPort interface {
	IsAvailable() bool
}
