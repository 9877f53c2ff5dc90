package ports

type StatsPort interface {
	Inc(command string)
	Snapshot() map[string]int64
}
