package config

type Config struct {
	App       App  `json:"app"`
	Responses bool `json:"responses"`
}

type App struct {
	LogLevel     string `json:"log_level"`
	GinMode      string `json:"gin_mode"`
	Port         int    `json:"port"`
	ClientID     string `json:"client_id"`
	Channel      string `json:"channel"` // empty means "channel of the signed-in user"
	AuthToken    string `json:"auth_token"`
	CommandsFile string `json:"commands_file"`
	TokenFile    string `json:"token_file"`
}
