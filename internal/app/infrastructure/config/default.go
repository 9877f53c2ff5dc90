package config

// DefaultClientID is the public client ID of the registered Keysight Bot
// Twitch application, used for the implicit grant login flow.
const DefaultClientID = "gp762nuuoqcoxypju8c569th9wz7q5"

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel:     "info",
			GinMode:      "release",
			Port:         3000,
			ClientID:     DefaultClientID,
			AuthToken:    "admin",
			CommandsFile: "commands.json",
			TokenFile:    "tokens.json",
		},
		Responses: true,
	}
}
