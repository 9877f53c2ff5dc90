package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nicklaw5/helix/v2"

	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

// Tokens expiring within a day are treated as expired so the user logs
// in before the bot dies mid-stream.
const minTokenLifetime = 24 * time.Hour

// Identity is a validated Twitch access token and its owner.
type Identity struct {
	AccessToken string
	Login       string
	UserID      string
}

type tokenFile struct {
	AccessToken string `json:"access_token"`
}

// EnsureToken returns a valid access token, reusing the saved one when
// it still has enough lifetime and walking the user through the browser
// login flow otherwise.
func EnsureToken(log logger.Logger, clientID, path string) (*Identity, error) {
	if token := loadToken(path); token != "" {
		log.Info("Validating saved access token")

		identity, err := validateToken(clientID, token)
		if err == nil {
			log.Info("Access token is valid", slog.String("login", identity.Login))
			return identity, nil
		}
		log.Warn("Saved access token expired or is about to expire, logging in again", slog.String("error", err.Error()))
	} else {
		log.Info("No saved access token found, logging in")
	}

	token, err := browserLogin(log, clientID)
	if err != nil {
		return nil, fmt.Errorf("browser login: %w", err)
	}

	if err := saveToken(path, token); err != nil {
		log.Error("Failed to save access token", err)
	}

	identity, err := validateToken(clientID, token)
	if err != nil {
		return nil, fmt.Errorf("validate new token: %w", err)
	}

	log.Info("Logged in", slog.String("login", identity.Login))
	return identity, nil
}

func validateToken(clientID, token string) (*Identity, error) {
	client, err := helix.NewClient(&helix.Options{ClientID: clientID})
	if err != nil {
		return nil, err
	}

	isValid, resp, err := client.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if !isValid {
		return nil, errors.New("token rejected by twitch")
	}
	if time.Duration(resp.Data.ExpiresIn)*time.Second <= minTokenLifetime {
		return nil, fmt.Errorf("token expires in %ds", resp.Data.ExpiresIn)
	}

	return &Identity{
		AccessToken: token,
		Login:       resp.Data.Login,
		UserID:      resp.Data.UserID,
	}, nil
}

func loadToken(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var tf tokenFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return ""
	}
	return tf.AccessToken
}

func saveToken(path, token string) error {
	data, err := json.MarshalIndent(tokenFile{AccessToken: token}, "", "  ")
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.tmp-%d", filepath.Base(path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
