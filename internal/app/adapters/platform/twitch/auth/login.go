package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/browser"

	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

const (
	portRangeStart = 58470
	portRangeEnd   = 58479

	loginTimeout = 5 * time.Minute
)

// The implicit grant flow puts the token in the URL fragment, which
// never reaches the server; this page forwards it as a query parameter.
const authPage = `<html>
  <head><title>Authentication Successful</title></head>
  <body>
    <script>
      const params = new URLSearchParams(window.location.hash.substr(1));
      fetch("/token?access_token=" + params.get("access_token"))
          .then(() => { window.close(); });
    </script>
  </body>
</html>`

// browserLogin runs the Twitch implicit grant flow: a throwaway local
// HTTP server catches the redirect while the default browser shows the
// consent page.
func browserLogin(log logger.Logger, clientID string) (string, error) {
	ln, port, err := listenLoopback()
	if err != nil {
		return "", err
	}

	tokenCh := make(chan string, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(authPage))
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("access_token")
		if token == "" {
			http.Error(w, "missing access_token", http.StatusBadRequest)
			return
		}

		select {
		case tokenCh <- token:
		default:
		}
		_, _ = w.Write([]byte("Success"))
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Auth server failed", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Info("Auth server listening", slog.Int("port", port))

	redirectURI := fmt.Sprintf("http://localhost:%d/auth", port)
	oauthURL := fmt.Sprintf(
		"https://id.twitch.tv/oauth2/authorize?client_id=%s&redirect_uri=%s&response_type=token&scope=%s",
		url.QueryEscape(clientID), url.QueryEscape(redirectURI), url.QueryEscape("chat:read chat:edit"),
	)

	if err := browser.OpenURL(oauthURL); err != nil {
		log.Warn("Failed to open the browser, open this URL manually", slog.String("url", oauthURL))
	}

	select {
	case token := <-tokenCh:
		return token, nil
	case <-time.After(loginTimeout):
		return "", errors.New("login timed out")
	}
}

func listenLoopback() (net.Listener, int, error) {
	for port := portRangeStart; port <= portRangeEnd; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err == nil {
			return ln, port, nil
		}
	}
	return nil, 0, fmt.Errorf("no free port in [%d,%d]", portRangeStart, portRangeEnd)
}
