// Command testclient connects to the bot's websocket endpoint and
// acknowledges every relayed command, standing in for Keysight during
// development.
package main

import (
	"flag"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

func main() {
	port := flag.Int("port", 3000, "bot websocket port")
	reply := flag.String("reply", "yep", "reply text for every command")
	flag.Parse()

	url := fmt.Sprintf("ws://localhost:%d/ws", *port)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()
	log.Printf("connected to %s", url)

	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			log.Fatalf("read: %v", err)
		}

		switch env.Event {
		case "command":
			log.Printf("command: %s", env.Data)
			if err := conn.WriteJSON(envelope{Event: prefix(env.Data, 20), Data: *reply}); err != nil {
				log.Fatalf("write: %v", err)
			}
		case "error":
			log.Fatalf("server error: %s", env.Data)
		default:
			log.Printf("unhandled event %q: %s", env.Event, env.Data)
		}
	}
}

func prefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
