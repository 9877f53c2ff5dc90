package ws

// Envelope is the wire frame exchanged with the automation client.
//
// Server to client: {"event":"command","data":"<rendered message>"} and
// {"event":"error","data":"<notice>"}. Client to server: the event is the
// correlation key of the command being answered (its first 20
// characters) and data carries the reply text.
type Envelope struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}
