package bot

// Button is one selectable action offered with a reply. Data is the
// payload the transport sends back as a callback when it is pressed.
type Button struct {
	Label string
	Data  string
}

// Reply is the content the core hands back to the transport: message
// text plus an optional grid of buttons. Rendering is the transport's
// concern.
type Reply struct {
	Text    string
	Buttons [][]Button
}

// textReply builds a plain reply with no buttons.
func textReply(text string) *Reply {
	return &Reply{Text: text}
}
