package protocol

// GreetingRequest opens a session.
type GreetingRequest struct {
	Version int `json:"version"`
}

// Features advertises negotiable options.
type Features struct {
	ItemValuesEncoding []ValueEncoding `json:"item_values_encoding"`
}

// GreetingResponse answers a greeting with the server capabilities.
type GreetingResponse struct {
	Version  int           `json:"version"`
	Commands []CommandName `json:"commands"`
	Events   []EventName   `json:"events"`
	Features Features      `json:"features"`
}

func (GreetingRequest) clientMessage()  {}
func (GreetingResponse) serverMessage() {}

// MessageType implements Message.
func (GreetingRequest) MessageType() MessageType { return TypeGreeting }

// MessageType implements Message.
func (GreetingResponse) MessageType() MessageType { return TypeGreeting }

// ServerGreeting describes everything this server supports.
func ServerGreeting() GreetingResponse {
	commands := make([]CommandName, len(AllCommands))
	copy(commands, AllCommands)

	events := make([]EventName, len(AllEvents))
	copy(events, AllEvents)

	encodings := make([]ValueEncoding, len(SupportedEncodings))
	copy(encodings, SupportedEncodings)

	return GreetingResponse{
		Version:  Version,
		Commands: commands,
		Events:   events,
		Features: Features{ItemValuesEncoding: encodings},
	}
}

// Supports reports whether the greeting advertises the command.
func (g GreetingResponse) Supports(cmd CommandName) bool {
	for _, c := range g.Commands {
		if c == cmd {
			return true
		}
	}

	return false
}
