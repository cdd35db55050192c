// Package interaction models the Discord interaction webhook wire format
// used by the whitelist gateway: inbound interaction payloads and the
// immediate-response envelope.
package interaction

import (
	"errors"
	"time"
)

// Interaction types delivered to the webhook endpoint
const (
	TypePing                = 1
	TypeApplicationCommand  = 2
	TypeMessageComponent    = 3
	TypeCommandAutocomplete = 4
)

// Response types returned from the webhook endpoint
const (
	ResponseTypePong                     = 1
	ResponseTypeChannelMessageWithSource = 4
)

// FlagEphemeral marks a response as visible only to the invoking user
const FlagEphemeral = 1 << 6

// Interaction is an inbound interaction payload
type Interaction struct {
	Type   int          `json:"type"`
	Data   *CommandData `json:"data,omitempty"`
	Member *Member      `json:"member,omitempty"`
}

// CommandData carries the invoked command name and its raw option list
type CommandData struct {
	Name    string   `json:"name"`
	Options []Option `json:"options,omitempty"`
}

// Option is a single name/value pair from a command invocation.
// The whitelist command only uses string-typed options.
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Member identifies the guild member who invoked the command
type Member struct {
	User     User      `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// User is the chat platform account behind a member
type User struct {
	ID string `json:"id"`
}

// ErrMissingOption is returned when a required command option is absent
var ErrMissingOption = errors.New("missing required command option")

// WhitelistOptions is the typed form of the whitelist command's options.
// The untyped name/value list is resolved here, at the transport boundary,
// so the orchestrator never does string matching on option names.
type WhitelistOptions struct {
	Username string
	Platform string
}

// WhitelistCommandOptions extracts the typed whitelist options from raw
// command data
func WhitelistCommandOptions(data *CommandData) (WhitelistOptions, error) {
	var opts WhitelistOptions
	if data == nil {
		return opts, ErrMissingOption
	}
	for _, opt := range data.Options {
		switch opt.Name {
		case "username":
			opts.Username = opt.Value
		case "platform":
			opts.Platform = opt.Value
		}
	}
	if opts.Username == "" || opts.Platform == "" {
		return opts, ErrMissingOption
	}
	return opts, nil
}

// Response is the immediate reply envelope for an interaction
type Response struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ResponseData is the message portion of a type 4 response
type ResponseData struct {
	Content string `json:"content"`
	TTS     bool   `json:"tts"`
	Flags   int    `json:"flags"`
}

// Pong acknowledges a liveness ping
func Pong() *Response {
	return &Response{Type: ResponseTypePong}
}

// Message builds an immediate channel message response
func Message(content string, ephemeral bool) *Response {
	flags := 0
	if ephemeral {
		flags = FlagEphemeral
	}
	return &Response{
		Type: ResponseTypeChannelMessageWithSource,
		Data: &ResponseData{Content: content, Flags: flags},
	}
}
