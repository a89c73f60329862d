// Package gameerr defines the error taxonomy shared by the board/game
// engine and the room state machine, so the transport layer can map a
// failure to an HTTP status without string-matching error text.
package gameerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure into one of the taxonomy buckets a caller
// needs to distinguish.
type Kind int

const (
	Unknown Kind = iota
	OutOfBounds
	InvalidPath
	NotYourTurn
	NotYourCone
	RoomNotFound
	RoomFull
	UserNotFound
	ColorTaken
	NotInLobby
	Transport
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "out_of_bounds"
	case InvalidPath:
		return "invalid_path"
	case NotYourTurn:
		return "not_your_turn"
	case NotYourCone:
		return "not_your_cone"
	case RoomNotFound:
		return "room_not_found"
	case RoomFull:
		return "room_full"
	case UserNotFound:
		return "user_not_found"
	case ColorTaken:
		return "color_taken"
	case NotInLobby:
		return "not_in_lobby"
	case Transport:
		return "transport"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Error is the concrete error type every core package returns for
// caller-visible failures.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.err }

// New builds an Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an Error of the given kind wrapping an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, err: err}
}

// KindOf extracts the Kind of err if it is (or wraps) a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
