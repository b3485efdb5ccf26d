package audio

import "fmt"

// UnavailableError reports that the platform audio service could not be reached.
type UnavailableError struct {
	Source  string
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// InvalidStateError reports levels that break the max > 0 contract.
type InvalidStateError struct {
	Stream StreamID
	Level  Level
}

func (e *InvalidStateError) Error() string {
	if e.Level.Max <= 0 {
		return fmt.Sprintf("invalid maximum volume %d for stream %s", e.Level.Max, e.Stream)
	}
	return fmt.Sprintf("volume %d out of range [0, %d] for stream %s",
		e.Level.Current, e.Level.Max, e.Stream)
}
