package playback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/scribblepad/internal/preset"
)

var ErrUnknownCommand = errors.New("playback: unknown command")

// Command is one of the nine user triggers.
type Command int

const (
	FastForward Command = iota
	SpeedUp
	NormalSpeed
	SlowDown
	Clear
	Reload
	SelectChen
	SelectLorenz
	SelectHalvorsen
)

var commandNames = [...]string{"ff", "faster", "normal", "slower", "clear", "reload", "chen", "lorenz", "halvorsen"}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// Commands lists all triggers in button order.
func Commands() []Command {
	out := make([]Command, len(commandNames))
	for i := range out {
		out[i] = Command(i)
	}
	return out
}

// ParseCommand accepts a command name, a few aliases, or an attractor name.
func ParseCommand(s string) (Command, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	switch n {
	case "fastforward", "fast-forward", "fast":
		return FastForward, nil
	case "speedup", "speed-up", "up":
		return SpeedUp, nil
	case "slowdown", "slow-down", "down":
		return SlowDown, nil
	case "new", "reset":
		return Reload, nil
	}
	for i, name := range commandNames {
		if name == n {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// SelectCommand returns the trigger that selects k.
func SelectCommand(k preset.Kind) Command {
	switch k {
	case preset.Chen:
		return SelectChen
	case preset.Halvorsen:
		return SelectHalvorsen
	default:
		return SelectLorenz
	}
}

func (c Command) selects() (preset.Kind, bool) {
	switch c {
	case SelectChen:
		return preset.Chen, true
	case SelectLorenz:
		return preset.Lorenz, true
	case SelectHalvorsen:
		return preset.Halvorsen, true
	}
	return 0, false
}
