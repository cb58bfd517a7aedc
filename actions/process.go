package actions

import (
	"log"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/devnought/sc-util/failure"
)

// GameExecutables are the process names the game client runs under, on
// Windows and under Wine/Proton.
var GameExecutables = []string{
	"StarCitizen.exe",
	"StarCitizen",
}

type GameProcess struct {
	PID        int
	Executable string
}

// FindGameProcess returns the first running game client, or nil.
func FindGameProcess() (*GameProcess, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	for _, process := range processes {
		if isGameExecutable(process.Executable()) {
			return &GameProcess{
				PID:        process.Pid(),
				Executable: process.Executable(),
			}, nil
		}
	}

	return nil, nil
}

func isGameExecutable(name string) bool {
	for _, exe := range GameExecutables {
		if strings.EqualFold(name, exe) {
			return true
		}
	}
	return false
}

// ensureGameStopped refuses to touch game folders while the client runs,
// unless forced. Dry runs never touch anything so they skip the check.
// Not being able to list processes is not fatal.
func (t *Tool) ensureGameStopped() error {
	if t.settings.Force || t.settings.DryRun {
		return nil
	}

	proc, err := t.settings.FindGame()
	if err != nil {
		log.Printf("While looking for running game: %+v", err)
		log.Printf("Continuing anyway...")
		return nil
	}

	if proc != nil {
		log.Printf("Game still running (%s, pid %d)", proc.Executable, proc.PID)
		return failure.New(failure.GameRunning, proc.Executable)
	}

	return nil
}
