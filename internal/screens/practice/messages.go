package practice

import (
	prac "github.com/abhisek/wordiz/internal/practice"
)

// sessionReadyMsg is sent once the practice session has been created.
type sessionReadyMsg struct {
	Session *prac.Session
	Skipped []prac.Skipped
	Err     error
}

// spokeMsg is sent when a text-to-speech request finishes.
type spokeMsg struct {
	Err error
}

// finishMsg triggers the end-of-session flow.
type finishMsg struct{}
