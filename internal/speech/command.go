package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// runFunc runs a command and returns its standard output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// CommandEngine drives espeak, espeak-ng or macOS say.
type CommandEngine struct {
	command string
	rate    int
	run     runFunc
}

// candidates are probed in order when no command is configured.
func candidates() []string {
	if runtime.GOOS == "darwin" {
		return []string{"say", "espeak-ng", "espeak"}
	}
	return []string{"espeak-ng", "espeak"}
}

// Detect returns an engine for command, or for the first speech binary on
// PATH when command is empty. rate is words per minute, 0 for the default.
func Detect(command string, rate int) (*CommandEngine, error) {
	names := candidates()
	if command != "" {
		names = []string{command}
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return &CommandEngine{command: path, rate: rate, run: execRun}, nil
		}
	}
	return nil, fmt.Errorf("%w: none of %s found in PATH", ErrUnavailable, strings.Join(names, ", "))
}

func (e *CommandEngine) isSay() bool {
	return filepath.Base(e.command) == "say"
}

// Voices lists the engine's voices.
func (e *CommandEngine) Voices(ctx context.Context) ([]Voice, error) {
	if e.isSay() {
		out, err := e.run(ctx, e.command, "-v", "?")
		if err != nil {
			return nil, err
		}
		return parseSayVoices(out), nil
	}
	out, err := e.run(ctx, e.command, "--voices")
	if err != nil {
		return nil, err
	}
	return parseEspeakVoices(out), nil
}

// Speak reads text aloud and returns when speaking is done.
func (e *CommandEngine) Speak(ctx context.Context, text string, voice Voice) error {
	var args []string
	if voice.Name != "" {
		args = append(args, "-v", voice.Name)
	}
	if e.rate > 0 {
		flag := "-s"
		if e.isSay() {
			flag = "-r"
		}
		args = append(args, flag, strconv.Itoa(e.rate))
	}
	args = append(args, "--", text)
	_, err := e.run(ctx, e.command, args...)
	return err
}

// parseEspeakVoices reads `espeak --voices` output:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US            (en 2)
func parseEspeakVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		name := fields[3]
		voices = append(voices, Voice{
			Name:    fields[1],
			Lang:    fields[1],
			Default: strings.EqualFold(name, "default"),
		})
	}
	return voices
}

var sayVoiceLine = regexp.MustCompile(`^(.+?)\s+([a-z]{2,3}[_-][A-Za-z0-9]+)\s+#`)

// parseSayVoices reads `say -v ?` output:
//
//	Samantha            en_US    # Hello! My name is Samantha.
func parseSayVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := sayVoiceLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		voices = append(voices, Voice{Name: strings.TrimSpace(m[1]), Lang: m[2]})
	}
	return voices
}
