package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"tickit/pkg/api"
	"tickit/pkg/database"
	"tickit/pkg/tasks"
)

// Gateway is the part of the backend client the commands use
type Gateway interface {
	Login(ctx context.Context, username, password string) (api.Session, error)
	Register(ctx context.Context, r api.RegisterRequest) error
	VerifyRegistration(ctx context.Context, email, otp string) error
	VerifyMail(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ChangePassword(ctx context.Context, email, newPassword, confirmPassword string) error

	Fetch(ctx context.Context, filter tasks.StatusFilter) ([]tasks.Task, tasks.Source, error)
	ListTasks(ctx context.Context) ([]tasks.Task, error)
	ListCompletedTasks(ctx context.Context) ([]tasks.Task, error)
	CreateTask(ctx context.Context, t tasks.Task) error
	DeleteTask(ctx context.Context, id int64) error
}

// State is the local persisted state
type State interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	SaveSession(token, username, email string) error
	ClearSession() error
	Entries() ([]database.Entry, error)
	Purge() (int64, error)
}

// ThemeSource is the shared dark-mode preference
type ThemeSource interface {
	Get() bool
	Set(dark bool) error
	Toggle() (bool, error)
}

// Env carries what every command needs
type Env struct {
	Gateway Gateway
	State   State
	Theme   ThemeSource
	In      io.Reader
	Out     io.Writer
	Now     func() time.Time

	reader *bufio.Reader
}

// NewEnv wires the commands to the terminal
func NewEnv(gw Gateway, state State, themes ThemeSource) *Env {
	return &Env{Gateway: gw, State: state, Theme: themes, In: os.Stdin, Out: os.Stdout, Now: time.Now}
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) printf(format string, args ...interface{}) {
	fmt.Fprintf(e.Out, format, args...)
}

// ask prints a prompt and reads one line of input
func (e *Env) ask(prompt string) (string, error) {
	e.printf("%s", prompt)
	if e.reader == nil {
		e.reader = bufio.NewReader(e.In)
	}
	line, err := e.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// secret reads a password without echo when attached to a terminal
func (e *Env) secret(prompt string) (string, error) {
	if f, ok := e.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		e.printf("%s", prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		e.printf("\n")
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		return string(b), nil
	}
	return e.ask(prompt)
}

// confirm asks a y/N question; anything but y or yes declines
func (e *Env) confirm(prompt string) bool {
	answer, err := e.ask(prompt + " (y/N): ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// Friendly converts a command error into the text printed for the user.
// Gateway failures keep their detail in the log.
func Friendly(err error) string {
	var ne *api.NetworkError
	if errors.As(err, &ne) {
		return "Could not reach the TickIT server. Run with -verbose and check the log for details."
	}
	return api.UserMessage(err, err.Error())
}
