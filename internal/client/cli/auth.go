package cli

import (
	"context"
	"sort"
	"strings"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/session"
	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login signs in with the email given as the first argument (prompted when
// absent) and a password read without echo.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, 0, "Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if !res.OK {
		return rejected("Login", res)
	}

	a.printf("Welcome back, %s!\n", a.userName())
	return nil
}

// Register creates an account and signs it in.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	res, err := a.session.Register(ctx, models.RegisterRequest{
		Name:                 name,
		Email:                email,
		Password:             string(password),
		PasswordConfirmation: string(confirmation),
	})
	if err != nil {
		return err
	}
	if !res.OK {
		return rejected("Registration", res)
	}

	a.printf("Account created. Welcome, %s!\n", a.userName())
	return nil
}

func rejected(op string, res session.AuthResult) error {
	reason := res.Message
	if reason == "" {
		reason = "Invalid credentials"
	}
	return &rejectedError{op: op, reason: reason, fields: res.FieldErrors}
}

// Logout always succeeds locally; cached catalog pages are dropped too.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.session.Logout(ctx)
	if err := a.catalog.Forget(ctx); err != nil {
		a.logger.Warn(ctx, "dropping cached pages failed", "error", err)
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	u := a.session.State().User
	if u == nil {
		return session.ErrNotAuthenticated
	}
	a.printf("%s <%s>\n", u.Name, u.Email)
	a.printf("Level %d, %d XP, streak %d (best %d)\n", u.Level, u.TotalXP, u.CurrentStreak, u.LongestStreak)
	return nil
}

func (a *App) Refresh(ctx context.Context, args []string) error {
	if err := a.session.Refresh(ctx); err != nil {
		return err
	}
	return a.WhoAmI(ctx, args)
}

func (a *App) Health(ctx context.Context, _ []string) error {
	if a.watcher == nil || !a.watcher.Check(ctx) {
		a.println("Server: offline")
		return nil
	}
	a.println("Server: online")
	return nil
}

func (a *App) userName() string {
	if u := a.session.State().User; u != nil {
		return u.Name
	}
	return ""
}

func (a *App) argOrPrompt(args []string, i int, prompt string) (string, error) {
	if len(args) > i && args[i] != "" {
		return args[i], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// fieldErrorLines flattens validation errors, fields in sorted order.
func fieldErrorLines(fields map[string][]string) []string {
	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, f)
	}
	sort.Strings(names)

	var lines []string
	for _, f := range names {
		for _, msg := range fields[f] {
			lines = append(lines, "  "+f+": "+strings.TrimSpace(msg))
		}
	}
	return lines
}
