package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/client"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/session"
)

// command is one entry of the table shared by cobra and the REPL.
type command struct {
	name    string
	usage   string
	short   string
	minArgs int
	maxArgs int // -1 = unbounded
	auth    bool
	run     func(ctx context.Context, args []string) error
}

func (c command) acceptsArgs(n int) bool {
	return n >= c.minArgs && (c.maxArgs < 0 || n <= c.maxArgs)
}

func (a *App) commands() []command {
	return []command{
		{name: "login", usage: "login [email]", short: "Sign in", maxArgs: 1, run: a.Login},
		{name: "register", usage: "register", short: "Create an account", run: a.Register},
		{name: "logout", usage: "logout", short: "Sign out", run: a.Logout},
		{name: "whoami", usage: "whoami", short: "Show the signed-in user", auth: true, run: a.WhoAmI},
		{name: "refresh", usage: "refresh", short: "Reload your profile from the server", auth: true, run: a.Refresh},
		{name: "health", usage: "health", short: "Check that the server is reachable", run: a.Health},
		{name: "topics", usage: "topics", short: "List topics", run: a.Topics},
		{name: "topic", usage: "topic <slug>", short: "Show one topic", minArgs: 1, maxArgs: 1, run: a.Topic},
		{name: "questions", usage: "questions <slug>", short: "List the questions of a topic", minArgs: 1, maxArgs: 1, run: a.Questions},
		{name: "simulations", usage: "simulations", short: "List topics with a simulation", run: a.Simulations},
		{name: "simulate", usage: "simulate <slug>", short: "Get a simulation question", minArgs: 1, maxArgs: 1, auth: true, run: a.Simulate},
		{name: "submit", usage: "submit <questionID> <answer>", short: "Answer a simulation question", minArgs: 2, maxArgs: -1, auth: true, run: a.Submit},
		{name: "achievements", usage: "achievements [mine]", short: "List achievements", maxArgs: 1, run: a.Achievements},
		{name: "challenges", usage: "challenges", short: "List challenges", run: a.Challenges},
		{name: "daily", usage: "daily", short: "Show today's challenge", run: a.Daily},
		{name: "progress", usage: "progress", short: "Show your progress per topic", auth: true, run: a.Progress},
		{name: "attempts", usage: "attempts", short: "Show your answer history", auth: true, run: a.Attempts},
	}
}

// exec runs c and reports its failure to the user. A session the server
// no longer accepts is torn down locally too.
func (a *App) exec(ctx context.Context, c command, args []string) error {
	if c.auth && !a.isLoggedIn() {
		a.println(msgNotLoggedIn)
		return session.ErrNotAuthenticated
	}

	err := c.run(ctx, args)
	if err == nil {
		return nil
	}

	if client.IsSessionExpired(err) && c.name != "login" && c.name != "register" {
		a.session.Logout(ctx)
		if ferr := a.catalog.Forget(ctx); ferr != nil {
			a.logger.Warn(ctx, "dropping cached pages failed", "error", ferr)
		}
	}

	a.println(describeError(err))
	var re *rejectedError
	if errors.As(err, &re) {
		for _, line := range fieldErrorLines(re.fields) {
			a.println(line)
		}
	}
	a.logger.Debug(ctx, "command failed", "command", c.name, "error", err)
	return err
}

func usageError(c command) error {
	return fmt.Errorf("usage: %s", c.usage)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
