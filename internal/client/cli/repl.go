package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for the prompt and REPL-level messages.
var printlnFn = fmt.Println

// execIface is what the REPL needs from App; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
	exec(ctx context.Context, c command, args []string) error
}

// runREPL reads commands line by line and dispatches them through the
// command table until EOF, "exit" or "quit". Command errors have already
// been reported by exec and do not stop the loop.
//
// reader is shared with the prompts commands issue (email, password), so
// lines are read one at a time rather than through a buffering scanner.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	table := make(map[string]command)
	for _, c := range a.commands() {
		table[c.name] = c
	}

	for {
		printlnFn(fmt.Sprintf("fisikaap %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(a.commands(), a.isLoggedIn()))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := table[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if !c.acceptsArgs(len(args)) {
			printlnFn(usageError(c).Error())
			continue
		}
		_ = a.exec(ctx, c, args)

		if ctx.Err() != nil {
			return
		}
	}
}

func helpText(cmds []command, loggedIn bool) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range cmds {
		if c.auth && !loggedIn {
			continue
		}
		fmt.Fprintf(&b, "  %-30s %s\n", c.usage, c.short)
	}
	b.WriteString("  exit | quit")
	return b.String()
}
