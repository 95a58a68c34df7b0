package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a stub.
type execIface interface {
	help() string
	exec(ctx context.Context, cmd string, args []string) error
}

// runREPL reads one command per line from reader and dispatches it.
//
// The first word is the command, the rest its arguments; double quotes group
// words. Command errors are printed with their notification category and
// never stop the loop. The loop exits on EOF or on "exit" / "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("plana %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts, perr := splitArgs(strings.TrimSpace(line))
		if perr != nil {
			printlnFn("error:", perr)
			continue
		}
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			printlnFn(a.help())
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			if xerr := a.exec(ctx, cmd, parts[1:]); xerr != nil {
				printlnFn(fmt.Sprintf("[%s] %v", services.Notification(xerr), xerr))
			}
		}

		if err != nil {
			return
		}
	}
}
