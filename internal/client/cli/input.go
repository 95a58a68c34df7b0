package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/volatiletech/null/v8"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errUnterminatedQuote = errors.New("unterminated quote")

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo.
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline reads lines until an empty one and joins them with '\n'.
// Used for long association texts.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// splitArgs splits a command line on blanks. Double quotes group words and
// are removed.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, errUnterminatedQuote
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}

// parseKeyValues reads "key=value" arguments. Keys are lower-cased;
// arguments without '=' are returned in bare.
func parseKeyValues(args []string) (values map[string]string, bare []string) {
	values = make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			bare = append(bare, a)
			continue
		}
		values[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return values, bare
}

func parseID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", common.ErrValidation, s)
	}
	return n, nil
}

// parseIDs reads a comma separated id list. An empty string is an empty list.
func parseIDs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := parseID(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "1", "true", "on":
		return true, nil
	case "n", "no", "0", "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a yes/no value", common.ErrValidation, s)
}

// nullString maps an empty value to null.
func nullString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func nullInt(s string) (null.Int, error) {
	if s == "" {
		return null.Int{}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return null.Int{}, fmt.Errorf("%w: %q is not a number", common.ErrValidation, s)
	}
	return null.IntFrom(n), nil
}

func nullInt64(s string) (null.Int64, error) {
	if s == "" {
		return null.Int64{}, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return null.Int64{}, fmt.Errorf("%w: %q is not a number", common.ErrValidation, s)
	}
	return null.Int64From(n), nil
}
