package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Seams over x/term so tests never touch a real terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errInvalidAnswer = errors.New("invalid answer")

// readLine returns the next line without surrounding spaces. A last line
// without a newline still counts.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSimpleText prints prompt followed by a "> " marker and reads one line.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

// GetPassword reads a password without echo. When stdin is not a terminal,
// as with piped input, the next line of reader is taken instead.
//
// The caller should wipe the returned slice once done with it.
func GetPassword(reader *bufio.Reader, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := readLine(reader)
		fmt.Fprintln(w)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetYesNo asks a y/n question. An empty answer returns nil so the caller
// can apply its own default; anything but y/yes/n/no is errInvalidAnswer.
func GetYesNo(reader *bufio.Reader, prompt string, w io.Writer) (*bool, error) {
	answer, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return nil, err
	}

	var v bool
	switch strings.ToLower(answer) {
	case "":
		return nil, nil
	case "y", "yes":
		v = true
	case "n", "no":
		v = false
	default:
		return nil, fmt.Errorf("%w %q, expected y or n", errInvalidAnswer, answer)
	}
	return &v, nil
}

// GetMultiline reads lines until an empty one and joins them with '\n'.
// Used for opening descriptions.
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
