package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ask prints prompt and returns the next input line with surrounding
// whitespace removed. A final line without a newline is still returned;
// io.EOF is only reported when no more input exists.
func (s *Session) ask(prompt string) (string, error) {
	s.printf("%s", prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askYesNo re-prompts until the answer is yes/y or no/n.
func (s *Session) askYesNo(prompt string) (bool, error) {
	for {
		answer, err := s.ask(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		s.fail("Please enter 'yes' or 'no'.\n\n")
	}
}

// confirm asks once; anything other than yes/y counts as no.
func (s *Session) confirm(prompt string) (bool, error) {
	answer, err := s.ask(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true, nil
	}
	return false, nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) ok(format string, args ...any) {
	s.printf("%s", s.palette.Good.Sprintf("✓ "+format, args...))
}

func (s *Session) fail(format string, args ...any) {
	s.printf("%s", s.palette.Bad.Sprintf("❌ "+format, args...))
}

func capitalize(msg string) string {
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
