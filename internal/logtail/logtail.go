package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A maxLines
// of zero or less returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed log line.
type Entry struct {
	Time    string
	Level   string
	Message string
	Attrs   string
	Raw     string
}

// MessageWidth is the padded message column the log handler writes.
const MessageWidth = 40

// levelWidth is the padded level column ("WARN ", "ERROR").
const levelWidth = 5

// Parse splits a line of the form "[TIME] LEVEL message k=v ...", where the
// level is padded to five columns and the message to MessageWidth. Lines that
// do not match come back with only Raw and Message set.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Message: line}
	if !strings.HasPrefix(line, "[") {
		return entry
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return entry
	}
	rest := line[end+2:]
	if len(rest) < levelWidth {
		return entry
	}
	level := strings.TrimRight(rest[:levelWidth], " ")
	if !knownLevel(level) {
		return entry
	}

	entry.Time = line[1:end]
	entry.Level = level
	rest = strings.TrimPrefix(rest[levelWidth:], " ")
	msg, attrs := splitMessage(rest)
	entry.Message = strings.TrimRight(msg, " ")
	entry.Attrs = strings.TrimSpace(attrs)
	return entry
}

// splitMessage cuts s after MessageWidth runes, the width the handler pads
// to. Shorter input is all message.
func splitMessage(s string) (string, string) {
	n := 0
	for i := range s {
		if n == MessageWidth {
			return s[:i], s[i:]
		}
		n++
	}
	return s, ""
}

func knownLevel(level string) bool {
	switch level {
	case "DEBUG", "INFO", "WARN", "ERROR":
		return true
	default:
		return false
	}
}
