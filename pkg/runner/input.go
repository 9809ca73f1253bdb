package runner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

type inputResult struct {
	text string
	err  error
}

// lineReader reads lines in a background goroutine so a blocked read never
// prevents the caller from observing context cancellation.
type lineReader struct {
	reader    *bufio.Reader
	inputChan chan inputResult
	done      chan struct{}
	exited    chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		reader: bufio.NewReader(r),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

func (l *lineReader) pump() {
	defer close(l.exited)
	defer close(l.inputChan)
	for {
		text, err := l.reader.ReadString('\n')

		// A last line without newline is still delivered.
		if text != "" && !l.send(inputResult{text: text}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				l.send(inputResult{err: err})
			}
			return
		}
	}
}

// send hands res to ReadLine, giving up once the reader is closed.
func (l *lineReader) send(res inputResult) bool {
	select {
	case l.inputChan <- res:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the pump. A read already blocked in the underlying reader
// ends when that reader returns.
func (l *lineReader) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

// ReadLine returns the next line without its trailing whitespace.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	l.startOnce.Do(func() {
		l.inputChan = make(chan inputResult)
		go l.pump()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-l.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}
