package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReader_ReadLine(t *testing.T) {
	r := NewReader(strings.NewReader("  hello world  \nsecond\n"))
	ctx := context.Background()

	line, err := r.ReadLine(ctx)
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if line != "hello world" {
		t.Errorf("ReadLine() = %q, want %q", line, "hello world")
	}

	line, err = r.ReadLine(ctx)
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if line != "second" {
		t.Errorf("ReadLine() = %q, want %q", line, "second")
	}
}

func TestReader_ReadLineLastLineWithoutNewline(t *testing.T) {
	r := NewReader(strings.NewReader("no newline"))

	line, err := r.ReadLine(context.Background())
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if line != "no newline" {
		t.Errorf("ReadLine() = %q, want %q", line, "no newline")
	}
}

func TestReader_CancelledContext(t *testing.T) {
	// A reader that never produces data.
	blocked, w := newBlockedPipe(t)
	defer w.close()

	r := NewReader(blocked)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.ReadLine(ctx)
	if !errors.Is(err, ErrInputCancelled) {
		t.Errorf("ReadLine() error = %v, want ErrInputCancelled", err)
	}
}

type blockedPipe struct {
	ch chan struct{}
}

type pipeCloser struct{ ch chan struct{} }

func (p *blockedPipe) Read([]byte) (int, error) {
	<-p.ch
	return 0, errors.New("closed")
}

func (c *pipeCloser) close() { close(c.ch) }

func newBlockedPipe(_ *testing.T) (*blockedPipe, *pipeCloser) {
	ch := make(chan struct{})
	return &blockedPipe{ch: ch}, &pipeCloser{ch: ch}
}
