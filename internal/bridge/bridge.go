// Package bridge streams composition output to another process as length
// prefixed frames. A frame is a one byte kind, a big-endian uint32 length and
// the UTF-8 payload.
package bridge

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	// KindCommit carries a finished sentence.
	KindCommit byte = 'T'
	// KindPreedit carries the full in-progress text; it replaces the previous one.
	KindPreedit byte = 'P'
)

// maxPayload bounds what a reader accepts for a single frame.
const maxPayload = 1 << 20

var ErrUnknownFrame = errors.New("unknown frame kind")

type Frame struct {
	Kind byte
	Text string
}

type Client struct {
	mu sync.Mutex
	w  io.Writer
	c  io.Closer
	// last preedit sent, to skip repeats
	preedit string
}

func NewClient(w io.Writer) *Client {
	c := &Client{w: w}
	if closer, ok := w.(io.Closer); ok {
		c.c = closer
	}
	return c
}

// Open appends frames to path, creating it when missing. A named pipe works
// as well as a regular file.
func Open(path string) (*Client, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open bridge %s: %w", path, err)
	}
	return NewClient(f), nil
}

func (c *Client) Close() error {
	if c == nil || c.c == nil {
		return nil
	}
	err := c.c.Close()
	c.c = nil
	c.w = nil
	return err
}

// Commit sends a finished sentence. Empty text is dropped.
func (c *Client) Commit(text string) error {
	if c == nil || text == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preedit = ""
	return c.write(KindCommit, text)
}

// Preedit sends the in-progress text when it differs from the last one sent.
func (c *Client) Preedit(text string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if text == c.preedit {
		return nil
	}
	c.preedit = text
	return c.write(KindPreedit, text)
}

func (c *Client) write(kind byte, text string) error {
	if c.w == nil {
		return os.ErrClosed
	}
	frame := make([]byte, 5, 5+len(text))
	frame[0] = kind
	binary.BigEndian.PutUint32(frame[1:], uint32(len(text)))
	frame = append(frame, text...)
	_, err := c.w.Write(frame)
	return err
}

type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next frame, or io.EOF at a clean end of stream.
func (r *Reader) Next() (Frame, error) {
	kind, err := r.r.ReadByte()
	if err != nil {
		return Frame{}, err
	}
	if kind != KindCommit && kind != KindPreedit {
		return Frame{}, fmt.Errorf("frame %q: %w", kind, ErrUnknownFrame)
	}
	var header [4]byte
	if _, err := io.ReadFull(r.r, header[:]); err != nil {
		return Frame{}, fmt.Errorf("frame %q length: %w", kind, err)
	}
	length := binary.BigEndian.Uint32(header[:])
	if length > maxPayload {
		return Frame{}, fmt.Errorf("frame %q: payload of %d bytes too large", kind, length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return Frame{}, fmt.Errorf("frame %q payload: %w", kind, err)
	}
	return Frame{Kind: kind, Text: string(buf)}, nil
}
