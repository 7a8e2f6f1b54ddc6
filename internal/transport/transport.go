// Package transport provides the byte-stream abstraction used by the
// register interface and burst codec to talk to an Epson sensing device.
// The only production implementation is a UART serial port; tests provide
// scripted replacements.
package transport

import "fmt"

// Error is the failure type for all transport I/O. Timeout distinguishes a
// read underrun from a hard port failure: a timeout means the device did not
// deliver the expected bytes in time, a non-timeout error means the port
// itself is unusable and should be closed.
type Error struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transport: %s: timeout: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transport is a synchronous request/response byte stream. Implementations
// are not safe for concurrent use; the device engine serializes all access.
type Transport interface {
	// Write sends the bytes in one piece.
	Write(p []byte) error
	// Read returns exactly n bytes, or a *Error with Timeout set when the
	// device delivers fewer bytes within the port read timeout.
	Read(n int) ([]byte, error)
	// InWaiting reports the number of bytes pending in the receive buffer.
	InWaiting() (int, error)
	// ResetInput discards all pending receive data.
	ResetInput() error
	// Close releases the port. Safe to call more than once.
	Close() error
}

// FindDelimiter consumes pending receive bytes one at a time until delim is
// seen, restoring frame alignment after a malformed burst. It gives up after
// ntries bytes so a silent device cannot hang the caller.
func FindDelimiter(t Transport, delim byte, ntries int) error {
	for try := 0; try < ntries; try++ {
		n, err := t.InWaiting()
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		b, err := t.Read(1)
		if err != nil {
			return err
		}
		if b[0] == delim {
			return nil
		}
	}
	return &Error{Op: "find delimiter", Err: fmt.Errorf("no delimiter after %d bytes", ntries)}
}
