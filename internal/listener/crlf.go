package listener

import (
	"bytes"
	"io"
)

// lineEndings hides a transport's line ending convention from the
// console: reads normalise \r\n and bare \r to \n, writes expand \n to
// \r\n. Telnet requires CRLF on the wire and ssh clients in cooked mode
// send it too, while the console itself only ever speaks \n.
type lineEndings struct {
	rw    io.ReadWriter
	sawCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineEndings{rw: rw}
}

func (c *lineEndings) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n == 0 {
		return n, err
	}

	buf := p[:n]

	// A \r\n pair can straddle two reads. The \r was already delivered
	// as \n, so a leading \n here is the tail of that pair.
	if c.sawCR && buf[0] == '\n' {
		buf = buf[1:]
	}
	c.sawCR = p[n-1] == '\r'

	buf = bytes.ReplaceAll(buf, []byte("\r\n"), []byte("\n"))
	buf = bytes.ReplaceAll(buf, []byte("\r"), []byte("\n"))

	return copy(p, buf), err
}

func (c *lineEndings) Write(p []byte) (int, error) {
	converted := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(converted)
	// Return the original length so callers are not confused by the size change
	return len(p), err
}
