package listener

import (
	"bytes"
	"io"
	"testing"

	"github.com/pixil98/go-testutil"
)

// scriptedConn serves one scripted chunk per Read call, so tests can
// split line endings across read boundaries.
type scriptedConn struct {
	chunks []string
	out    bytes.Buffer
}

func (s *scriptedConn) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.chunks[0])
	s.chunks[0] = s.chunks[0][n:]
	if s.chunks[0] == "" {
		s.chunks = s.chunks[1:]
	}
	return n, nil
}

func (s *scriptedConn) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func TestLineEndings_Read(t *testing.T) {
	tests := map[string]struct {
		chunks []string
		want   string
	}{
		"crlf": {
			chunks: []string{"look\r\n"},
			want:   "look\n",
		},
		"bare cr": {
			chunks: []string{"look\r"},
			want:   "look\n",
		},
		"plain lf": {
			chunks: []string{"help\n"},
			want:   "help\n",
		},
		"pair split across reads": {
			chunks: []string{"till 2,3\r", "\nlook\r\n"},
			want:   "till 2,3\nlook\n",
		},
		"pair split then nothing": {
			chunks: []string{"ok\r", "\n"},
			want:   "ok\n",
		},
		"cr then fresh line": {
			chunks: []string{"warp 3\r", "quit\r\n"},
			want:   "warp 3\nquit\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rw := newCRLFReadWriter(&scriptedConn{chunks: tt.chunks})

			var got bytes.Buffer
			buf := make([]byte, 64)
			for {
				n, err := rw.Read(buf)
				got.Write(buf[:n])
				if err != nil {
					break
				}
			}

			testutil.AssertEqual(t, "normalised", got.String(), tt.want)
		})
	}
}

func TestLineEndings_Write(t *testing.T) {
	conn := &scriptedConn{}
	rw := newCRLFReadWriter(conn)

	msg := "a row\nof text\n"
	n, err := rw.Write([]byte(msg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "reported length", n, len(msg))
	testutil.AssertEqual(t, "wire bytes", conn.out.String(), "a row\r\nof text\r\n")
}
