package pool

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer(t *testing.T) {
	bb := NewByteBuffer(4)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 4, bb.Cap())

	_, _ = bb.WriteString("q1 q2")
	_ = bb.WriteByte('\n')
	_, _ = bb.Write([]byte("1 2\n"))
	require.Equal(t, "q1 q2\n1 2\n", string(bb.Bytes()))

	var out bytes.Buffer
	n, err := bb.Flush(&out)
	require.NoError(t, err)
	require.Equal(t, int64(10), n)
	require.Equal(t, "q1 q2\n1 2\n", out.String())
	require.Equal(t, 0, bb.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestByteBuffer_FlushError(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.WriteString("abc")

	_, err := bb.Flush(failingWriter{})
	require.EqualError(t, err, "disk full")
	require.Equal(t, 0, bb.Len())
}

func TestByteBufferPool(t *testing.T) {
	tests := []struct {
		name     string
		grow     int
		retained bool
	}{
		{name: "small buffer is reset", grow: 100, retained: true},
		{name: "oversized buffer is dropped", grow: 2048, retained: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewByteBufferPool(64, 1024)
			bb := p.Get()
			require.NotNil(t, bb)
			require.Equal(t, 0, bb.Len())

			_, _ = bb.Write(make([]byte, tt.grow))
			p.Put(bb)

			if tt.retained {
				require.Equal(t, 0, bb.Len())
			} else {
				require.Equal(t, tt.grow, bb.Len())
			}
		})
	}

	p := NewByteBufferPool(64, 0)
	p.Put(nil)
	require.NotNil(t, p.Get())
}

func TestTableBuffer(t *testing.T) {
	bb := GetTableBuffer()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), TableBufferDefaultSize)

	_, _ = bb.WriteString("x")
	PutTableBuffer(bb)
	require.Equal(t, 0, bb.Len())
}
