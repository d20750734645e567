package vos

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullIO(t *testing.T) {
	null := NewNullIO()

	n, err := null.Stdout().Write([]byte("discarded"))
	assert.Nil(t, err)
	assert.Equal(t, 9, n)

	_, err = null.Stdin().Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err)
}

func TestVIOAdapterWrapsWriters(t *testing.T) {
	out := &bytes.Buffer{}
	vio := NewVIOAdapter(bytes.NewBufferString("in"), out, nil)

	_, err := io.WriteString(vio.Stdout(), "hello")
	assert.Nil(t, err)
	assert.Nil(t, vio.Stdout().Close())
	assert.Equal(t, "hello", out.String())

	in, err := io.ReadAll(vio.Stdin())
	assert.Nil(t, err)
	assert.Equal(t, "in", string(in))
}

func TestFile(t *testing.T) {
	fd, ok := File(NewOSIO().Stdout())
	assert.True(t, ok)
	assert.Equal(t, os.Stdout, fd)

	_, ok = File(NewVIOAdapter(nil, &bytes.Buffer{}, nil).Stdout())
	assert.False(t, ok)

	var nilFile *os.File
	_, ok = File(nilFile)
	assert.False(t, ok)
}
