package ir

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

func TestPulses_StringAndParse(t *testing.T) {
	p := Pulses{CarrierFrequency: 38000}
	p.Item(9100, 4500)
	p.Item(600, 1700)
	p.Item(600, 0)

	assert.Equal(t, "38000 9100 -4500 600 -1700 600", p.String())

	parsed, err := ParsePulses(" " + p.String() + "\r")
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestParsePulses_Malformed(t *testing.T) {
	for _, line := range []string{"", "abc 1 2", "38000 1 x"} {
		_, err := ParsePulses(line)
		assert.True(t, errors.Is(err, ErrMalformed), line)
	}
}

func TestReader(t *testing.T) {
	r := NewReader([]int32{9000, -4600, 620, -1650, 580, -590, 610})

	assert.False(t, r.ExpectItem(600, 600))
	assert.Equal(t, int32(9000), r.Peek(0))

	assert.True(t, r.ExpectItem(9100, 4500))
	assert.False(t, r.ExpectItem(600, 600))
	assert.True(t, r.ExpectItem(600, 1700))
	assert.True(t, r.ExpectItem(600, 600))
	assert.False(t, r.PeekSpace(600, 0))
	assert.True(t, r.ExpectMark(600))
	assert.Equal(t, int32(0), r.Peek(0))
	assert.False(t, r.ExpectMark(600))
}

func TestReader_Tolerance(t *testing.T) {
	r := NewReader([]int32{750, 751})

	assert.True(t, r.PeekMark(600, 0))
	assert.False(t, r.PeekMark(600, 1))

	r.Tolerance = 50
	assert.True(t, r.PeekMark(600, 1))
}

type fakePort struct {
	serial.Port

	reads   [][]byte
	written bytes.Buffer
	closed  bool
}

func (p *fakePort) SetReadTimeout(time.Duration) error {
	return nil
}

func (p *fakePort) Read(buff []byte) (int, error) {
	if len(p.reads) == 0 {
		return 0, io.EOF
	}
	chunk := p.reads[0]
	p.reads = p.reads[1:]
	return copy(buff, chunk), nil
}

func (p *fakePort) Write(data []byte) (int, error) {
	return p.written.Write(data)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func newFakeTransceiver(port *fakePort) *SerialTransceiver {
	tr := NewSerialTransceiver("/dev/null", 115200)
	tr.open = func(string, *serial.Mode) (serial.Port, error) {
		return port, nil
	}
	return tr
}

func TestSerialTransceiver_Transmit(t *testing.T) {
	port := &fakePort{}
	tr := newFakeTransceiver(port)

	p := Pulses{CarrierFrequency: 38000}
	p.Item(9100, 4500)

	require.NoError(t, tr.Transmit(context.Background(), p))
	assert.Equal(t, "38000 9100 -4500\n", port.written.String())

	require.NoError(t, tr.Close())
	assert.True(t, port.closed)
}

func TestSerialTransceiver_TransmitCancelled(t *testing.T) {
	tr := newFakeTransceiver(&fakePort{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, tr.Transmit(ctx, Pulses{}), context.Canceled)
}

func TestSerialTransceiver_Receive(t *testing.T) {
	port := &fakePort{reads: [][]byte{
		[]byte("38000 9100 -45"),
		[]byte("00\n\ngarbage\n38000 600"),
		{},
		[]byte(" -600\n"),
	}}
	tr := newFakeTransceiver(port)

	var received []Pulses
	err := tr.Receive(context.Background(), func(p Pulses) {
		received = append(received, p)
	})

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, received, 2)
	assert.Equal(t, []int32{9100, -4500}, received[0].Durations)
	assert.Equal(t, []int32{600, -600}, received[1].Durations)
	assert.True(t, port.closed)
}

func TestSerialTransceiver_OpenError(t *testing.T) {
	tr := NewSerialTransceiver("/dev/null", 9600)
	tr.open = func(string, *serial.Mode) (serial.Port, error) {
		return nil, errors.New("busy")
	}

	err := tr.Transmit(context.Background(), Pulses{})
	assert.ErrorContains(t, err, "busy")
}
