package ir

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.bug.st/serial"
)

const readTimeout = 500 * time.Millisecond

// SerialTransceiver talks to a serial-attached IR transceiver exchanging one
// pulse line per signal.
type SerialTransceiver struct {
	portName string
	mode     *serial.Mode
	open     func(string, *serial.Mode) (serial.Port, error)

	mutex sync.Mutex
	port  serial.Port
}

func NewSerialTransceiver(portName string, baudRate int) *SerialTransceiver {
	return &SerialTransceiver{
		portName: portName,
		mode:     &serial.Mode{BaudRate: baudRate},
		open:     serial.Open,
	}
}

func (t *SerialTransceiver) connect() (serial.Port, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.port != nil {
		return t.port, nil
	}

	port, err := t.open(t.portName, t.mode)
	if err != nil {
		return nil, fmt.Errorf("opening %v: %w", t.portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("setting read timeout: %w", err)
	}

	t.port = port
	return port, nil
}

func (t *SerialTransceiver) Transmit(ctx context.Context, p Pulses) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	port, err := t.connect()
	if err != nil {
		return err
	}

	line := []byte(p.String() + "\n")

	t.mutex.Lock()
	defer t.mutex.Unlock()

	n, err := port.Write(line)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("nothing written")
	}

	return nil
}

func (t *SerialTransceiver) Receive(ctx context.Context, handler func(Pulses)) error {
	port, err := t.connect()
	if err != nil {
		return err
	}

	var pending []byte
	buff := make([]byte, 256)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := port.Read(buff)
		if err != nil {
			t.reset()
			return err
		}
		if n == 0 {
			continue
		}

		pending = append(pending, buff[:n]...)

		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}

			line := bytes.TrimSpace(pending[:i])
			pending = pending[i+1:]
			if len(line) == 0 {
				continue
			}

			p, err := ParsePulses(string(line))
			if err != nil {
				log.Printf("Ignoring received line: %v", err)
				continue
			}

			handler(p)
		}
	}
}

func (t *SerialTransceiver) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.port == nil {
		return nil
	}

	err := t.port.Close()
	t.port = nil
	return err
}

func (t *SerialTransceiver) reset() {
	if err := t.Close(); err != nil {
		log.Printf("Closing %v failed: %v", t.portName, err)
	}
}
