// package stepserial reads step samples from a wrist sensor attached
// over a serial line. The sensor streams a sequence of CBOR encoded
// samples.
package stepserial

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/tarm/serial"
)

// Sample is the steps counted by the sensor since its previous sample.
type Sample struct {
	// Time is the sample time in Unix seconds.
	Time  int64  `cbor:"1,keyasint"`
	Steps uint32 `cbor:"2,keyasint"`
}

type Recorder interface {
	Record(t time.Time, n uint32) error
}

var decMode cbor.DecMode

func init() {
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	decMode = dm
}

func Open(dev string) (io.ReadWriteCloser, error) {
	const baudRate = 115200

	var devices []string
	if dev != "" {
		devices = append(devices, dev)
	} else {
		switch runtime.GOOS {
		case "windows":
			devices = append(devices, "COM3")
		case "linux":
			devices = append(devices, "/dev/ttyUSB0", "/dev/ttyACM0")
		}
	}
	if len(devices) == 0 {
		return nil, errors.New("stepserial: no device specified")
	}
	var firstErr error
	for _, dev := range devices {
		c := &serial.Config{Name: dev, Baud: baudRate}
		s, err := serial.OpenPort(c)
		if err == nil {
			return s, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("stepserial: %w", firstErr)
}

// Copy decodes samples from r and records them until r is exhausted.
// A clean end of stream returns nil.
func Copy(rec Recorder, r io.Reader) error {
	dec := decMode.NewDecoder(r)
	for {
		var s Sample
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("stepserial: decode: %w", err)
		}
		if err := rec.Record(time.Unix(s.Time, 0), s.Steps); err != nil {
			return err
		}
	}
}
