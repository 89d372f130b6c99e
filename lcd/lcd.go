// package lcd implements a driver for ST7789 SPI displays, such as
// the round 240x240 and square 180x180 modules used for watch builds.
package lcd

import (
	"fmt"
	"image"
	"image/draw"
	"time"
	"unsafe"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/bcm283x"
	"stepface.dev/image/rgb565"
)

type LCD struct {
	dims      image.Point
	spi       spi.PortCloser
	conn      spi.Conn
	fb        *rgb565.Image
	window    image.Rectangle
	txBuf     []byte
	backlight bool
}

type Config struct {
	// Port is the SPI port name. Empty selects the first port.
	Port string
	Dims image.Point
}

func (l *LCD) Close() {
	if l.spi == nil {
		return
	}
	LCD_BL.Out(gpio.Low)
	l.spi.Close()
	l.spi = nil
	l.conn = nil
}

func Open(cfg Config) (*LCD, error) {
	if cfg.Dims.X <= 0 || cfg.Dims.Y <= 0 {
		return nil, fmt.Errorf("lcd: invalid dimensions %v", cfg.Dims)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("lcd: %w", err)
	}
	p, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("lcd: %w", err)
	}
	c, err := p.Connect(40*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("lcd: %w", err)
	}

	lcd := &LCD{
		dims: cfg.Dims,
		spi:  p,
		conn: c,
		fb:   rgb565.New(image.Rectangle{Max: cfg.Dims}),
	}
	maxTx := 4096
	if lim, ok := c.(conn.Limits); ok {
		maxTx = lim.MaxTxSize()
	}
	lcd.txBuf = make([]byte, maxTx)
	if err := lcd.setup(); err != nil {
		lcd.Close()
		return nil, err
	}
	return lcd, nil
}

var (
	LCD_CS  = bcm283x.GPIO8
	LCD_RST = bcm283x.GPIO27
	LCD_DC  = bcm283x.GPIO25
	LCD_BL  = bcm283x.GPIO24
)

func (l *LCD) sendCommand(cmd byte, data ...byte) error {
	LCD_DC.FastOut(gpio.Low)
	if err := l.conn.Tx([]byte{cmd}, make([]byte, 1)); err != nil {
		return err
	}
	if len(data) > 0 {
		LCD_DC.FastOut(gpio.High)
		if err := l.conn.Tx(data, nil); err != nil {
			return err
		}
	}
	return nil
}

func (l *LCD) setup() error {
	for _, p := range []gpio.PinOut{LCD_CS, LCD_RST, LCD_DC} {
		if err := p.Out(gpio.High); err != nil {
			return fmt.Errorf("lcd: %w", err)
		}
	}

	// Backlight stays off until the first frame.
	LCD_BL.Out(gpio.Low)

	LCD_RST.FastOut(gpio.High)
	time.Sleep(100 * time.Millisecond)
	LCD_RST.FastOut(gpio.Low)
	time.Sleep(100 * time.Millisecond)
	LCD_RST.FastOut(gpio.High)
	time.Sleep(100 * time.Millisecond)

	var cmdErr error
	sendCommand := func(cmd byte, data ...byte) {
		if cmdErr != nil {
			return
		}
		cmdErr = l.sendCommand(cmd, data...)
	}
	sendCommand(0x36 /*MADCTL*/, 0x70 /* MX, MY, RGB mode */)
	sendCommand(0x11 /*SLPOUT*/)
	time.Sleep(120 * time.Millisecond)
	sendCommand(0x3a /*COLMOD*/, 0x05)
	sendCommand(0xb2 /*PORCTRL*/, 0x0c, 0x0c, 0x00, 0x33, 0x33)
	sendCommand(0xb7 /*GCTRL*/, 0x35)
	sendCommand(0xbb /*VCOMS*/, 0x37)
	sendCommand(0xc0 /*LCMCTRL*/, 0x2c)
	sendCommand(0xc2 /*VDVVRHEN*/, 0x01)
	sendCommand(0xc3 /*VRHS*/, 0x12)
	sendCommand(0xc4 /*VDVS*/, 0x20)
	sendCommand(0xc6 /*FRCTRL2*/, 0x0f)
	sendCommand(0xd0 /*PWCTRL1*/, 0xa4, 0xa1)
	sendCommand(0xba /*DGMEN*/, 0x04)
	sendCommand(0x21 /*INVON*/)
	sendCommand(0x29 /*DISPON*/)
	if cmdErr != nil {
		return fmt.Errorf("lcd: SPI command: %w", cmdErr)
	}
	return nil
}

func (l *LCD) Dims() image.Point {
	return l.dims
}

func (l *LCD) Framebuffer() draw.RGBA64Image {
	return l.fb
}

// Dirty sends the framebuffer contents inside sr to the display.
func (l *LCD) Dirty(sr image.Rectangle) error {
	sr = sr.Intersect(l.fb.Bounds())
	if sr.Empty() {
		return nil
	}
	if err := l.setWindow(sr); err != nil {
		return err
	}

	LCD_DC.FastOut(gpio.High)

	n := 0
	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		start := l.fb.PixOffset(sr.Min.X, y)
		row := l.fb.Pix[start : start+sr.Dx()]
		bytes := unsafe.Slice((*byte)(unsafe.Pointer(&row[0])), len(row)*2)
		for len(bytes) > 0 {
			c := copy(l.txBuf[n:], bytes)
			bytes = bytes[c:]
			n += c
			if n == len(l.txBuf) {
				if err := l.conn.Tx(l.txBuf, nil); err != nil {
					return fmt.Errorf("lcd: blit: %w", err)
				}
				n = 0
			}
		}
	}
	if n > 0 {
		if err := l.conn.Tx(l.txBuf[:n], nil); err != nil {
			return fmt.Errorf("lcd: blit: %w", err)
		}
	}

	if !l.backlight {
		LCD_BL.Out(gpio.High)
		l.backlight = true
	}
	return nil
}

func (l *LCD) setWindow(r image.Rectangle) error {
	if l.window == r {
		return nil
	}
	l.window = r

	var cmdErr error
	sendCommand := func(cmd byte, data ...byte) {
		if cmdErr != nil {
			return
		}
		cmdErr = l.sendCommand(cmd, data...)
	}
	sendCommand(0x2a /* CASET */, byte(r.Min.X>>8), byte(r.Min.X), byte((r.Max.X-1)>>8), byte((r.Max.X)-1))
	sendCommand(0x2b /* RASET */, byte(r.Min.Y>>8), byte(r.Min.Y), byte((r.Max.Y-1)>>8), byte((r.Max.Y)-1))
	sendCommand(0x2c /* RAMWR */)
	return cmdErr
}
