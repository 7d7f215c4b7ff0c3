package nbt

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/gzip"
)

// Limits applied while decoding untrusted input.
const (
	maxDepth  = 512
	maxLength = 1 << 26
)

var ErrFormat = errors.New("malformed nbt")

// Tag is one decoded tag. Value holds int8, int16, int32, int64, float32,
// float64, []byte, string, []int32, []int64, []*Tag (compound children,
// in file order) or *List.
type Tag struct {
	Type  byte
	Name  string
	Value any
}

// List is the payload of a list tag. Items are unnamed.
type List struct {
	Elem  byte
	Items []*Tag
}

// Get returns the named child of a compound tag, or nil.
func (t *Tag) Get(name string) *Tag {
	children, ok := t.Value.([]*Tag)
	if !ok {
		return nil
	}
	for _, c := range children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Read decodes one root tag from r. Gzip input is detected and decompressed.
func Read(r io.Reader) (*Tag, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	var src io.Reader = br
	if bytes.Equal(magic, []byte{0x1f, 0x8b}) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		defer zr.Close()
		src = bufio.NewReader(zr)
	}

	d := &decoder{r: src}
	typ := d.byte()
	if d.err == nil && typ == TagEnd {
		return nil, fmt.Errorf("%w: empty root", ErrFormat)
	}
	t := &Tag{Type: typ, Name: d.string()}
	t.Value = d.payload(typ, 0)
	if d.err != nil {
		return nil, d.err
	}
	return t, nil
}

type decoder struct {
	r   io.Reader
	err error
	buf [8]byte
}

func (d *decoder) fail(err error) {
	if d.err != nil {
		return
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = fmt.Errorf("%w: unexpected end of data", ErrFormat)
	}
	d.err = err
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		d.fail(err)
	}
	return d.buf[:n]
}

func (d *decoder) byte() byte     { return d.read(1)[0] }
func (d *decoder) uint16() uint16 { return binary.BigEndian.Uint16(d.read(2)) }
func (d *decoder) int32() int32   { return int32(binary.BigEndian.Uint32(d.read(4))) }
func (d *decoder) int64() int64   { return int64(binary.BigEndian.Uint64(d.read(8))) }

func (d *decoder) length() int {
	n := d.int32()
	if d.err == nil && (n < 0 || n > maxLength) {
		d.fail(fmt.Errorf("%w: length %d", ErrFormat, n))
	}
	if d.err != nil {
		return 0
	}
	return int(n)
}

func (d *decoder) bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		d.fail(err)
	}
	return b
}

func (d *decoder) string() string {
	n := d.uint16()
	return string(d.bytes(int(n)))
}

func (d *decoder) payload(typ byte, depth int) any {
	if depth > maxDepth {
		d.fail(fmt.Errorf("%w: nesting deeper than %d", ErrFormat, maxDepth))
		return nil
	}
	switch typ {
	case TagByte:
		return int8(d.byte())
	case TagShort:
		return int16(d.uint16())
	case TagInt:
		return d.int32()
	case TagLong:
		return d.int64()
	case TagFloat:
		return math.Float32frombits(uint32(d.int32()))
	case TagDouble:
		return math.Float64frombits(uint64(d.int64()))
	case TagByteArray:
		return d.bytes(d.length())
	case TagString:
		return d.string()
	case TagIntArray:
		n := d.length()
		v := make([]int32, 0, min(n, 1024))
		for i := 0; i < n && d.err == nil; i++ {
			v = append(v, d.int32())
		}
		return v
	case TagLongArray:
		n := d.length()
		v := make([]int64, 0, min(n, 1024))
		for i := 0; i < n && d.err == nil; i++ {
			v = append(v, d.int64())
		}
		return v
	case TagList:
		l := &List{Elem: d.byte()}
		n := d.length()
		if d.err == nil && n > 0 && l.Elem == TagEnd {
			d.fail(fmt.Errorf("%w: non-empty list of end tags", ErrFormat))
		}
		for i := 0; i < n && d.err == nil; i++ {
			l.Items = append(l.Items, &Tag{Type: l.Elem, Value: d.payload(l.Elem, depth+1)})
		}
		return l
	case TagCompound:
		var children []*Tag
		for d.err == nil {
			ct := d.byte()
			if d.err != nil || ct == TagEnd {
				break
			}
			c := &Tag{Type: ct, Name: d.string()}
			c.Value = d.payload(ct, depth+1)
			children = append(children, c)
		}
		return children
	default:
		d.fail(fmt.Errorf("%w: unknown tag type %d", ErrFormat, typ))
		return nil
	}
}
