// Package nbt reads and writes the game's big-endian named binary tag format.
package nbt

import (
	"encoding/binary"
	"io"
	"math"
)

// NBT tag type IDs.
const (
	TagEnd       byte = 0
	TagByte      byte = 1
	TagShort     byte = 2
	TagInt       byte = 3
	TagLong      byte = 4
	TagFloat     byte = 5
	TagDouble    byte = 6
	TagByteArray byte = 7
	TagString    byte = 8
	TagList      byte = 9
	TagCompound  byte = 10
	TagIntArray  byte = 11
	TagLongArray byte = 12
)

// Writer streams tags to an io.Writer. Errors are sticky: after the first
// failure every call is a no-op and Err reports it.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a new NBT Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered during writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(data []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(data)
}

func (w *Writer) putByte(v byte) {
	w.write([]byte{v})
}

func (w *Writer) putUint16(v uint16) {
	w.write(binary.BigEndian.AppendUint16(nil, v))
}

func (w *Writer) putInt32(v int32) {
	w.write(binary.BigEndian.AppendUint32(nil, uint32(v)))
}

func (w *Writer) putInt64(v int64) {
	w.write(binary.BigEndian.AppendUint64(nil, uint64(v)))
}

func (w *Writer) putString(s string) {
	w.putUint16(uint16(len(s)))
	w.write([]byte(s))
}

func (w *Writer) header(tagType byte, name string) {
	w.putByte(tagType)
	w.putString(name)
}

// BeginCompound opens a named compound. Close it with EndCompound.
func (w *Writer) BeginCompound(name string) {
	w.header(TagCompound, name)
}

// EndCompound closes the innermost compound.
func (w *Writer) EndCompound() {
	w.putByte(TagEnd)
}

// BeginList writes a list header; count unnamed payloads of elemType follow.
func (w *Writer) BeginList(name string, elemType byte, count int32) {
	w.header(TagList, name)
	w.putByte(elemType)
	w.putInt32(count)
}

func (w *Writer) WriteTagByte(name string, v int8) {
	w.header(TagByte, name)
	w.putByte(byte(v))
}

func (w *Writer) WriteShort(name string, v int16) {
	w.header(TagShort, name)
	w.putUint16(uint16(v))
}

func (w *Writer) WriteInt(name string, v int32) {
	w.header(TagInt, name)
	w.putInt32(v)
}

func (w *Writer) WriteLong(name string, v int64) {
	w.header(TagLong, name)
	w.putInt64(v)
}

func (w *Writer) WriteFloat(name string, v float32) {
	w.header(TagFloat, name)
	w.putInt32(int32(math.Float32bits(v)))
}

func (w *Writer) WriteDouble(name string, v float64) {
	w.header(TagDouble, name)
	w.putInt64(int64(math.Float64bits(v)))
}

func (w *Writer) WriteByteArray(name string, v []byte) {
	w.header(TagByteArray, name)
	w.putInt32(int32(len(v)))
	w.write(v)
}

func (w *Writer) WriteString(name string, v string) {
	w.header(TagString, name)
	w.putString(v)
}

func (w *Writer) WriteIntArray(name string, v []int32) {
	w.header(TagIntArray, name)
	w.putInt32(int32(len(v)))
	for _, x := range v {
		w.putInt32(x)
	}
}

func (w *Writer) WriteLongArray(name string, v []int64) {
	w.header(TagLongArray, name)
	w.putInt32(int32(len(v)))
	for _, x := range v {
		w.putInt64(x)
	}
}

// ListInt writes one unnamed int list element.
func (w *Writer) ListInt(v int32) {
	w.putInt32(v)
}

// ListString writes one unnamed string list element.
func (w *Writer) ListString(v string) {
	w.putString(v)
}
