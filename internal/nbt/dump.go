package nbt

import (
	"fmt"
	"io"
	"strings"
)

var typeNames = map[byte]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

// TypeName returns the conventional name of a tag type.
func TypeName(t byte) string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TAG_Unknown(%d)", t)
}

// Arrays longer than this are summarized rather than printed.
const dumpArrayLimit = 16

// Dump writes an indented, human readable rendering of t.
func Dump(w io.Writer, t *Tag) error {
	var b strings.Builder
	dump(&b, t, 0, true)
	_, err := io.WriteString(w, b.String())
	return err
}

func dump(b *strings.Builder, t *Tag, depth int, named bool) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(TypeName(t.Type))
	if named {
		fmt.Fprintf(b, "(%q)", t.Name)
	}
	b.WriteString(": ")

	switch v := t.Value.(type) {
	case []*Tag:
		fmt.Fprintf(b, "%d entries\n%s{\n", len(v), indent)
		for _, c := range v {
			dump(b, c, depth+1, true)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *List:
		fmt.Fprintf(b, "%d entries of %s\n%s{\n", len(v.Items), TypeName(v.Elem), indent)
		for _, c := range v.Items {
			dump(b, c, depth+1, false)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case []byte:
		fmt.Fprintf(b, "[%d bytes]%s\n", len(v), preview(v))
	case []int32:
		fmt.Fprintf(b, "[%d ints]%s\n", len(v), preview(v))
	case []int64:
		fmt.Fprintf(b, "[%d longs]%s\n", len(v), preview(v))
	case string:
		fmt.Fprintf(b, "%q\n", v)
	default:
		fmt.Fprintf(b, "%v\n", v)
	}
}

func preview[T any](v []T) string {
	if len(v) > dumpArrayLimit {
		return ""
	}
	return fmt.Sprintf(" %v", v)
}
