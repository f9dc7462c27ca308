package xmltree

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Write serializes root as indented XML with a declaration header.
func Write(w io.Writer, root *Element) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(xml.Header); err != nil {
		return fmt.Errorf("writing xml header: %w", err)
	}

	writeElement(bw, root, 0)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing xml: %w", err)
	}

	return nil
}

// String renders e (without header) as indented XML.
func (e *Element) String() string {
	var sb strings.Builder

	bw := bufio.NewWriter(&sb)
	writeElement(bw, e, 0)
	_ = bw.Flush()

	return sb.String()
}

func writeElement(w *bufio.Writer, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)

	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(e.Name)

	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		_ = xml.EscapeText(w, []byte(a.Value))
		w.WriteByte('"')
	}

	switch {
	case len(e.Children) == 0 && e.Text == "":
		w.WriteString(" />\n")
	case len(e.Children) == 0:
		w.WriteByte('>')
		_ = xml.EscapeText(w, []byte(e.Text))
		w.WriteString("</" + e.Name + ">\n")
	default:
		w.WriteString(">\n")

		for _, c := range e.Children {
			writeElement(w, c, depth+1)
		}

		w.WriteString(indent + "</" + e.Name + ">\n")
	}
}
