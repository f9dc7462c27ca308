package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Parse builds an element tree from XML input, recording the line on
// which each start tag ends. Namespaces are dropped; only local names are kept.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)

	var stack []*Element

	var root *Element

	rootClosed := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}

			line, _ := decoder.InputPos()
			elem := &Element{Name: t.Name.Local, Line: line}

			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}

				elem.Attrs = append(elem.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}

			if len(stack) > 0 {
				stack[len(stack)-1].AppendChild(elem)
			} else {
				root = elem
			}

			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Text = strings.TrimSpace(top.Text)
				stack = stack[:len(stack)-1]

				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimFunc(string(t), isIgnorable) != "" {
					return nil, errors.New("unexpected character data outside root element")
				}

				continue
			}

			stack[len(stack)-1].Text += string(t)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing xml: %w", io.ErrUnexpectedEOF)
	}

	if !rootClosed {
		return nil, fmt.Errorf("parsing xml: element %s is not closed: %w", stack[len(stack)-1].Name, io.ErrUnexpectedEOF)
	}

	return root, nil
}

func isIgnorable(r rune) bool {
	return r == '\uFEFF' || unicode.IsSpace(r)
}
