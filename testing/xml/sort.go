package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
)

// node is a sorted in-memory representation of an XML element used to
// compare two XML documents independent of attribute and child ordering.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	text     string
	children []*node
}

type attrSlice []xml.Attr

func (a attrSlice) Len() int      { return len(a) }
func (a attrSlice) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a attrSlice) Less(i, j int) bool {
	if a[i].Name.Space != a[j].Name.Space {
		return a[i].Name.Space < a[j].Name.Space
	}
	if a[i].Name.Local != a[j].Name.Local {
		return a[i].Name.Local < a[j].Name.Local
	}
	return a[i].Value < a[j].Value
}

type nodeSlice []*node

func (n nodeSlice) Len() int      { return len(n) }
func (n nodeSlice) Swap(i, j int) { n[i], n[j] = n[j], n[i] }
func (n nodeSlice) Less(i, j int) bool {
	if n[i].name.Local != n[j].name.Local {
		return n[i].name.Local < n[j].name.Local
	}
	return n[i].text < n[j].text
}

// XMLToStruct decodes the next element from d into a sorted node tree.
// start, when non-nil, is the already-consumed opening StartElement.
func XMLToStruct(d *xml.Decoder, start *xml.StartElement) (*node, error) {
	var n node

	if start != nil {
		n.name = start.Name
		n.attrs = append([]xml.Attr(nil), start.Attr...)
	}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := XMLToStruct(d, &t)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		case xml.CharData:
			n.text += string(t)
		case xml.EndElement:
			sort.Sort(attrSlice(n.attrs))
			sort.Sort(nodeSlice(n.children))
			return &n, nil
		}
	}

	sort.Sort(attrSlice(n.attrs))
	sort.Sort(nodeSlice(n.children))
	return &n, nil
}

// StructToXML writes the sorted node tree n to e. When ignoreIndent is
// true, whitespace-only text content is dropped so indentation differences
// between two otherwise-identical documents don't register as a diff.
func StructToXML(e *xml.Encoder, n *node, ignoreIndent bool) error {
	if n == nil {
		return nil
	}

	if n.name.Local != "" {
		start := xml.StartElement{Name: n.name, Attr: n.attrs}
		if err := e.EncodeToken(start); err != nil {
			return err
		}
	}

	text := n.text
	if ignoreIndent {
		text = collapseWhitespace(text)
	}
	if text != "" {
		if err := e.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}

	for _, c := range n.children {
		if err := StructToXML(e, c, ignoreIndent); err != nil {
			return err
		}
	}

	if n.name.Local != "" {
		if err := e.EncodeToken(xml.EndElement{Name: n.name}); err != nil {
			return err
		}
	}

	return e.Flush()
}

func collapseWhitespace(s string) string {
	var b bytes.Buffer
	wroteSpace := true
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !wroteSpace {
				b.WriteByte(' ')
			}
			wroteSpace = true
			continue
		}
		b.WriteRune(r)
		wroteSpace = false
	}
	return string(bytes.TrimSpace(b.Bytes()))
}

// SortXML normalizes the XML read from r into a canonical, attribute- and
// child-order-independent string so two documents can be diffed for
// semantic equality.
func SortXML(r io.Reader, ignoreIndent bool) (string, error) {
	d := xml.NewDecoder(r)

	tok, err := d.Token()
	for {
		if err == io.EOF {
			return "", fmt.Errorf("xml document has no root element")
		}
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			root, err := XMLToStruct(d, &start)
			if err != nil {
				return "", err
			}

			var buf bytes.Buffer
			e := xml.NewEncoder(&buf)
			if err := StructToXML(e, root, ignoreIndent); err != nil {
				return "", err
			}
			return buf.String(), nil
		}
		tok, err = d.Token()
	}
}
