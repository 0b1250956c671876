package chart

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"reflect"
	"strconv"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Attr is a single attribute. Attributes keep their declaration order so the
// same tree always serialises to the same bytes.
type Attr struct {
	Name  string
	Value string
}

// A builds an attribute. Numbers use the shortest representation that
// round-trips; any other value is formatted with fmt.
func A(name string, value any) Attr {
	var v string
	switch x := value.(type) {
	case string:
		v = x
	case float64:
		v = formatNumber(x)
	case float32:
		v = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		v = strconv.Itoa(x)
	case int8, int16, int32, int64:
		v = strconv.FormatInt(reflect.ValueOf(x).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		v = strconv.FormatUint(reflect.ValueOf(x).Uint(), 10)
	case bool:
		v = strconv.FormatBool(x)
	default:
		v = fmt.Sprint(x)
	}
	return Attr{Name: name, Value: v}
}

// Node is one element of a declared SVG shape tree.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

func El(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

// Append adds children in order and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// WithText sets the node's character data and returns n.
func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr overwrites an existing attribute in place or appends a new one.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// ReplaceChildren drops every existing child and installs the given ones.
func (n *Node) ReplaceChildren(children ...*Node) {
	n.Children = append([]*Node(nil), children...)
}

// FindByID walks the tree depth first and returns the first node whose id
// attribute matches, or nil.
func (n *Node) FindByID(id string) *Node {
	if n == nil {
		return nil
	}
	if v, ok := n.Attr("id"); ok && v == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// WriteTo serialises the tree as XML.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	n.write(cw)
	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

// Bytes is WriteTo into a fresh buffer.
func (n *Node) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = n.WriteTo(&buf)
	return buf.Bytes()
}

func (n *Node) write(w *countingWriter) {
	w.str("<")
	w.str(n.Tag)
	for _, a := range n.Attrs {
		w.str(" ")
		w.str(a.Name)
		w.str(`="`)
		w.escape(a.Value)
		w.str(`"`)
	}
	if n.Text == "" && len(n.Children) == 0 {
		w.str("/>")
		return
	}
	w.str(">")
	w.escape(n.Text)
	for _, c := range n.Children {
		c.write(w)
	}
	w.str("</")
	w.str(n.Tag)
	w.str(">")
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) str(s string) {
	if c.err != nil {
		return
	}
	m, err := c.w.WriteString(s)
	c.n += int64(m)
	c.err = err
}

func (c *countingWriter) escape(s string) {
	if c.err != nil || s == "" {
		return
	}
	var buf bytes.Buffer
	// EscapeText only fails when the underlying writer does.
	_ = xml.EscapeText(&buf, []byte(s))
	c.str(buf.String())
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
