package view

import (
	"bytes"
	"html"
	"io"
)

// TargetField is the form field a clickable control submits its node path in.
const TargetField = "target"

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Render writes n as HTML. Buttons with a click handler become submit
// controls that post their own path in TargetField, which is how a browser
// hands the click back to Dispatch.
func Render(w io.Writer, n Node) error {
	var buf bytes.Buffer
	if e, ok := n.(*Element); ok && e != nil && e.Tag == "html" {
		buf.WriteString("<!DOCTYPE html>")
	}
	renderNode(&buf, n, Path{})
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderString is Render into a string.
func RenderString(n Node) string {
	var buf bytes.Buffer
	_ = Render(&buf, n)
	return buf.String()
}

func renderNode(buf *bytes.Buffer, n Node, p Path) {
	switch x := n.(type) {
	case Text:
		buf.WriteString(html.EscapeString(string(x)))
	case *Element:
		if x == nil {
			return
		}
		renderElement(buf, x, p)
	}
}

func renderElement(buf *bytes.Buffer, e *Element, p Path) {
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs {
		writeAttr(buf, a.Key, a.Value)
	}
	if e.Tag == "button" && e.Handles(Click) {
		if _, ok := e.Attr("type"); !ok {
			writeAttr(buf, "type", "submit")
		}
		writeAttr(buf, "name", TargetField)
		writeAttr(buf, "value", p.String())
	}
	if voidElements[e.Tag] {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	for i, c := range e.Children {
		renderNode(buf, c, p.Child(i))
	}
	buf.WriteString("</")
	buf.WriteString(e.Tag)
	buf.WriteByte('>')
}

func writeAttr(buf *bytes.Buffer, key, value string) {
	buf.WriteByte(' ')
	buf.WriteString(key)
	buf.WriteString(`="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteByte('"')
}
