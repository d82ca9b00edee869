package view_test

import (
	"bytes"
	"testing"

	"etalase/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree(calls *[]string, stopAtButton bool) *view.Element {
	return view.El("div",
		view.El("a",
			view.El("span", view.Text("inner")),
		).Set("href", "/x").On(view.Click, func(*view.Event) {
			*calls = append(*calls, "a")
		}),
		view.El("button", view.Text("go")).On(view.Click, func(ev *view.Event) {
			*calls = append(*calls, "button")
			if stopAtButton {
				ev.StopPropagation()
			}
		}),
	).On(view.Click, func(*view.Event) {
		*calls = append(*calls, "div")
	})
}

func TestPath_RoundTrip(t *testing.T) {
	p, err := view.ParsePath("0.12.3")
	require.NoError(t, err)
	assert.Equal(t, view.Path{0, 12, 3}, p)
	assert.Equal(t, "0.12.3", p.String())

	root, err := view.ParsePath("")
	require.NoError(t, err)
	assert.Empty(t, root)

	for _, bad := range []string{"a", "1..2", "-1", "1.x"} {
		_, err := view.ParsePath(bad)
		assert.ErrorIs(t, err, view.ErrInvalidPath, bad)
	}
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	base := make(view.Path, 1, 4)
	a := base.Child(1)
	b := base.Child(2)
	assert.Equal(t, view.Path{0, 1}, a)
	assert.Equal(t, view.Path{0, 2}, b)
}

func TestFind(t *testing.T) {
	var calls []string
	tree := sampleTree(&calls, true)

	n, err := view.Find(tree, view.Path{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, view.Text("inner"), n)

	n, err = view.Find(tree, view.Path{1})
	require.NoError(t, err)
	assert.Equal(t, "button", n.(*view.Element).Tag)

	_, err = view.Find(tree, view.Path{5})
	assert.ErrorIs(t, err, view.ErrNoSuchNode)
	_, err = view.Find(tree, view.Path{0, 0, 0, 0})
	assert.ErrorIs(t, err, view.ErrNoSuchNode)
}

func TestDispatch_Bubbles(t *testing.T) {
	var calls []string
	tree := sampleTree(&calls, false)

	handled, err := view.Dispatch(tree, view.Path{0, 0, 0}, view.Click)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"a", "div"}, calls)
}

func TestDispatch_StopPropagation(t *testing.T) {
	var calls []string
	tree := sampleTree(&calls, true)

	handled, err := view.Dispatch(tree, view.Path{1}, view.Click)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"button"}, calls)

	calls = nil
	tree = sampleTree(&calls, false)
	_, err = view.Dispatch(tree, view.Path{1, 0}, view.Click)
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "div"}, calls)
}

func TestDispatch_NoHandler(t *testing.T) {
	tree := view.El("div", view.El("p", view.Text("x")))
	handled, err := view.Dispatch(tree, view.Path{0}, view.Click)
	require.NoError(t, err)
	assert.False(t, handled)

	_, err = view.Dispatch(tree, view.Path{3}, view.Click)
	assert.ErrorIs(t, err, view.ErrNoSuchNode)
}

func TestEqual(t *testing.T) {
	var calls []string
	a := sampleTree(&calls, true)
	b := sampleTree(&calls, false)
	assert.True(t, view.Equal(a, b))

	c := sampleTree(&calls, true)
	c.Children[0].(*view.Element).Attrs[0].Value = "/y"
	assert.False(t, view.Equal(a, c))

	d := sampleTree(&calls, true)
	d.Handlers = nil
	assert.False(t, view.Equal(a, d))

	assert.False(t, view.Equal(view.Text("a"), view.El("a")))
	assert.True(t, view.Equal(view.Text("a"), view.Text("a")))
}

func TestRender(t *testing.T) {
	tree := view.El("div",
		view.El("img").Set("src", `/img/"q".png`),
		view.El("p", view.Text("<b>&</b>")),
		view.El("button", view.Text("Add")).Class("btn").On(view.Click, func(*view.Event) {}),
		view.El("button", view.Text("Plain")).Set("type", "button"),
	).Class("wrap")

	var buf bytes.Buffer
	require.NoError(t, view.Render(&buf, tree))
	assert.Equal(t,
		`<div class="wrap">`+
			`<img src="/img/&#34;q&#34;.png"/>`+
			`<p>&lt;b&gt;&amp;&lt;/b&gt;</p>`+
			`<button class="btn" type="submit" name="target" value="2">Add</button>`+
			`<button type="button">Plain</button>`+
			`</div>`,
		buf.String())
}

func TestRender_Doctype(t *testing.T) {
	out := view.RenderString(view.El("html", view.El("body")))
	assert.Equal(t, "<!DOCTYPE html><html><body></body></html>", out)
}

func TestFindAll(t *testing.T) {
	tree := view.El("ul",
		view.El("li", view.Text("a")).Class("item"),
		view.El("li", view.Text("b")),
		view.El("li", view.Text("c")).Class("item"),
	)
	found := view.FindAll(tree, view.ByClass("item"))
	require.Len(t, found, 2)
	assert.Equal(t, view.Path{0}, found[0].Path)
	assert.Equal(t, view.Path{2}, found[1].Path)
	assert.Equal(t, "c", view.TextContent(found[1].Element))
	assert.Len(t, view.FindAll(tree, view.ByTag("li")), 3)
}

type counter struct {
	label   string
	changes int
}

func (c *counter) Change(label string) bool { c.label = label; c.changes++; return true }
func (c *counter) Update(view.Msg) bool     { return true }
func (c *counter) View() view.Node          { return view.El("span", view.Text(c.label)) }

func TestHost(t *testing.T) {
	c := &counter{label: "one"}
	h := view.Mount[string](c)
	assert.Equal(t, 1, h.Renders())
	assert.Equal(t, "one", view.TextContent(h.Tree()))

	h.SetProps("two")
	assert.Equal(t, 2, h.Renders())
	assert.Equal(t, "two", view.TextContent(h.Tree()))

	h.SetProps("two")
	assert.Equal(t, 3, h.Renders())

	h.Send(view.Msg{})
	h.Invalidate()
	assert.Equal(t, 5, h.Renders())
}

func TestCallback_NilIsNoop(t *testing.T) {
	var cb view.Callback
	assert.NotPanics(t, cb.Emit)

	n := 0
	cb = func() { n++ }
	cb.Emit()
	assert.Equal(t, 1, n)
}
