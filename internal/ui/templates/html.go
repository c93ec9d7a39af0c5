// Package templates renders the ui as templ components.
//
// Components are written against the templ runtime directly (templ.ComponentFunc) rather than
// generated from .templ files, so the package builds without the templ code generator.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// writer collects the first write error so components can be written as a flat sequence of calls
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *writer {
	return &writer{ctx: ctx, w: w}
}

// raw writes trusted markup
func (h *writer) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes escaped text
func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes name="value" with the value escaped
func (h *writer) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *writer) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(h *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		fn(h)
		return h.err
	})
}
