package main

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// EventHandler receives the structure events of an XML document in document
// order. Returning an error aborts the stream.
type EventHandler interface {
	OnStart(name string, attrs Attrs) error
	OnEnd(name string) error
	OnText(data []byte) error
}

// ParseError reports malformed input XML and where the tokenizer stopped.
type ParseError struct {
	Offset int64
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xml parse error at line %d, column %d (byte offset %d): %v", e.Line, e.Column, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// streamXML tokenizes r and pushes every element and character data event
// into h. Only the current token is held in memory. Empty input is a valid,
// event-free document.
func streamXML(ctx context.Context, r io.Reader, h EventHandler) error {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	parseErr := func(err error) error {
		line, col := dec.InputPos()
		return &ParseError{Offset: dec.InputOffset(), Line: line, Column: col, Err: err}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return parseErr(err)
			}
			return fmt.Errorf("read xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := h.OnStart(t.Name.Local, elementAttrs(t.Attr)); err != nil {
				return err
			}
		case xml.EndElement:
			if err := h.OnEnd(t.Name.Local); err != nil {
				return err
			}
		case xml.CharData:
			if err := h.OnText(t); err != nil {
				return err
			}
		}
	}
}

// elementAttrs flattens XML attributes into a map keyed by local name. The
// XML Schema instance namespace keeps its conventional xsi: prefix so
// xsi:nil stays distinguishable from a plain nil attribute.
func elementAttrs(attrs []xml.Attr) Attrs {
	out := make(Attrs, len(attrs))
	for _, a := range attrs {
		switch a.Name.Space {
		case "":
			out[a.Name.Local] = a.Value
		case xsiNamespace, "xsi":
			out["xsi:"+a.Name.Local] = a.Value
		case "xmlns":
			// namespace declarations carry no dump data
		default:
			out[a.Name.Space+":"+a.Name.Local] = a.Value
		}
	}
	return out
}
