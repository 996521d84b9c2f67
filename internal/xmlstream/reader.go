// Package xmlstream turns an XML document into a flat sequence of element
// open and close events without loading the document in memory.
package xmlstream

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
)

// Kind distinguishes element open events from element close events.
type Kind int

const (
	Start Kind = iota
	End
)

func (k Kind) String() string {
	if k == End {
		return "end"
	}
	return "start"
}

// Element is the local tag name of an XML element and its attributes.
type Element struct {
	Tag   string
	Attrs map[string]string
}

// Attr returns the value of the named attribute and whether it was present.
func (e Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Event is a single open or close of an element, in document order.
type Event struct {
	Kind    Kind
	Element Element
}

// EventSource yields events until it returns io.EOF.
type EventSource interface {
	Next() (Event, error)
}

// Reader reads events from an XML document. Close events carry the same
// attributes as the matching open event.
type Reader struct {
	dec  *xml.Decoder
	open []Element
}

// NewReader returns a Reader decoding r. Non UTF-8 documents are decoded
// using the charset named in their XML declaration.
func NewReader(r io.Reader) *Reader {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	return &Reader{dec: dec}
}

// Next returns the next element event, or io.EOF at the end of the document.
func (r *Reader) Next() (Event, error) {
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, fmt.Errorf("error decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := Element{Tag: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			r.open = append(r.open, el)
			return Event{Kind: Start, Element: el}, nil
		case xml.EndElement:
			el := Element{Tag: t.Name.Local}
			if n := len(r.open); n > 0 {
				el = r.open[n-1]
				r.open[n-1] = Element{}
				r.open = r.open[:n-1]
			}
			return Event{Kind: End, Element: el}, nil
		}
	}
}

// InputOffset returns the number of bytes consumed from the underlying reader.
func (r *Reader) InputOffset() int64 {
	return r.dec.InputOffset()
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
