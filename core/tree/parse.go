package tree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseError reports a malformed tree serialization.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parsing tree: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parsing tree: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse builds a Node tree from the extractor's XML serialization.
// Exactly one root element is accepted. Comments, processing instructions
// and directives are skipped.
func Parse(serialized string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(serialized))

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newParseError(dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := New(t.Name.Local)
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, newParseError(dec, fmt.Errorf("unexpected second root element <%s>", t.Name.Local))
				}
				root = n
			} else {
				stack[len(stack)-1].Append(n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, newParseError(dec, errors.New("text outside the root element"))
				}
				continue
			}
			stack[len(stack)-1].AppendText(string(t))
		}
	}

	if root == nil {
		return nil, &ParseError{Err: errors.New("no root element")}
	}
	return root, nil
}

func newParseError(dec *xml.Decoder, err error) *ParseError {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{Line: syn.Line, Err: errors.New(syn.Msg)}
	}
	line, _ := dec.InputPos()
	return &ParseError{Line: line, Err: err}
}
