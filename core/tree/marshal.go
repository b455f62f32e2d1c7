package tree

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
)

// Marshal serializes a tree into the XML form accepted by Parse.
// Attributes are written in key order so the output is deterministic.
func Marshal(root *Node) (string, error) {
	var b strings.Builder
	enc := xml.NewEncoder(&b)
	if err := encodeNode(enc, root); err != nil {
		return "", fmt.Errorf("encoding <%s>: %w", root.Tag, err)
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("flushing tree: %w", err)
	}
	return b.String(), nil
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: n.Attrs[k]})
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
		if c.Tail != "" {
			if err := enc.EncodeToken(xml.CharData(c.Tail)); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(start.End())
}
