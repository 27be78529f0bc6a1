package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XMLOptions controls XMLToJSON. The output follows the layout of the
// xml2js JavaScript library.
type XMLOptions struct {
	// ExplicitArray wraps every child element in an array, even when it
	// occurs once.
	ExplicitArray bool
	// MergeAttrs stores attributes next to child elements instead of under
	// the "$" key.
	MergeAttrs bool
}

const (
	attrKey = "$"
	charKey = "_"
)

type xmlElement struct {
	name     string
	attrs    []xml.Attr
	children []*xmlElement
	text     strings.Builder
}

// XMLToJSON converts an XML document to JSON. The root element name is the
// single top-level key. An element without attributes or children becomes
// its text; otherwise its text, when not blank, is stored under "_".
func XMLToJSON(input string, opts XMLOptions) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyXML
	}

	root, err := parseXML(input)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParseXML, err)
	}

	out := NewObject()
	out.Set(root.name, root.value(opts))
	return marshal(out)
}

func parseXML(input string) (*xmlElement, error) {
	dec := xml.NewDecoder(strings.NewReader(input))
	dec.Strict = true

	var (
		root  *xmlElement
		stack []*xmlElement
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &xmlElement{name: qualifiedName(t.Name), attrs: t.Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, ErrMultiRoots
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element </%s>", qualifiedName(t.Name))
			}
			if top := stack[len(stack)-1]; top.name != qualifiedName(t.Name) {
				return nil, fmt.Errorf("element <%s> closed by </%s>", top.name, qualifiedName(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("text outside the root element: %q", strings.TrimSpace(string(t)))
			}
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].name)
	}
	if root == nil {
		return nil, ErrNoXMLRoot
	}
	return root, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func (e *xmlElement) value(opts XMLOptions) any {
	text := e.text.String()
	blank := strings.TrimSpace(text) == ""

	if len(e.attrs) == 0 && len(e.children) == 0 {
		if blank {
			return ""
		}
		return text
	}

	obj := NewObject()
	if len(e.attrs) > 0 {
		if opts.MergeAttrs {
			for _, a := range e.attrs {
				assignOrPush(obj, attrName(a), a.Value, opts.ExplicitArray)
			}
		} else {
			attrs := NewObject()
			for _, a := range e.attrs {
				attrs.Set(attrName(a), a.Value)
			}
			obj.Set(attrKey, attrs)
		}
	}
	if !blank {
		obj.Set(charKey, text)
	}
	for _, c := range e.children {
		assignOrPush(obj, c.name, c.value(opts), opts.ExplicitArray)
	}
	return obj
}

func attrName(a xml.Attr) string {
	return qualifiedName(a.Name)
}

// assignOrPush stores v under key, turning repeated keys into arrays.
func assignOrPush(obj *Object, key string, v any, explicitArray bool) {
	cur, ok := obj.Get(key)
	if !ok {
		if explicitArray {
			obj.Set(key, []any{v})
		} else {
			obj.Set(key, v)
		}
		return
	}
	if arr, isArr := cur.([]any); isArr {
		obj.Set(key, append(arr, v))
		return
	}
	obj.Set(key, []any{cur, v})
}
