package convert

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLToJSON converts the first YAML document in input to JSON. Mapping
// order is preserved and non-string keys are stringified.
func YAMLToJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyYAML
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseYAML, err)
	}

	v, err := yamlValue(&doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseYAML, err)
	}
	return marshal(v)
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		obj := NewObject()
		if err := mergeMapping(obj, n); err != nil {
			return nil, err
		}
		return obj, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node", n.Line)
	}
}

// mergeMapping copies the pairs of n into obj, expanding "<<" merge keys.
func mergeMapping(obj *Object, n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			if err := mergeInto(obj, v); err != nil {
				return err
			}
			continue
		}

		val, err := yamlValue(v)
		if err != nil {
			return err
		}
		obj.Set(yamlKey(k), val)
	}
	return nil
}

func mergeInto(obj *Object, v *yaml.Node) error {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	switch v.Kind {
	case yaml.MappingNode:
		return mergeMapping(obj, v)
	case yaml.SequenceNode:
		for _, c := range v.Content {
			if err := mergeInto(obj, c); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", v.Line)
	}
}

func yamlKey(k *yaml.Node) string {
	if k.Kind == yaml.AliasNode {
		k = k.Alias
	}
	if k.Kind == yaml.ScalarNode {
		if k.ShortTag() == "!!null" {
			return "null"
		}
		return k.Value
	}
	v, err := yamlValue(k)
	if err != nil {
		return ""
	}
	s, err := marshalCompact(v)
	if err != nil {
		return ""
	}
	return s
}
