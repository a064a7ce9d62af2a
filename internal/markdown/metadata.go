package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Metadata is the flat key/value block found at the top of an index file.
// Every key maps to one or more string values.
type Metadata map[string][]string

// First returns the first value recorded for key.
func (m Metadata) First(key string) (string, bool) {
	values, ok := m[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Values returns every value recorded for key.
func (m Metadata) Values(key string) []string {
	return m[key]
}

var (
	metaLine         = regexp.MustCompile(`^[ ]{0,3}([A-Za-z0-9_-]+):\s*(.*)$`)
	metaContinuation = regexp.MustCompile(`^[ ]{4,}(.*)$`)

	yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)
)

// SplitMetadata separates the metadata block from the markdown body. Two block
// styles are recognised: `---` delimited YAML, and a headerless run of
// "key: value" lines ended by the first blank line.
func SplitMetadata(source []byte) (Metadata, []byte, error) {
	trimmed := bytes.TrimPrefix(source, []byte("\ufeff"))
	if bytes.HasPrefix(trimmed, []byte("---\n")) || bytes.HasPrefix(trimmed, []byte("---\r\n")) {
		return splitYAML(trimmed)
	}
	meta, body := splitHeaderless(trimmed)
	return meta, body, nil
}

func splitYAML(source []byte) (Metadata, []byte, error) {
	var node yaml.Node
	body, err := frontmatter.Parse(bytes.NewReader(source), &node, yamlFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse metadata block: %w", err)
	}

	meta := Metadata{}
	if node.Kind == 0 || len(node.Content) == 0 {
		return meta, body, nil
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("metadata block must be a mapping of keys to values")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := strings.ToLower(strings.TrimSpace(root.Content[i].Value))
		value := root.Content[i+1]
		switch value.Kind {
		case yaml.ScalarNode:
			meta[key] = append(meta[key], value.Value)
		case yaml.SequenceNode:
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, nil, fmt.Errorf("metadata key %q must hold plain values", key)
				}
				meta[key] = append(meta[key], item.Value)
			}
		default:
			return nil, nil, fmt.Errorf("metadata key %q must hold a value or a list of values", key)
		}
	}
	return meta, body, nil
}

func splitHeaderless(source []byte) (Metadata, []byte) {
	meta := Metadata{}
	key := ""
	offset := 0
	for offset < len(source) {
		end := bytes.IndexByte(source[offset:], '\n')
		next := len(source)
		if end >= 0 {
			next = offset + end + 1
			end += offset
		} else {
			end = len(source)
		}
		line := strings.TrimRight(string(source[offset:end]), "\r")

		if strings.TrimSpace(line) == "" {
			if key != "" {
				offset = next
			}
			break
		}
		if m := metaLine.FindStringSubmatch(line); m != nil {
			key = strings.ToLower(m[1])
			meta[key] = append(meta[key], strings.TrimSpace(m[2]))
		} else if m := metaContinuation.FindStringSubmatch(line); m != nil && key != "" {
			meta[key] = append(meta[key], strings.TrimSpace(m[1]))
		} else {
			break
		}
		offset = next
	}
	if key == "" {
		return meta, source
	}
	return meta, source[offset:]
}
