package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/harrison/jvmtune/internal/encerr"
	"github.com/harrison/jvmtune/internal/encoder"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// KeyEncoders holds named sections in a multi-encoder file.
const KeyEncoders = "encoders"

// DefaultSection names the only section of a single-encoder file.
const DefaultSection = "default"

// Map is a decoded configuration document with key order preserved.
type Map = orderedmap.OrderedMap[string, any]

// File is a loaded configuration file.
type File struct {
	Path     string
	Sections *orderedmap.OrderedMap[string, encoder.Config]
}

// FormatFromPath picks the syntax from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// LoadFile reads and parses the configuration file at path.
func LoadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Parse decodes data and builds one encoder.Config per section.
func Parse(data []byte, format Format) (*File, error) {
	var (
		doc *Map
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatTOML:
		doc, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return nil, err
	}

	sections := orderedmap.New[string, encoder.Config]()
	if doc == nil {
		sections.Set(DefaultSection, encoder.Config{})
		return &File{Sections: sections}, nil
	}

	raw, multi := doc.Get(KeyEncoders)
	if !multi {
		cfg, err := encoder.ParseConfig(doc)
		if err != nil {
			return nil, err
		}
		sections.Set(DefaultSection, cfg)
		return &File{Sections: sections}, nil
	}

	if doc.Len() > 1 {
		return nil, encerr.Configf(encerr.EncoderConfig, "",
			"%q cannot be mixed with a top-level encoder section", KeyEncoders)
	}
	named, ok := raw.(*Map)
	if !ok {
		return nil, encerr.Configf(encerr.EncoderConfig, "", "%q must be a mapping of encoder names", KeyEncoders)
	}
	for pair := named.Oldest(); pair != nil; pair = pair.Next() {
		cfg, err := encoder.ParseConfig(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("encoder %q: %w", pair.Key, err)
		}
		sections.Set(pair.Key, cfg)
	}
	if sections.Len() == 0 {
		return nil, encerr.Configf(encerr.EncoderConfig, "", "%q is empty", KeyEncoders)
	}
	return &File{Sections: sections}, nil
}

// Names returns the section names in file order.
func (f *File) Names() []string {
	names := make([]string, 0, f.Sections.Len())
	for pair := f.Sections.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Section returns the section called name. An empty name selects the only
// section and is an error when the file has several.
func (f *File) Section(name string) (encoder.Config, error) {
	if name == "" {
		if f.Sections.Len() == 1 {
			return f.Sections.Oldest().Value, nil
		}
		return encoder.Config{}, encerr.Configf(encerr.EncoderConfig, "",
			"file defines encoders %s, select one", strings.Join(f.Names(), ", "))
	}
	cfg, ok := f.Sections.Get(name)
	if !ok {
		return encoder.Config{}, encerr.Configf(encerr.EncoderConfig, "",
			"no encoder %q, file defines %s", name, strings.Join(f.Names(), ", "))
	}
	return cfg, nil
}

func decodeYAML(data []byte) (*Map, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	value, err := nodeValue(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if value == nil {
		return nil, nil
	}
	doc, ok := value.(*Map)
	if !ok {
		return nil, encerr.Configf(encerr.EncoderConfig, "",
			"configuration document must be a mapping, found %T", value)
	}
	return doc, nil
}

// nodeValue converts a YAML node into plain values, with mappings as ordered maps.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := orderedmap.New[string, any]()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			if _, dup := m.Get(key.Value); dup {
				return nil, fmt.Errorf("line %d: key %q is defined more than once", key.Line, key.Value)
			}
			value, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			value, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	case yaml.ScalarNode:
		var value any
		if err := n.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

func decodeTOML(data []byte) (*Map, error) {
	var plain map[string]any
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&plain)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if len(plain) == 0 {
		return nil, nil
	}

	doc := orderedmap.New[string, any]()
	for _, key := range md.Keys() {
		insertTOMLKey(doc, plain, key)
	}
	fillMissing(doc, plain)
	return doc, nil
}

// insertTOMLKey places one key path from MetaData.Keys into doc, so that
// tables and keys appear in the order the file declares them.
func insertTOMLKey(doc *Map, plain map[string]any, key toml.Key) {
	node, src := doc, plain
	for i, part := range key {
		value, ok := src[part]
		if !ok {
			return
		}
		table, isTable := value.(map[string]any)
		if !isTable {
			if i == len(key)-1 {
				if _, exists := node.Get(part); !exists {
					node.Set(part, tomlValue(value))
				}
			}
			return
		}
		child, exists := node.Get(part)
		childMap, isMap := child.(*Map)
		if !exists || !isMap {
			childMap = orderedmap.New[string, any]()
			node.Set(part, childMap)
		}
		node, src = childMap, table
	}
}

// fillMissing adds anything MetaData.Keys did not report, sorted by name.
func fillMissing(doc *Map, plain map[string]any) {
	names := make([]string, 0, len(plain))
	for name := range plain {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := plain[name]
		existing, ok := doc.Get(name)
		if !ok {
			doc.Set(name, tomlValue(value))
			continue
		}
		if table, isTable := value.(map[string]any); isTable {
			if child, isMap := existing.(*Map); isMap {
				fillMissing(child, table)
			}
		}
	}
}

// tomlValue converts decoded TOML values so nested tables become ordered maps.
func tomlValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		m := orderedmap.New[string, any]()
		fillMissing(m, v)
		return m
	case []map[string]any:
		list := make([]any, 0, len(v))
		for _, item := range v {
			list = append(list, tomlValue(item))
		}
		return list
	case []any:
		list := make([]any, 0, len(v))
		for _, item := range v {
			list = append(list, tomlValue(item))
		}
		return list
	default:
		return v
	}
}
