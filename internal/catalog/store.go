// Package catalog reads and writes catalog documents on disk.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/util"
)

// Format is the on-disk encoding of a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor picks the encoding from a file extension. Paths without an
// extension are treated as JSON.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

const (
	keyFoods    = "foods"
	keyCuisines = "cuisines"
)

// Document is a loaded catalog along with what is needed to write it back
// without disturbing content the program does not model.
type Document struct {
	Path    string
	Format  Format
	Catalog models.Catalog

	// Records as they were loaded, used to detect untouched entries on save.
	original []models.Food

	// JSON: top-level members in file order and the raw bytes of each record.
	keys     []string
	members  map[string]json.RawMessage
	rawFoods []json.RawMessage

	// YAML: the parsed tree and the node of each record.
	root      *yaml.Node
	foodNodes []*yaml.Node
}

// Load reads and validates the catalog document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	doc := &Document{Path: path, Format: format}
	switch format {
	case FormatYAML:
		err = doc.decodeYAML(data)
	default:
		err = doc.decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(&doc.Catalog); err != nil {
		return nil, err
	}

	doc.original = append([]models.Food(nil), doc.Catalog.Foods...)

	slog.Debug("catalog loaded",
		"path", path,
		"format", format.String(),
		"foods", len(doc.Catalog.Foods),
		"cuisines", len(doc.Catalog.Cuisines),
	)

	return doc, nil
}

// Validate checks the catalog contents that generation depends on.
func Validate(c *models.Catalog) error {
	var errs []error

	if len(c.Cuisines) == 0 {
		errs = append(errs, errors.New("cuisine list is empty"))
	}
	for i, f := range c.Foods {
		if _, err := util.ParseSequence(f.ID); err != nil {
			errs = append(errs, fmt.Errorf("food %d: id %q is not an integer", i, f.ID))
		}
		if f.Cuisine == "" {
			errs = append(errs, fmt.Errorf("food %d: missing cuisine", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}

func (d *Document) decodeJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	d.members = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		key := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%w: member %q: %w", ErrMalformed, key, err)
		}
		if _, dup := d.members[key]; !dup {
			d.keys = append(d.keys, key)
		}
		d.members[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after object", ErrMalformed)
	}

	rawCuisines, ok := d.members[keyCuisines]
	if !ok {
		return fmt.Errorf("%w: missing %q", ErrMalformed, keyCuisines)
	}
	if err := json.Unmarshal(rawCuisines, &d.Catalog.Cuisines); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, keyCuisines, err)
	}

	if rawFoods, ok := d.members[keyFoods]; ok {
		if err := json.Unmarshal(rawFoods, &d.rawFoods); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformed, keyFoods, err)
		}
	}

	d.Catalog.Foods = make([]models.Food, len(d.rawFoods))
	for i, raw := range d.rawFoods {
		if err := json.Unmarshal(raw, &d.Catalog.Foods[i]); err != nil {
			return fmt.Errorf("%w: food %d: %w", ErrMalformed, i, err)
		}
	}

	return nil
}

func (d *Document) decodeYAML(data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("%w: top level is not a mapping", ErrMalformed)
	}
	d.root = &root

	cuisines := yamlValue(root.Content[0], keyCuisines)
	if cuisines == nil {
		return fmt.Errorf("%w: missing %q", ErrMalformed, keyCuisines)
	}
	if err := cuisines.Decode(&d.Catalog.Cuisines); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, keyCuisines, err)
	}

	foods := yamlValue(root.Content[0], keyFoods)
	if foods == nil || foods.Tag == "!!null" {
		return nil
	}
	if foods.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: %s is not a list", ErrMalformed, keyFoods)
	}

	d.foodNodes = foods.Content
	d.Catalog.Foods = make([]models.Food, len(foods.Content))
	for i, node := range foods.Content {
		if err := node.Decode(&d.Catalog.Foods[i]); err != nil {
			return fmt.Errorf("%w: food %d: %w", ErrMalformed, i, err)
		}
	}

	return nil
}

// yamlValue returns the value node for key in a mapping node.
func yamlValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// Save writes the document back to its path in its original encoding.
func (d *Document) Save() error {
	var (
		data []byte
		err  error
	)
	switch d.Format {
	case FormatYAML:
		data, err = d.encodeYAML()
	default:
		data, err = d.encodeJSON()
	}
	if err != nil {
		return err
	}

	if err := writeFileAtomic(d.Path, data); err != nil {
		return err
	}

	d.original = append(d.original[:0], d.Catalog.Foods...)

	slog.Debug("catalog saved", "path", d.Path, "foods", len(d.Catalog.Foods))
	return nil
}

// unchanged reports whether record i is still the record that was loaded.
func (d *Document) unchanged(i int) bool {
	return i < len(d.original) && d.Catalog.Foods[i] == d.original[i]
}

func (d *Document) encodeJSON() ([]byte, error) {
	foods := make([]json.RawMessage, len(d.Catalog.Foods))
	for i := range d.Catalog.Foods {
		if d.unchanged(i) && i < len(d.rawFoods) {
			foods[i] = d.rawFoods[i]
			continue
		}
		raw, err := marshalJSON(d.Catalog.Foods[i])
		if err != nil {
			return nil, fmt.Errorf("encoding food %s: %w", d.Catalog.Foods[i].ID, err)
		}
		foods[i] = raw
	}

	foodsRaw, err := marshalJSON(foods)
	if err != nil {
		return nil, fmt.Errorf("encoding foods: %w", err)
	}
	cuisinesRaw, err := marshalJSON(d.Catalog.Cuisines)
	if err != nil {
		return nil, fmt.Errorf("encoding cuisines: %w", err)
	}

	members := make(map[string]json.RawMessage, len(d.members)+2)
	for k, v := range d.members {
		members[k] = v
	}
	members[keyFoods] = foodsRaw
	members[keyCuisines] = cuisinesRaw

	keys := append([]string(nil), d.keys...)
	for _, k := range []string{keyFoods, keyCuisines} {
		if _, ok := d.members[k]; !ok {
			keys = append(keys, k)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		name, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteString(": ")
		if err := json.Indent(&buf, members[k], "  ", "  "); err != nil {
			return nil, fmt.Errorf("indenting %q: %w", k, err)
		}
	}
	buf.WriteString("\n}\n")

	return buf.Bytes(), nil
}

// marshalJSON encodes v without HTML escaping so names like "Mac & Cheese"
// survive a round trip unchanged.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (d *Document) encodeYAML() ([]byte, error) {
	if d.root == nil {
		d.root = &yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	mapping := d.root.Content[0]

	foods := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i := range d.Catalog.Foods {
		if d.unchanged(i) && i < len(d.foodNodes) {
			foods.Content = append(foods.Content, d.foodNodes[i])
			continue
		}
		node := &yaml.Node{}
		if err := node.Encode(d.Catalog.Foods[i]); err != nil {
			return nil, fmt.Errorf("encoding food %s: %w", d.Catalog.Foods[i].ID, err)
		}
		foods.Content = append(foods.Content, node)
	}

	cuisines := &yaml.Node{}
	if err := cuisines.Encode(d.Catalog.Cuisines); err != nil {
		return nil, fmt.Errorf("encoding cuisines: %w", err)
	}

	setYAMLValue(mapping, keyFoods, foods)
	setYAMLValue(mapping, keyCuisines, cuisines)
	d.foodNodes = foods.Content

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	return buf.Bytes(), nil
}

func setYAMLValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

// writeFileAtomic writes data to a temporary file beside path, syncs it and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing catalog: %w", err)
	}

	return nil
}
