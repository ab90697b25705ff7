package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/reqdoc/textnorm"
)

//go:embed sections.yaml
var defaultCatalog []byte

//go:embed schema.json
var schemaJSON []byte

// catalogFile is the YAML shape of a catalog.
type catalogFile struct {
	Version         int           `yaml:"version"`
	SharedBlacklist []string      `yaml:"sharedBlacklist"`
	Sections        []sectionFile `yaml:"sections"`
}

type sectionFile struct {
	ID              string       `yaml:"id"`
	Title           string       `yaml:"title"`
	Kind            Kind         `yaml:"kind"`
	Layout          Layout       `yaml:"layout"`
	PrimaryField    string       `yaml:"primaryField"`
	SearchTerms     []string     `yaml:"searchTerms"`
	ExclusionTerms  []string     `yaml:"exclusionTerms"`
	Columns         []columnFile `yaml:"columns"`
	MinLabelMatches int          `yaml:"minLabelMatches"`
	Scan            scanFile     `yaml:"scan"`
}

type columnFile struct {
	Field  string   `yaml:"field"`
	Labels []string `yaml:"labels"`
}

type scanFile struct {
	Threshold     float64    `yaml:"threshold"`
	MaxCandidates int        `yaml:"maxCandidates"`
	MinLength     int        `yaml:"minLength"`
	Bands         []bandFile `yaml:"bands"`
	Blacklist     []string   `yaml:"blacklist"`
}

type bandFile struct {
	Weight float64  `yaml:"weight"`
	Terms  []string `yaml:"terms"`
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("loading catalog schema: %w", err)
	}
	return compiler.Compile("schema.json")
})

var defaultOnce = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
})

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultOnce()
}

// DefaultYAML returns the raw embedded catalog, as a starting point for
// custom catalogs.
func DefaultYAML() []byte {
	return bytes.Clone(defaultCatalog)
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load parses a catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the catalog schema and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return build(file)
}

// Validate checks data against the embedded JSON Schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding catalog: %w", err)
	}

	// The validator expects JSON-shaped values, so round-trip through JSON.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("catalog is not JSON-compatible: %w", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("catalog is not JSON-compatible: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}

// build normalizes every phrase, applies defaults and checks the rules the
// schema cannot express.
func build(file catalogFile) (*Catalog, error) {
	c := &Catalog{
		Version:         file.Version,
		SharedBlacklist: textnorm.NormalizeAll(file.SharedBlacklist),
		byID:            make(map[string]*Section, len(file.Sections)),
	}

	for i, sf := range file.Sections {
		s, err := buildSection(sf, c.SharedBlacklist)
		if err != nil {
			return nil, fmt.Errorf("section %d (%s): %w", i, sf.ID, err)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("section %d: duplicate id %q", i, s.ID)
		}
		c.byID[s.ID] = s
		c.sections = append(c.sections, s)
	}
	return c, nil
}

func buildSection(sf sectionFile, shared []string) (*Section, error) {
	s := &Section{
		ID:              sf.ID,
		Title:           sf.Title,
		Kind:            sf.Kind,
		Layout:          sf.Layout,
		PrimaryField:    sf.PrimaryField,
		SearchTerms:     textnorm.NormalizeAll(sf.SearchTerms),
		ExclusionTerms:  textnorm.NormalizeAll(sf.ExclusionTerms),
		MinLabelMatches: sf.MinLabelMatches,
		Scan: Scan{
			Threshold:     sf.Scan.Threshold,
			MaxCandidates: sf.Scan.MaxCandidates,
			MinLength:     sf.Scan.MinLength,
		},
	}
	if s.Title == "" {
		s.Title = s.ID
	}
	if len(s.SearchTerms) == 0 {
		return nil, fmt.Errorf("no usable search terms")
	}

	for _, cf := range sf.Columns {
		for _, label := range textnorm.NormalizeAll(cf.Labels) {
			s.Columns = append(s.Columns, ColumnRule{Label: label, Field: cf.Field})
		}
	}
	for _, bf := range sf.Scan.Bands {
		terms := textnorm.NormalizeAll(bf.Terms)
		if len(terms) > 0 {
			s.Scan.Bands = append(s.Scan.Bands, Band{Weight: bf.Weight, Terms: terms})
		}
	}
	s.Scan.Blacklist = textnorm.NormalizeAll(append(append([]string(nil), sf.Scan.Blacklist...), shared...))

	if s.Scan.MaxCandidates <= 0 {
		s.Scan.MaxCandidates = DefaultMaxCandidates
	}
	if s.Scan.MinLength <= 0 {
		s.Scan.MinLength = DefaultMinLength
	}

	if !s.IsTable() {
		return s, nil
	}

	if s.Layout == "" {
		s.Layout = LayoutRows
	}
	if s.MinLabelMatches <= 0 {
		s.MinLabelMatches = DefaultMinLabelMatches
	}
	if len(s.Columns) == 0 {
		return nil, fmt.Errorf("table section has no column labels")
	}
	fields := s.Fields()
	if s.MinLabelMatches > len(fields) {
		return nil, fmt.Errorf("minLabelMatches %d exceeds the %d declared fields", s.MinLabelMatches, len(fields))
	}
	if s.Layout == LayoutVertical {
		if s.PrimaryField == "" {
			return nil, fmt.Errorf("vertical layout requires primaryField")
		}
		found := false
		for _, f := range fields {
			if f == s.PrimaryField {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("primaryField %q has no column labels", s.PrimaryField)
		}
	}
	return s, nil
}
