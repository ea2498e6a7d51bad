// Package presets resolves named capture profiles. Each upstream capture
// variant differs only in how many metadata rows it emits, which columns are
// worth plotting and how the cleaned file is named.
package presets

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"benchgraph/internal/config"
	"benchgraph/internal/errors"

	"github.com/tidwall/gjson"
)

// Preset is one named capture profile. Nil fields leave the configured value in place.
type Preset struct {
	Name             string
	SkipRows         *int
	OutliersEnabled  *bool
	OutlierThreshold *float64
	OutlierPolicy    string
	Suffix           string
	Background       string
	Columns          []string
}

// Builtin is used when no presets file is configured
const Builtin = `{
  "anno-v1":  {"skip_rows": 20, "suffix": "_output", "outliers": false, "background": "black"},
  "anno-v2":  {"skip_rows": 0,  "suffix": "_output", "outliers": false, "background": "black"},
  "gradle":   {"skip_rows": 20, "suffix": "_cleaned", "outliers": false, "background": "black"},
  "multirun": {"skip_rows": 20, "suffix": "_output", "outliers": true, "outlier_threshold": 10,
               "columns": ["FrameTime", "PresentTime"], "background": "black"}
}`

// Source holds the raw JSON document presets are read from
type Source struct {
	doc []byte
}

// NewSource wraps a presets document
func NewSource(doc []byte) (*Source, error) {
	if !gjson.ValidBytes(doc) {
		return nil, errors.ConfigInvalid("presets document is not valid JSON")
	}
	if !gjson.ParseBytes(doc).IsObject() {
		return nil, errors.ConfigInvalid("presets document must be a JSON object")
	}
	return &Source{doc: doc}, nil
}

// Load reads presets from path, or the builtin set when path is empty
func Load(path string) (*Source, error) {
	if path == "" {
		return NewSource([]byte(Builtin))
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.WithCode(errors.CodeConfigInvalid, err), "cannot read presets file %s", path)
	}
	return NewSource(doc)
}

// Names returns the preset names in sorted order
func (s *Source) Names() []string {
	var names []string
	gjson.ParseBytes(s.doc).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	sort.Strings(names)
	return names
}

// Get returns the named preset
func (s *Source) Get(name string) (Preset, error) {
	node := gjson.GetBytes(s.doc, gjson.Escape(name))
	if !node.Exists() || !node.IsObject() {
		return Preset{}, errors.InvalidInput(fmt.Sprintf("unknown preset %q (available: %s)", name, strings.Join(s.Names(), ", ")))
	}

	p := Preset{
		Name:          name,
		OutlierPolicy: node.Get("outlier_policy").String(),
		Suffix:        node.Get("suffix").String(),
		Background:    node.Get("background").String(),
	}
	if v := node.Get("skip_rows"); v.Exists() {
		if v.Type != gjson.Number || v.Int() < 0 {
			return Preset{}, errors.ConfigInvalid(fmt.Sprintf("preset %q: skip_rows must be a non-negative number", name))
		}
		n := int(v.Int())
		p.SkipRows = &n
	}
	if v := node.Get("outliers"); v.Exists() {
		b := v.Bool()
		p.OutliersEnabled = &b
	}
	if v := node.Get("outlier_threshold"); v.Exists() {
		f := v.Float()
		p.OutlierThreshold = &f
	}
	for _, c := range node.Get("columns").Array() {
		if c.String() != "" {
			p.Columns = append(p.Columns, c.String())
		}
	}
	return p, nil
}

// Apply overlays the preset onto cfg. Unset fields leave cfg untouched.
func (p Preset) Apply(cfg *config.Config) {
	if p.SkipRows != nil {
		cfg.Clean.SkipRows = *p.SkipRows
	}
	if p.OutliersEnabled != nil {
		cfg.Clean.OutliersEnabled = *p.OutliersEnabled
	}
	if p.OutlierThreshold != nil {
		cfg.Clean.OutlierThreshold = *p.OutlierThreshold
	}
	if p.OutlierPolicy != "" {
		cfg.Clean.OutlierPolicy = p.OutlierPolicy
	}
	if len(p.Columns) > 0 {
		cfg.Clean.Columns = p.Columns
	}
	if p.Suffix != "" {
		cfg.Output.Suffix = p.Suffix
	}
	if p.Background != "" {
		cfg.Chart.Background = p.Background
	}
}
