package keyframe

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrUnknownEasing is returned when a document names an easing that
// EasingByName does not know.
var ErrUnknownEasing = errors.New("keyframe: unknown easing")

// Document is a decoded animation file: the sheet plus the config levels it
// declares. Pass both to Compile.
type Document struct {
	Sheet   Sheet
	Options Options
}

// documentFile mirrors the on-disk layout:
//
//	defaults:
//	  library: {duration: .inf, delay: 0, easing: linear}
//	  fields:  {alpha: {easing: outCubic}}
//	  objects: {box: {delay: 100}}
//	objects:
//	  box:
//	    - time: 0
//	      fields: {alpha: 0}
//	    - time: 1000
//	      fields: {alpha: {value: 1, easing: inQuad}}
//	    - time: 2000
//	      fields:
//	        alpha: !inherit
type documentFile struct {
	Defaults struct {
		Library *clipConfigDoc           `yaml:"library"`
		Fields  map[string]clipConfigDoc `yaml:"fields"`
		Objects map[string]clipConfigDoc `yaml:"objects"`
	} `yaml:"defaults"`
	Objects map[string][]keyframeDoc `yaml:"objects"`
}

type clipConfigDoc struct {
	Duration *float64 `yaml:"duration"`
	Delay    *float64 `yaml:"delay"`
	Easing   string   `yaml:"easing"`
}

func (d clipConfigDoc) empty() bool {
	return d.Duration == nil && d.Delay == nil && d.Easing == ""
}

func (d clipConfigDoc) clipConfig() (ClipConfig, error) {
	cfg := ClipConfig{Duration: d.Duration, Delay: d.Delay}
	if d.Easing != "" {
		fn, ok := EasingByName(d.Easing)
		if !ok {
			return ClipConfig{}, fmt.Errorf("%w %q", ErrUnknownEasing, d.Easing)
		}
		cfg.Easing = fn
	}
	return cfg, nil
}

type keyframeDoc struct {
	Time   float64             `yaml:"time"`
	Fields map[string]entryDoc `yaml:"fields"`
}

// entryDoc decodes one field entry. Accepted forms:
//
//	0.5                              raw value (any YAML value)
//	!inherit                         inherit marker
//	{inherit: true, easing: inQuad}  inherit marker with config override
//	{value: 1, easing: inQuad}       raw value with config override
//
// A mapping without a value or inherit key is itself a raw value, so
// {x: 1, y: 2} is a vector.
type entryDoc struct {
	entry Entry
}

func (e *entryDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Tag == "!inherit" {
		e.entry = Inherit()
		return nil
	}

	if n.Kind == yaml.MappingNode && (hasKey(n, "value") || hasKey(n, "inherit")) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			switch k := n.Content[i]; k.Value {
			case "value", "inherit", "duration", "delay", "easing":
			default:
				return fmt.Errorf("line %d: unknown entry key %q", k.Line, k.Value)
			}
		}
		var body struct {
			Value    any      `yaml:"value"`
			Inherit  bool     `yaml:"inherit"`
			Duration *float64 `yaml:"duration"`
			Delay    *float64 `yaml:"delay"`
			Easing   string   `yaml:"easing"`
		}
		if err := n.Decode(&body); err != nil {
			return err
		}
		e.entry = Entry{Value: body.Value, Inherit: body.Inherit}
		cd := clipConfigDoc{Duration: body.Duration, Delay: body.Delay, Easing: body.Easing}
		if !cd.empty() {
			cfg, err := cd.clipConfig()
			if err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			e.entry.Config = &cfg
		}
		return nil
	}

	var raw any
	if err := n.Decode(&raw); err != nil {
		return err
	}
	e.entry = Value(raw)
	return nil
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

// LoadDocument parses a YAML (or JSON) animation document. Unknown keys are
// errors.
func LoadDocument(data []byte) (*Document, error) {
	var f documentFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse animation document: %w", err)
	}

	doc := &Document{Sheet: make(Sheet, len(f.Objects))}

	if f.Defaults.Library != nil {
		lib, err := f.Defaults.Library.clipConfig()
		if err != nil {
			return nil, fmt.Errorf("parse animation document: defaults.library: %w", err)
		}
		// The library level starts from DefaultConfig so a document only
		// needs to name the options it changes.
		merged := Merge(DefaultConfig(), lib)
		doc.Options.Library = &merged
	}
	if len(f.Defaults.Fields) > 0 {
		doc.Options.FieldDefaults = make(map[string]ClipConfig, len(f.Defaults.Fields))
		for name, d := range f.Defaults.Fields {
			cfg, err := d.clipConfig()
			if err != nil {
				return nil, fmt.Errorf("parse animation document: defaults.fields.%s: %w", name, err)
			}
			doc.Options.FieldDefaults[name] = cfg
		}
	}
	if len(f.Defaults.Objects) > 0 {
		doc.Options.ObjectDefaults = make(map[string]ClipConfig, len(f.Defaults.Objects))
		for object, d := range f.Defaults.Objects {
			cfg, err := d.clipConfig()
			if err != nil {
				return nil, fmt.Errorf("parse animation document: defaults.objects.%s: %w", object, err)
			}
			doc.Options.ObjectDefaults[object] = cfg
		}
	}

	for object, kfs := range f.Objects {
		out := make([]Keyframe, 0, len(kfs))
		for _, kd := range kfs {
			kf := Keyframe{Time: kd.Time, Fields: make(map[string]Entry, len(kd.Fields))}
			for name, ed := range kd.Fields {
				kf.Fields[name] = ed.entry
			}
			out = append(out, kf)
		}
		doc.Sheet[object] = out
	}
	return doc, nil
}

// Compile compiles the document against fields.
func (d *Document) Compile(fields FieldSet) (*Timeline, error) {
	return Compile(d.Sheet, fields, d.Options)
}
