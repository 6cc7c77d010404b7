package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

// All geometry values are in PostScript points (72 per inch) - both the LaTeX
// template and the direct renderer work in points natively.

type (
	TemplateFieldName string

	TOCConfig struct {
		Enable     bool `yaml:"enable"`
		Hyperlinks bool `yaml:"hyperlinks"`
		Depth      int  `yaml:"depth" validate:"min=1,max=3"`
	}

	TemplateConfig struct {
		Preset           string          `yaml:"preset" validate:"omitempty,oneof=trade pocket"`
		PageWidth        float64         `yaml:"page_width" validate:"gt=0"`
		PageHeight       float64         `yaml:"page_height" validate:"gt=0"`
		MarginTop        float64         `yaml:"margin_top" validate:"gte=0"`
		MarginBottom     float64         `yaml:"margin_bottom" validate:"gte=0"`
		MarginInside     float64         `yaml:"margin_inside" validate:"gte=0"`
		MarginOutside    float64         `yaml:"margin_outside" validate:"gte=0"`
		BodyFontSize     float64         `yaml:"body_font_size" validate:"gte=6,lte=24"`
		HeadingFontSize  float64         `yaml:"heading_font_size" validate:"gte=8,lte=48"`
		LineSpacing      float64         `yaml:"line_spacing" validate:"gte=1,lte=3"`
		ParagraphSpacing float64         `yaml:"paragraph_spacing" validate:"gte=0"`
		ChapterSpacing   float64         `yaml:"chapter_spacing" validate:"gte=0"`
		TOC              TOCConfig       `yaml:"toc"`
		Header           HeaderStyle     `yaml:"header"`
		PageNumbers      PageNumberStyle `yaml:"page_numbers"`
		PageNumberStart  int             `yaml:"page_number_start" validate:"min=1"`
		CopyrightPage    bool            `yaml:"copyright_page"`
	}

	EngineConfig struct {
		Mode       EngineMode `yaml:"mode"`
		Binary     string     `yaml:"binary" validate:"required"`
		TimeoutSec int        `yaml:"timeout_sec" validate:"min=1,max=600"`
		Attempts   int        `yaml:"attempts" validate:"min=1,max=5"`
	}

	DocumentConfig struct {
		OutputNameTemplate    string         `yaml:"output_name_template"`
		FileNameTransliterate bool           `yaml:"file_name_transliterate"`
		Overwrite             bool           `yaml:"overwrite"`
		Template              TemplateConfig `yaml:"template"`
		Engine                EngineConfig   `yaml:"engine"`
	}

	Config struct {
		Version  int            `yaml:"version" validate:"eq=1"`
		Document DocumentConfig `yaml:"document"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// Page geometry presets. Preset name in configuration, when present,
// overrides explicit geometry values.

// TradePreset is a standard 6x9in trade book.
func TradePreset(t *TemplateConfig) {
	t.PageWidth, t.PageHeight = 432, 648
	t.MarginTop, t.MarginBottom = 54, 54
	t.MarginInside, t.MarginOutside = 54, 36
}

// PocketPreset is a compact 5x8in book with narrow side margins.
func PocketPreset(t *TemplateConfig) {
	t.PageWidth, t.PageHeight = 360, 576
	t.MarginTop, t.MarginBottom = 36, 36
	t.MarginInside, t.MarginOutside = 27, 27
}

func (t *TemplateConfig) applyPreset() error {
	switch t.Preset {
	case "":
	case "trade":
		TradePreset(t)
	case "pocket":
		PocketPreset(t)
	default:
		return fmt.Errorf("unknown page geometry preset %q", t.Preset)
	}
	return nil
}

// TextWidth returns horizontal space available to text.
func (t *TemplateConfig) TextWidth() float64 {
	return t.PageWidth - t.MarginInside - t.MarginOutside
}

// TextHeight returns vertical space available to text.
func (t *TemplateConfig) TextHeight() float64 {
	return t.PageHeight - t.MarginTop - t.MarginBottom
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if haveFile {
		// overwrite cfg values with values from the file
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg, err = unmarshalConfig(data, cfg, haveFile)
		if err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}
	if err := cfg.Document.Template.applyPreset(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
