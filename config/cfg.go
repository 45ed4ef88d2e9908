package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"mdbc/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	SourcesConfig struct {
		Languages  []string        `yaml:"languages" validate:"required,min=1,dive,required,excludesall=/"`
		Extensions []string        `yaml:"extensions" validate:"dive,startswith=."`
		Sort       common.SortMode `yaml:"sort" validate:"gte=0"`
	}

	ReferencesConfig struct {
		ImagesDir  string `yaml:"images_dir" validate:"required"`
		SiteURL    string `yaml:"site_url" validate:"required,url"`
		XRefMarker string `yaml:"xref_marker" validate:"required,excludesall=/)"`
		VectorExt  string `yaml:"vector_ext" validate:"required,startswith=."`
		RasterExt  string `yaml:"raster_ext" validate:"required,startswith=.,nefield=VectorExt"`
	}

	ImagesConfig struct {
		Convert       bool              `yaml:"convert"`
		Rasterizer    common.Rasterizer `yaml:"rasterizer" validate:"gte=0"`
		Width         int               `yaml:"width" validate:"gte=0,max=8192"`
		KeepGenerated bool              `yaml:"keep_generated"`
	}

	EpubConfig struct {
		TOC            bool   `yaml:"toc"`
		CoverImagePath string `yaml:"cover_image_path" sanitize:"assure_file_access"`
	}

	PDFConfig struct {
		DocumentClass      string `yaml:"document_class" validate:"required"`
		TOC                bool   `yaml:"toc"`
		Listings           bool   `yaml:"listings"`
		ListingsHeaderPath string `yaml:"listings_header_path" sanitize:"assure_file_access"`
		Engine             string `yaml:"engine" validate:"required"`
	}

	HTMLConfig struct {
		StylesheetPath string `yaml:"stylesheet_path" sanitize:"assure_file_access"`
	}

	DocumentConfig struct {
		Title                 string             `yaml:"title" validate:"required"`
		Formats               []common.OutputFmt `yaml:"formats" validate:"required,min=1"`
		OutputNameTemplate    string             `yaml:"output_name_template"`
		FileNameTransliterate bool               `yaml:"file_name_transliterate"`
		Epub                  EpubConfig         `yaml:"epub"`
		PDF                   PDFConfig          `yaml:"pdf"`
		HTML                  HTMLConfig         `yaml:"html"`
	}

	ToolsConfig struct {
		Pandoc   string `yaml:"pandoc" validate:"required"`
		Inkscape string `yaml:"inkscape" validate:"required"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Sources    SourcesConfig    `yaml:"sources"`
		References ReferencesConfig `yaml:"references"`
		Images     ImagesConfig     `yaml:"images"`
		Document   DocumentConfig   `yaml:"document"`
		Tools      ToolsConfig      `yaml:"tools"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
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
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file, lists are replaced as a whole
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
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
