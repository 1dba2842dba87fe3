// Package config loads generator settings from a YAML file, a plugin
// parameter string and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"

	"github.com/broady/idlgen/namespace"
)

// ErrInvalid is returned when a configuration value is malformed.
var ErrInvalid = errors.New("invalid configuration")

// Defaults.
const (
	DefaultExtension = ".java"
	DefaultWorkers   = 1
)

// namespacePrefix marks parameter keys that fill the namespace table:
// "namespace.test=com.corp.test".
const namespacePrefix = "namespace."

var (
	validate      = validator.New(validator.WithRequiredStructEnabled())
	schemaDecoder = schema.NewDecoder()
)

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// Config holds the settings of a generation run.
type Config struct {
	// OutDir is the root directory for generated sources.
	OutDir string `yaml:"out" schema:"out" validate:"required"`

	// Namespaces maps module name prefixes to Java package prefixes.
	// e.g. {"test": "com.corp.test"}
	Namespaces map[string]string `yaml:"namespaces" schema:"-" validate:"dive,keys,required,endkeys"`

	// Extension is the generated file extension.
	// Default: ".java"
	Extension string `yaml:"extension" schema:"extension" validate:"required,startswith=.,excludes=/"`

	// Workers bounds concurrent definition processing.
	// Default: 1
	Workers int `yaml:"workers" schema:"workers" validate:"gte=1,lte=256"`

	// KeepGoing continues past failing definitions.
	KeepGoing bool `yaml:"keep_going" schema:"keep_going"`

	// Schemas are the schema files to load.
	Schemas []string `yaml:"schemas" schema:"schema" validate:"dive,required"`
}

// Load reads a YAML configuration file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, nil
}

// ApplyParams overlays a comma-separated list of key=value pairs onto c,
// in the style of compiler plugin parameters:
//
//	out=gen,workers=4,namespace.test=com.corp.test
//
// Repeating the schema key appends to Schemas.
func (c *Config) ApplyParams(params string) error {
	values := url.Values{}
	for _, pair := range strings.Split(params, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%w: parameter %q is not key=value", ErrInvalid, pair)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if module, ok := strings.CutPrefix(key, namespacePrefix); ok {
			if module == "" {
				return fmt.Errorf("%w: parameter %q has no module name", ErrInvalid, pair)
			}
			c.SetNamespace(module, value)
			continue
		}
		values.Add(key, value)
	}
	if len(values) == 0 {
		return nil
	}

	if schemas := values["schema"]; len(schemas) > 0 {
		values["schema"] = append(append([]string(nil), c.Schemas...), schemas...)
	}
	if err := schemaDecoder.Decode(c, values); err != nil {
		return fmt.Errorf("%w: parameters: %v", ErrInvalid, err)
	}
	return nil
}

// SetNamespace adds one entry to the namespace table.
func (c *Config) SetNamespace(module, pkg string) {
	if c.Namespaces == nil {
		c.Namespaces = make(map[string]string)
	}
	c.Namespaces[module] = pkg
}

// Merge overlays the non-zero fields of o onto c. Namespace entries are
// merged key by key and schemas are appended.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	if o.OutDir != "" {
		c.OutDir = o.OutDir
	}
	for k, v := range o.Namespaces {
		c.SetNamespace(k, v)
	}
	if o.Extension != "" {
		c.Extension = o.Extension
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.KeepGoing {
		c.KeepGoing = true
	}
	c.Schemas = append(c.Schemas, o.Schemas...)
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Extension == "" {
		c.Extension = DefaultExtension
	} else if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}

// Validate checks c after defaults have been applied.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Namespace()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(messages, "; "))
}

// Mapper returns the namespace mapper for the configured table.
func (c *Config) Mapper() *namespace.Mapper {
	return namespace.New(c.Namespaces)
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "startswith":
		return fmt.Sprintf("must start with %q", ve.Param())
	case "excludes":
		return fmt.Sprintf("must not contain %q", ve.Param())
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
