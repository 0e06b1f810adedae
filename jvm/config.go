package jvm

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
)

// Attach modes for Config.Attach.
const (
	AttachDaemon = "daemon"
	AttachNormal = "normal"
)

// Config describes how to embed the VM.
//
//	backend: jni
//	version: "1.8"
//	exceptions: true
//	options: ["-Xmx256m", "-Xrs"]
//	properties:
//	  java.class.path: /opt/app/lib/app.jar
type Config struct {
	// Backend is a registered engine backend name. Empty selects the default.
	Backend string `yaml:"backend" json:"backend,omitempty" validate:"omitempty,printascii" jsonschema:"description=Registered VM backend; empty selects jni when compiled in"`
	// Version is the JNI version, "1.1" through "1.8".
	Version string `yaml:"version" json:"version,omitempty" validate:"omitempty,oneof=1.1 1.2 1.4 1.6 1.8" jsonschema:"enum=1.1,enum=1.2,enum=1.4,enum=1.6,enum=1.8,default=1.6"`
	// Attach is the default attach mode for threads.
	Attach string `yaml:"attach" json:"attach,omitempty" validate:"omitempty,oneof=daemon normal" jsonschema:"enum=daemon,enum=normal,default=daemon"`
	// Options are passed to the VM verbatim.
	Options []string `yaml:"options" json:"options,omitempty" validate:"dive,startswith=-" jsonschema:"description=VM start-up options such as -Xmx256m"`
	// Properties become -Dkey=value options, after Options, in key order.
	Properties map[string]string `yaml:"properties" json:"properties,omitempty" validate:"dive,keys,required,excludesall==,endkeys" jsonschema:"description=System properties"`
	// Exceptions returns Java exceptions as errors instead of logging them.
	Exceptions bool `yaml:"exceptions" json:"exceptions,omitempty" jsonschema:"description=Return Java exceptions as errors"`
}

var validate = validator.New()

// DefaultConfig returns the configuration Get uses.
func DefaultConfig() Config {
	return Config{Version: engine.DefaultVersion.String(), Attach: AttachDaemon}
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindConfiguration, err, "read "+path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindConfiguration, err, "decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.PhaseConfig, errors.KindConfiguration, err, "validate configuration")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Namespace()+": failed "+fe.Tag()+" "+fe.Param())
	}
	return errors.New(errors.PhaseConfig, errors.KindConfiguration).
		Cause(err).
		Detail("invalid configuration: %s", strings.Join(msgs, "; ")).
		Build()
}

// JNIVersion returns the configured version, or the default.
func (c Config) JNIVersion() (engine.Version, error) {
	return engine.ParseVersion(c.Version)
}

// StartupOptions returns Options followed by one -Dkey=value per property.
func (c Config) StartupOptions() []string {
	opts := append([]string(nil), c.Options...)
	keys := make([]string, 0, len(c.Properties))
	for k := range c.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, "-D"+k+"="+c.Properties[k])
	}
	return opts
}

// Schema returns the JSON Schema of Config.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	return r.Reflect(&Config{})
}
