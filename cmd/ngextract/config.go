package main

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dougaird/angular-text-extractor/pkg/session"
)

// projectConfigFile is looked up in the working directory.
const projectConfigFile = ".ngextract.yaml"

// ProjectConfig holds the contents of .ngextract.yaml. Every field is
// optional; flags override file values, file values override defaults.
type ProjectConfig struct {
	SrcPath          string   `yaml:"src_path"`
	OutputPath       string   `yaml:"output_path"`
	Locale           string   `yaml:"locale"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ServicePath      string   `yaml:"service_path"`
	Include          []string `yaml:"include"`
	Exclude          []string `yaml:"exclude"`
	SkipLogic        bool     `yaml:"skip_logic"`
	ComponentContext bool     `yaml:"component_context"`
}

// loadProjectConfig reads .ngextract.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(projectConfigFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveConfig merges flags over the project file over the defaults.
// Include patterns replace the default set; exclude patterns accumulate.
func resolveConfig(flags *extractFlags, logger *slog.Logger) session.Config {
	cfg := session.DefaultConfig()
	cfg.SrcPath = "."

	file, err := loadProjectConfig()
	if err != nil {
		logger.Warn("ignoring unreadable project config", "file", projectConfigFile, "error", err)
	}
	if file != nil {
		applyString(&cfg.SrcPath, file.SrcPath)
		applyString(&cfg.OutputPath, file.OutputPath)
		applyString(&cfg.Locale, file.Locale)
		applyString(&cfg.KeyPrefix, file.KeyPrefix)
		applyString(&cfg.ServicePath, file.ServicePath)
		if len(file.Include) > 0 {
			cfg.Include = file.Include
		}
		cfg.Exclude = append(cfg.Exclude, file.Exclude...)
		cfg.SkipLogic = cfg.SkipLogic || file.SkipLogic
		cfg.UseComponentContext = cfg.UseComponentContext || file.ComponentContext
	}

	applyString(&cfg.SrcPath, flags.src)
	applyString(&cfg.OutputPath, flags.output)
	applyString(&cfg.Locale, flags.locale)
	applyString(&cfg.KeyPrefix, flags.prefix)
	applyString(&cfg.ServicePath, flags.servicePath)
	if len(flags.include) > 0 {
		cfg.Include = flags.include
	}
	cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	if flags.replace {
		cfg.Replace = true
	}
	if flags.skipLogic {
		cfg.SkipLogic = true
	}
	if flags.componentContext {
		cfg.UseComponentContext = true
	}
	return cfg
}

func applyString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
