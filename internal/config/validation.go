package config

import (
	"fmt"
	"net"
	"strings"

	pulseerrors "github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/logging"
	"github.com/conneroisu/webpulse/internal/report"
	"github.com/conneroisu/webpulse/internal/validation"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation Errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    - %s\n", suggestion))
			}
		}
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("Validation Warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", warning.Field, warning.Message))
			for _, suggestion := range warning.Suggestions {
				builder.WriteString(fmt.Sprintf("    - %s\n", suggestion))
			}
		}
	}

	return builder.String()
}

// Validate checks config and returns an ERR_INVALID_CONFIG error describing
// the first problem found.
func Validate(config *Config) error {
	result := ValidateConfigWithDetails(config)
	if !result.HasErrors() {
		return nil
	}

	first := result.Errors[0]
	return pulseerrors.NewConfigError(pulseerrors.ErrCodeConfigInvalid, first.Error()).
		WithComponent("config").
		WithContext("field", first.Field).
		WithContext("errors", len(result.Errors))
}

// ValidateConfigWithDetails performs comprehensive validation with detailed feedback
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateAnalysisConfig(&config.Analysis, result)
	validateOutputConfig(&config.Output, result)
	validateLogConfig(&config.Log, result)
	validateWatchConfig(&config.Watch, result)

	result.Valid = !result.HasErrors()

	return result
}

func validateAnalysisConfig(config *AnalysisConfig, result *ValidationResult) {
	if config.Workers < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "analysis.workers",
			Value:   config.Workers,
			Message: fmt.Sprintf("worker count %d cannot be negative", config.Workers),
			Suggestions: []string{
				"Use 0 to scan with one worker per CPU",
			},
		})
	}

	sizes := []struct {
		field string
		value int64
	}{
		{"analysis.max_file_size", config.MaxFileSize},
		{"analysis.max_manifest_size", config.MaxManifestSize},
		{"analysis.max_rush_size", config.MaxRushSize},
	}
	for _, size := range sizes {
		if size.value < 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   size.field,
				Value:   size.value,
				Message: fmt.Sprintf("size limit %d cannot be negative", size.value),
				Suggestions: []string{
					"Sizes are given in bytes, 0 selects the built-in limit",
				},
			})
		}
	}
	if config.MaxManifestSize > 0 && config.MaxFileSize > 0 && config.MaxManifestSize > config.MaxFileSize {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "analysis.max_manifest_size",
			Value:   config.MaxManifestSize,
			Message: "manifest limit exceeds the file limit, larger manifests are skipped anyway",
		})
	}

	for _, dir := range config.ExtraSkipDirs {
		if err := validateSkipDir(dir); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "analysis.extra_skip_dirs",
				Value:   dir,
				Message: err.Error(),
				Suggestions: []string{
					"Skip entries are plain directory names such as 'vendor' or 'tmp'",
				},
			})
		}
	}
}

func validateSkipDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("skip directory name cannot be empty")
	}
	if strings.ContainsAny(dir, `/\`) {
		return fmt.Errorf("skip directory %q must not contain path separators", dir)
	}
	if strings.Contains(dir, "..") {
		return fmt.Errorf("skip directory %q must not contain '..'", dir)
	}
	return nil
}

func validateOutputConfig(config *OutputConfig, result *ValidationResult) {
	if _, err := report.ParseFormat(config.Format); err != nil {
		available := make([]string, 0, len(report.Formats))
		for _, format := range report.Formats {
			available = append(available, string(format))
		}
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.format",
			Value:   config.Format,
			Message: err.Error(),
			Suggestions: []string{
				"Available formats: " + strings.Join(available, ", "),
			},
		})
	}
}

func validateLogConfig(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.level",
			Value:   config.Level,
			Message: err.Error(),
			Suggestions: []string{
				"Available levels: debug, info, warn, error, fatal",
			},
		})
	}

	switch config.Format {
	case "text", "json":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.format",
			Value:   config.Format,
			Message: fmt.Sprintf("unknown log format %q", config.Format),
			Suggestions: []string{
				"Use 'text' for terminals or 'json' for log collectors",
			},
		})
	}

	if config.MaxSizeMB < 0 || config.MaxBackups < 0 || config.MaxAgeDays < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log",
			Value:   []int{config.MaxSizeMB, config.MaxBackups, config.MaxAgeDays},
			Message: "log rotation limits cannot be negative",
		})
	}
}

func validateWatchConfig(config *WatchConfig, result *ValidationResult) {
	if config.Debounce < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "watch.debounce",
			Value:   config.Debounce,
			Message: "debounce window cannot be negative",
		})
	}

	if config.Serve != "" {
		if _, _, err := net.SplitHostPort(config.Serve); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "watch.serve",
				Value:   config.Serve,
				Message: err.Error(),
				Suggestions: []string{
					"Use host:port, for example 'localhost:7070' or ':7070'",
				},
			})
		}
	}

	for _, origin := range config.OpenOrigin {
		if strings.TrimSpace(origin) == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "watch.open_origin",
				Value:   origin,
				Message: "empty origin entry is ignored",
			})
			continue
		}
		if _, err := validation.OriginHost(origin); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "watch.open_origin",
				Value:   origin,
				Message: err.Error(),
				Suggestions: []string{
					"Use a host such as 'dev.example.com:8443' or a URL such as 'https://dev.example.com'",
				},
			})
		}
	}
}
