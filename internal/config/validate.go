package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validBranchName rejects obviously malformed git branch names.
func validBranchName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "/") {
		return false
	}
	return !strings.ContainsAny(name, " ~^:?*[\\")
}

// Validate checks a Config for structural and semantic errors.
// It returns a slice of all validation errors found (empty if valid).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.OutputDir == "" {
		errs = append(errs, ValidationError{Field: "output_dir", Message: "is required"})
	}

	if len(cfg.Branches) == 0 {
		errs = append(errs, ValidationError{Field: "branches", Message: "at least one branch is required"})
	}
	seen := make(map[string]bool)
	for i, b := range cfg.Branches {
		field := fmt.Sprintf("branches[%d]", i)
		if !validBranchName(b) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid branch name %q", b),
			})
			continue
		}
		if seen[b] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate branch %q", b),
			})
		}
		seen[b] = true
	}

	if cfg.TokenEnv != "" && strings.ContainsAny(cfg.TokenEnv, "= \t") {
		errs = append(errs, ValidationError{
			Field:   "token_env",
			Message: fmt.Sprintf("invalid environment variable name %q", cfg.TokenEnv),
		})
	}

	return errs
}
