package config

import (
	"fmt"

	"git.home.luguber.info/inful/apilinks/internal/foundation/normalization"
)

// SplitMode selects how documents are split into sections.
type SplitMode string

const (
	SplitModeLines      SplitMode = "lines"
	SplitModeCommonMark SplitMode = "commonmark"
)

var splitModeNormalizer = normalization.NewNormalizer("split mode", map[string]SplitMode{
	"lines":      SplitModeLines,
	"commonmark": SplitModeCommonMark,
}, SplitModeLines)

// PolicyKind enumerates the supported correction rules.
type PolicyKind string

const (
	PolicyKindPrefix  PolicyKind = "prefix"
	PolicyKindVersion PolicyKind = "version"
)

var policyKindNormalizer = normalization.NewNormalizer("policy kind", map[string]PolicyKind{
	"prefix":  PolicyKindPrefix,
	"version": PolicyKindVersion,
}, "")

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}, LogLevelDebug)

// NormalizeLogLevel maps user input to a LogLevel, defaulting to debug.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// normalize canonicalizes enumerations and rejects unknown spellings.
func (c *Config) normalize() error {
	var err error
	if c.Markdown.SplitMode, err = splitModeNormalizer.Parse(string(c.Markdown.SplitMode)); err != nil {
		return err
	}
	if c.Logging.Level, err = logLevelNormalizer.Parse(string(c.Logging.Level)); err != nil {
		return err
	}
	if c.Logging.Format, err = logFormatNormalizer.Parse(string(c.Logging.Format)); err != nil {
		return err
	}
	for i := range c.Policies {
		p := &c.Policies[i]
		if p.Kind, err = policyKindNormalizer.Parse(string(p.Kind)); err != nil {
			return fmt.Errorf("policies[%d]: %w", i, err)
		}
	}
	return nil
}
