package config

import "time"

// Built-in values matching the API mapping documents this tool was written for.
const (
	DefaultInputDir     = "cuda"
	DefaultInputPattern = "*.md"
	DefaultTimeout      = 5 * time.Second
	DefaultLogFile      = "apilinks.log"

	DefaultPaddleTargetURL = "https://www.paddlepaddle.org.cn/documentation/docs/zh/develop/"
	DefaultPaddleMarker    = `window.docInfo.version="develop"`
	DefaultTorchVersion    = "stable"

	defaultPrefixSplitKey  = "api/"
	defaultVersionSplitKey = "docs/"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Policies: DefaultPolicies()}
	cfg.applyDefaults()
	return cfg
}

// Positions of the policy headings in a mapping document, used when no
// heading link name carries the policy keyword.
const (
	DefaultTorchSectionIndex  = 1
	DefaultPaddleSectionIndex = 2
)

// DefaultPolicies returns the two stock policies: paddle links must live under
// the develop docs and carry the develop marker, torch links must point at
// the stable docs.
func DefaultPolicies() []PolicyConfig {
	paddleIndex, torchIndex := DefaultPaddleSectionIndex, DefaultTorchSectionIndex
	return []PolicyConfig{
		{
			Name:      "paddle",
			Kind:      PolicyKindPrefix,
			Section:   SectionConfig{Keyword: "paddle.", Index: &paddleIndex},
			SplitKey:  defaultPrefixSplitKey,
			TargetURL: DefaultPaddleTargetURL,
			Segment:   defaultPrefixSplitKey,
			Marker:    DefaultPaddleMarker,
		},
		{
			Name:          "torch",
			Kind:          PolicyKindVersion,
			Section:       SectionConfig{Keyword: "torch.", Index: &torchIndex},
			SplitKey:      defaultVersionSplitKey,
			TargetVersion: DefaultTorchVersion,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Input.Dir == "" {
		c.Input.Dir = DefaultInputDir
	}
	if c.Input.Pattern == "" {
		c.Input.Pattern = DefaultInputPattern
	}
	if c.Markdown.SplitMode == "" {
		c.Markdown.SplitMode = SplitModeLines
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = Duration(DefaultTimeout)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelDebug
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Logging.File == "" {
		c.Logging.File = DefaultLogFile
	}
	if len(c.Policies) == 0 {
		c.Policies = DefaultPolicies()
	}

	for i := range c.Policies {
		p := &c.Policies[i]
		switch p.Kind {
		case PolicyKindPrefix:
			if p.SplitKey == "" {
				p.SplitKey = defaultPrefixSplitKey
			}
			// The rebuilt URL re-inserts the split key unless told otherwise.
			if p.Segment == "" {
				p.Segment = p.SplitKey
			}
		case PolicyKindVersion:
			if p.SplitKey == "" {
				p.SplitKey = defaultVersionSplitKey
			}
		}
	}
}
