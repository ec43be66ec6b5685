package config

import (
	"errors"
	"fmt"
)

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Input.Dir == "" {
		errs = append(errs, errors.New("input.dir is required"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout.Std()))
	}

	seen := make(map[string]struct{}, len(c.Policies))
	for i, p := range c.Policies {
		label := fmt.Sprintf("policies[%d]", i)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", label))
		} else {
			label = fmt.Sprintf("policies[%d] (%s)", i, p.Name)
			if _, dup := seen[p.Name]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate policy name", label))
			}
			seen[p.Name] = struct{}{}
		}

		switch p.Kind {
		case PolicyKindPrefix:
			if p.TargetURL == "" {
				errs = append(errs, fmt.Errorf("%s: target_url is required for prefix policies", label))
			}
		case PolicyKindVersion:
			if p.TargetVersion == "" {
				errs = append(errs, fmt.Errorf("%s: target_version is required for version policies", label))
			}
		case "":
			errs = append(errs, fmt.Errorf("%s: kind is required", label))
		default:
			errs = append(errs, fmt.Errorf("%s: unknown kind %q", label, p.Kind))
		}

		if p.Section.Keyword == "" && p.Section.Index == nil {
			errs = append(errs, fmt.Errorf("%s: section needs a keyword or an index", label))
		}
		if p.Section.Index != nil && *p.Section.Index < 0 {
			errs = append(errs, fmt.Errorf("%s: section.index must not be negative", label))
		}
	}

	return errors.Join(errs...)
}
