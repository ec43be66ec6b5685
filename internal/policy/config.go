package policy

import (
	"fmt"

	"git.home.luguber.info/inful/apilinks/internal/config"
)

// FromConfig builds the runtime policy for a validated policy entry.
func FromConfig(pc config.PolicyConfig) (Policy, error) {
	p := Policy{
		Name:    pc.Name,
		Section: Locator{Keyword: pc.Section.Keyword},
		Marker:  pc.Marker,
	}
	if pc.Section.Index != nil {
		p.Section.Index = *pc.Section.Index
		p.Section.HasIndex = true
	}

	switch pc.Kind {
	case config.PolicyKindPrefix:
		p.Rule = PrefixRule{SplitKey: pc.SplitKey, TargetURL: pc.TargetURL, Segment: pc.Segment}
	case config.PolicyKindVersion:
		p.Rule = VersionRule{SplitKey: pc.SplitKey, TargetVersion: pc.TargetVersion}
	default:
		return Policy{}, fmt.Errorf("policy %q: unsupported kind %q", pc.Name, pc.Kind)
	}
	return p, nil
}

// AllFromConfig builds every configured policy, keeping their order.
func AllFromConfig(cfg *config.Config) ([]Policy, error) {
	out := make([]Policy, 0, len(cfg.Policies))
	for _, pc := range cfg.Policies {
		p, err := FromConfig(pc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
