package config

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// behaviour enum
const (
	PATHS_BEHAVIOUR_INCLUDE = iota
	PATHS_BEHAVIOUR_EXCLUDE = iota
)

// applied policy enum
const (
	PATHS_POLICY_INCLUDE              = "explicit_include_policy"
	PATHS_POLICY_INCLUDE_BY_REGEX     = "explicit_include_by_regex_policy"
	PATHS_POLICY_EXCLUDE              = "explicit_exclude_policy"
	PATHS_POLICY_EXCLUDE_BY_REGEX     = "explicit_exclude_by_regex_policy"
	PATHS_POLICY_CONFLICTING          = "unallowed_definition_in_include_and_exclude_policy"
	PATHS_POLICY_CONFLICTING_BY_REGEX = "unallowed_definition_in_include_or_exclude_and_contradicting_regexp"
	PATHS_POLICY_NO_MATCH_FALLBACK    = "not_matching_fallback_to_all_others"
)

// PathFilter is the transformed outcome of the `paths:` section. It decides by the first segment of an entry's
// path whether the entry takes part in a report.
type PathFilter struct {
	// plain names can be identified through a lookup table
	include map[string]SinglePathConfiguration
	// for regexps we cannot use a lookup table but have to execute each regex
	includeRegExps []SinglePathConfiguration
	exclude        map[string]SinglePathConfiguration
	excludeRegExps []SinglePathConfiguration
	// fallback to that behaviour if a policy does not match or is conflicting
	behaviourForAllOthers int
}

type SinglePathConfiguration struct {
	// either the top-level name or the compiled regular expression's source
	Name                string
	IsRegularExpression bool
	expression          *regexp.Regexp
}

// NewSinglePathConfiguration parses a name or a regular expression written as `/regex/`.
// Returns an error if the regular expression does not compile.
func NewSinglePathConfiguration(nameOrRegExp string) (*SinglePathConfiguration, error) {
	isRegEx := len(nameOrRegExp) > 1 && strings.HasPrefix(nameOrRegExp, "/") && strings.HasSuffix(nameOrRegExp, "/")

	r := &SinglePathConfiguration{
		Name:                nameOrRegExp,
		IsRegularExpression: isRegEx,
	}

	if isRegEx {
		r.Name = strings.TrimSuffix(strings.TrimPrefix(nameOrRegExp, "/"), "/")
		expression, err := regexp.Compile(r.Name)

		if err != nil {
			return nil, err
		}

		r.expression = expression
	}

	return r, nil
}

// ParsePathsSection converts the `paths:` section. A nil section yields a filter that includes everything.
func ParsePathsSection(cfg Raw) *PathFilter {
	r := &PathFilter{
		include:               make(map[string]SinglePathConfiguration),
		exclude:               make(map[string]SinglePathConfiguration),
		behaviourForAllOthers: PATHS_BEHAVIOUR_INCLUDE,
	}

	if cfg == nil {
		return r
	}

	r.include, r.includeRegExps = parsePathList(cfg.StringSlice("include"))
	r.exclude, r.excludeRegExps = parsePathList(cfg.StringSlice("exclude"))

	if cfg.Has("all_others") {
		switch strings.ToLower(cfg.String("all_others")) {
		case "exclude":
			r.behaviourForAllOthers = PATHS_BEHAVIOUR_EXCLUDE
		case "include":
			r.behaviourForAllOthers = PATHS_BEHAVIOUR_INCLUDE
		default:
			log.Warnf("Unknown value '%s' for paths.all_others, defaulting to 'include'", cfg.String("all_others"))
		}
	}

	return r
}

func parsePathList(items []string) (map[string]SinglePathConfiguration, []SinglePathConfiguration) {
	names := make(map[string]SinglePathConfiguration)
	var regExps []SinglePathConfiguration

	for _, item := range items {
		pathConfiguration, err := NewSinglePathConfiguration(item)

		if err != nil {
			log.Errorf("Ignoring path pattern '%s': %s", item, err)
			continue
		}

		if pathConfiguration.IsRegularExpression {
			regExps = append(regExps, *pathConfiguration)
		} else {
			names[pathConfiguration.Name] = *pathConfiguration
		}
	}

	return names, regExps
}

// IsIncluded returns true if the given top-level name is included through some policy
func (self *PathFilter) IsIncluded(topLevel string) bool {
	status, appliedPolicy := GetPathStatus(topLevel, self)

	if status == PATHS_BEHAVIOUR_EXCLUDE {
		log.Debugf("Path %s is excluded (%s)", topLevel, appliedPolicy)

		return false
	}

	return true
}

// hasAtLeastOneMatch returns true if at least one of the regexps matches the given name
func hasAtLeastOneMatch(name string, possibleConfigsWithRegExps []SinglePathConfiguration) bool {
	for _, config := range possibleConfigsWithRegExps {
		if !config.IsRegularExpression || config.expression == nil {
			continue
		}

		if config.expression.MatchString(name) {
			return true
		}
	}

	return false
}

// GetPathStatus calculates the status of a top-level name based upon the defined policies
// @return (status, appliedPolicy)
func GetPathStatus(name string, filter *PathFilter) ( /* status */ int /* appliedPolicy */, string) {
	if filter == nil {
		return PATHS_BEHAVIOUR_INCLUDE, PATHS_POLICY_NO_MATCH_FALLBACK
	}

	_, isExplicitlyIncluded := filter.include[name]
	isIncludedByRegex := hasAtLeastOneMatch(name, filter.includeRegExps)
	isIncluded := isExplicitlyIncluded || isIncludedByRegex

	_, isExplicitlyExcluded := filter.exclude[name]
	isExcludedByRegex := hasAtLeastOneMatch(name, filter.excludeRegExps)
	isExcluded := isExplicitlyExcluded || isExcludedByRegex

	if isExplicitlyIncluded && !isExcluded {
		return PATHS_BEHAVIOUR_INCLUDE, PATHS_POLICY_INCLUDE
	}

	if isIncludedByRegex && !isExcluded {
		return PATHS_BEHAVIOUR_INCLUDE, PATHS_POLICY_INCLUDE_BY_REGEX
	}

	if isExplicitlyExcluded && !isIncluded {
		return PATHS_BEHAVIOUR_EXCLUDE, PATHS_POLICY_EXCLUDE
	}

	if isExcludedByRegex && !isIncluded {
		return PATHS_BEHAVIOUR_EXCLUDE, PATHS_POLICY_EXCLUDE_BY_REGEX
	}

	if isExplicitlyIncluded && isExplicitlyExcluded {
		return filter.behaviourForAllOthers, PATHS_POLICY_CONFLICTING
	}

	// name has been matched by both `include` and `exclude` sections
	if isIncluded && isExcluded {
		return filter.behaviourForAllOthers, PATHS_POLICY_CONFLICTING_BY_REGEX
	}

	return filter.behaviourForAllOthers, PATHS_POLICY_NO_MATCH_FALLBACK
}
