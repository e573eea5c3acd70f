package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResolvedConfig is the linter configuration after defaults have been merged in.
type ResolvedConfig struct {
	LoadDefaultRules bool       `yaml:"loadDefaultRules" json:"loadDefaultRules"`
	Rules            []RuleSpec `yaml:"rules" json:"rules" validate:"dive"`
}

// DefaultConfig returns the configuration used when a project has none.
func DefaultConfig() ResolvedConfig {
	return ResolvedConfig{
		LoadDefaultRules: true,
		Rules:            []RuleSpec{},
	}
}

// RuleSpec is a declarative lint rule. The runner passes rules through to the
// lint engine without looking at them.
type RuleSpec struct {
	Name        string `yaml:"name" json:"name" validate:"required"`
	Object      string `yaml:"object,omitempty" json:"object,omitempty" validate:"required_without=Enabled"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	Truthy       StringList        `yaml:"truthy,omitempty" json:"truthy,omitempty"`
	Falsy        StringList        `yaml:"falsy,omitempty" json:"falsy,omitempty"`
	Or           []string          `yaml:"or,omitempty" json:"or,omitempty"`
	Xor          []string          `yaml:"xor,omitempty" json:"xor,omitempty"`
	Properties   *int              `yaml:"properties,omitempty" json:"properties,omitempty" validate:"omitempty,min=0"`
	Pattern      *PatternRule      `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	NotContain   *NotContainRule   `yaml:"notContain,omitempty" json:"notContain,omitempty"`
	NotEndWith   *NotEndWithRule   `yaml:"notEndWith,omitempty" json:"notEndWith,omitempty"`
	MaxLength    *MaxLengthRule    `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Alphabetical *AlphabeticalRule `yaml:"alphabetical,omitempty" json:"alphabetical,omitempty"`
	Format       *FormatRule       `yaml:"format,omitempty" json:"format,omitempty"`
}

// IsEnabled reports whether the rule takes part in linting.
func (r RuleSpec) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// PatternRule requires a string property (or each key when Property is
// "$key") to match a regular expression.
type PatternRule struct {
	Property   string `yaml:"property" json:"property" validate:"required"`
	Value      string `yaml:"value" json:"value" validate:"required"`
	Omit       string `yaml:"omit,omitempty" json:"omit,omitempty"`
	Split      string `yaml:"split,omitempty" json:"split,omitempty"`
	StartsWith string `yaml:"startsWith,omitempty" json:"startsWith,omitempty"`
}

// NotContainRule forbids a substring in the listed string properties.
type NotContainRule struct {
	Properties []string `yaml:"properties" json:"properties" validate:"required,min=1"`
	Value      string   `yaml:"value" json:"value" validate:"required"`
}

// NotEndWithRule forbids a suffix on a string property (or each key when
// Property is "$key"). A value equal to Omit is exempt.
type NotEndWithRule struct {
	Property string `yaml:"property" json:"property" validate:"required"`
	Value    string `yaml:"value" json:"value" validate:"required"`
	Omit     string `yaml:"omit,omitempty" json:"omit,omitempty"`
}

// MaxLengthRule caps the length of a string property.
type MaxLengthRule struct {
	Property string `yaml:"property" json:"property" validate:"required"`
	Value    int    `yaml:"value" json:"value" validate:"min=1"`
}

// AlphabeticalRule requires an array property to be sorted, optionally by a
// field of its elements.
type AlphabeticalRule struct {
	Properties string `yaml:"properties" json:"properties" validate:"required"`
	KeyedBy    string `yaml:"keyedBy,omitempty" json:"keyedBy,omitempty"`
}

// FormatRule requires a string property to satisfy a named string format
// such as "email" or "uri".
type FormatRule struct {
	Property string `yaml:"property" json:"property" validate:"required"`
	Type     string `yaml:"type" json:"type" validate:"required"`
}

// StringList accepts either a single string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}

		*s = items

		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}
