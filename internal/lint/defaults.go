package lint

import m "oaslint.dev/pkg/oaslint/internal/model"

func intPtr(v int) *int { return &v }

// DefaultRules returns the built-in rule set loaded by LoadDefaultRules.
func DefaultRules() []m.RuleSpec {
	return []m.RuleSpec{
		{
			Name:        "openapi-tags",
			Object:      ObjectOpenAPI,
			Description: "openapi object should have non-empty tags array",
			Truthy:      m.StringList{"tags"},
		},
		{
			Name:         "openapi-tags-alphabetical",
			Object:       ObjectOpenAPI,
			Description:  "openapi object should have alphabetical tags",
			Alphabetical: &m.AlphabeticalRule{Properties: "tags", KeyedBy: "name"},
		},
		{
			Name:        "info-contact",
			Object:      ObjectInfo,
			Description: "info object should contain contact object",
			Truthy:      m.StringList{"contact"},
		},
		{
			Name:        "info-description",
			Object:      ObjectInfo,
			Description: "info object should contain description",
			Truthy:      m.StringList{"description"},
		},
		{
			Name:        "contact-properties",
			Object:      ObjectContact,
			Description: "contact object should have name, url and email",
			Truthy:      m.StringList{"name", "url", "email"},
		},
		{
			Name:        "contact-email-format",
			Object:      ObjectContact,
			Description: "contact email should be a valid email address",
			Format:      &m.FormatRule{Property: "email", Type: "email"},
		},
		{
			Name:        "contact-url-format",
			Object:      ObjectContact,
			Description: "contact url should be a valid URI",
			Format:      &m.FormatRule{Property: "url", Type: "uri"},
		},
		{
			Name:        "license-url",
			Object:      ObjectLicense,
			Description: "license object should include url",
			Truthy:      m.StringList{"url"},
		},
		{
			Name:        "operation-operationId",
			Object:      ObjectOperation,
			Description: "operation should have an operationId",
			Truthy:      m.StringList{"operationId"},
		},
		{
			Name:        "operation-summary-or-description",
			Object:      ObjectOperation,
			Description: "operation should have summary or description",
			Or:          []string{"summary", "description"},
		},
		{
			Name:        "operation-tags",
			Object:      ObjectOperation,
			Description: "operation should have non-empty tags array",
			Truthy:      m.StringList{"tags"},
		},
		{
			Name:        "parameter-description",
			Object:      ObjectParameter,
			Description: "parameter objects should have a description",
			Truthy:      m.StringList{"description"},
		},
		{
			Name:        "path-keys-no-trailing-slash",
			Object:      ObjectPaths,
			Description: "paths should not end with a slash",
			NotEndWith:  &m.NotEndWithRule{Property: keyProperty, Value: "/", Omit: "/"},
		},
		{
			Name:        "server-trailing-slash",
			Object:      ObjectServer,
			Description: "server url should not have a trailing slash",
			NotEndWith:  &m.NotEndWithRule{Property: "url", Value: "/", Omit: "/"},
		},
		{
			Name:        "no-script-tags-in-markdown",
			Object:      ObjectAny,
			Description: "markdown descriptions should not contain <script> tags",
			NotContain:  &m.NotContainRule{Properties: []string{"description"}, Value: "<script"},
		},
		{
			Name:        "reference-no-other-properties",
			Object:      ObjectReference,
			Description: "reference objects should only have a $ref property",
			Properties:  intPtr(1),
		},
		{
			Name:        "schema-property-require-description",
			Object:      ObjectSchemaProperty,
			Description: "should have a description",
			Truthy:      m.StringList{"description"},
		},
		{
			Name:        "tag-description",
			Object:      ObjectTag,
			Description: "tag object should have a description",
			Truthy:      m.StringList{"description"},
		},
	}
}
