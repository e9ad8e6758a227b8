// Package rules provides the built-in lint rules for supa-mdx-lint.
//
// # Rules
//
//   - Rule001HeadingCase: Headings should be in sentence case
//
//   - Rule002AdmonitionTypes: Admonitions must have a valid type
//
//   - Rule003Spelling: Words should be spelled correctly
//
//   - Rule004ExcludeWords: Configured words and phrases should not be used
//
//   - Rule005AdmonitionNewlines: Admonitions must have empty lines between tags and content
//
//   - Rule006NoAbsoluteUrls: Links to the documentation site should be relative
//
// # Rule IDs
//
// Rule names are stable: they key rule tables in the configuration file and
// appear in lint directives such as
//
//	{/* supa-mdx-lint-disable-next-line Rule001HeadingCase */}
//
// # Registration
//
// Rules register themselves with lint.DefaultRegistry during init. Use
// RegisterAll to populate another registry.
package rules
