// json-gpo converts Windows policy template trees (ADMX/ADML) into
// language-specific JSON documents.
//
// A run scans a source tree for definition files, resolves the category and
// policy graph across namespaces, and projects it once per requested language
// using that language's resource files. Malformed input degrades to warnings;
// the only fatal input condition is a source tree without any definition
// files.
//
// Usage:
//
//	# Convert a template tree for two languages
//	json-gpo convert --source ./PolicyDefinitions --out ./out --lang en-US --lang de-DE
//
//	# Drive a run from a config file
//	json-gpo convert --config run.yaml
//
//	# Check a tree without writing output
//	json-gpo lint --source ./PolicyDefinitions --strict
//
//	# Show version information
//	json-gpo version
package main

func main() {
	Execute()
}
