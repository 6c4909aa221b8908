// Package constants defines the small fixed vocabularies the tokenizer and
// tree builder need: void elements, raw-text/RCDATA elements, and the
// default resource limits from the parser options.
package constants

// VoidElements are elements that have no content and no end tag.
var VoidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// RawTextElements are elements whose content is tokenized as a single text
// run terminated only by a matching end tag.
var RawTextElements = map[string]bool{
	"script": true, "style": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "noscript": true,
}

// RCDATAElements are like raw-text elements but admit the narrow entity
// decoding the tokenizer supports (see tokenizer.TextProcessingMode).
var RCDATAElements = map[string]bool{
	"textarea": true, "title": true,
}

// ScriptDataElement is the single element tokenized in the dedicated
// ScriptData state rather than the generic Rawtext state.
const ScriptDataElement = "script"

// Default resource limits, mirrored from the parser options defaults.
const (
	DefaultMaxTokens               = 1_000_000
	DefaultMaxDepth                = 1_000
	DefaultMaxAttributes           = 100
	DefaultMaxAttributeNameLength  = 256
	DefaultMaxAttributeValueLength = 8192
	DefaultMaxTextLength           = 1 << 20 // 1 MiB

	StrictMaxTokens     = 100_000
	StrictMaxDepth      = 100
	StrictMaxAttributes = 50

	PerformanceMaxTokens = 10_000_000
	PerformanceMaxDepth  = 10_000
)

// IsVoid reports whether name is a void element under the given override
// set. A nil override falls back to VoidElements.
func IsVoid(name string, overrides map[string]bool) bool {
	if overrides != nil {
		return overrides[name]
	}
	return VoidElements[name]
}
