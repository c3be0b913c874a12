// Package config provides configuration handling for ltkgen.
package config

// DefaultNamespace is the namespace of the LLRP binary encoding definition.
const DefaultNamespace = "http://www.llrp.org/ltk/schema/core/encoding/binary/1.0"

// DefaultTypeMappings returns the schema to Go type mappings.
func DefaultTypeMappings() map[string]string {
	return map[string]string{
		// Opaque
		"Custom": "interface{}",

		// Complex entities referenced by name
		"LLRPStatus":                "LLRPStatus",
		"GeneralDeviceCapabilities": "GeneralDeviceCapabilities",
		"LLRPCapabilities":          "LLRPCapabilities",
		"RegulatoryCapabilities":    "RegulatoryCapabilities",
		"ROSpec":                    "ROSpec",
		"AccessSpec":                "AccessSpec",
		"TagReportData":             "TagReportData",
		"ClientRequestResponse":     "ClientRequestResponse",
		"Identification":            "Identification",

		// Unsigned
		"u1":  "bool",
		"u8":  "uint8",
		"u16": "uint16",
		"u32": "uint32",
		"u64": "uint64",

		// Signed (s8 widens to int16)
		"s8":  "int16",
		"s16": "int16",
		"s32": "int32",
	}
}

// DefaultSentinelTypes returns the variable-length and bit-packed encodings
// that are deliberately left unresolved.
func DefaultSentinelTypes() []string {
	return []string{
		"bytesToEnd",
		"u2",
		"u96",
		"u1v",
		"u8v",
		"u16v",
		"u32v",
		"utf8v",
	}
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		Package:       "ltkgo",
		OutputDir:     ".",
		TagKey:        "xml",
		Namespace:     DefaultNamespace,
		Sentinel:      "unknownType",
		Opaque:        "interface{}",
		EnumTests:     false,
		ResponseIndex: true,
		Workers:       1,
	}
}
