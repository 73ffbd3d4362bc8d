package colorhl

// Grammar is the configurable description of every color syntax the engine
// recognizes. It is compiled once into a single composite pattern.
type Grammar struct {
	// Channels maps a channel name to a regex fragment. A value that is
	// exactly the name of another channel makes the channel an alias.
	Channels map[string]string `yaml:"channels"`
	// Formats maps a format name to its definition.
	Formats map[string]Format `yaml:"formats"`
}

// Format is one color syntax, such as "rgba" or "sharp6".
type Format struct {
	// Pattern is a regex template. Named groups (?<G>) are replaced with
	// the alternation of the channels bound to G in Groups.
	Pattern string `yaml:"pattern"`
	// Groups binds each named group to one or more channel names.
	Groups map[string][]string `yaml:"groups,omitempty"`
	// After lists formats that must precede this one in the composite
	// pattern, so that more specific syntaxes win the alternation.
	After []string `yaml:"after,omitempty"`
	// White is an example rendering of opaque white, for diagnostics.
	White string `yaml:"white,omitempty"`
	// Description is a human readable summary.
	Description string `yaml:"description,omitempty"`
	// Converter names the converter kind; empty means the format name.
	Converter string `yaml:"converter,omitempty"`
}

// ConverterName returns the converter kind for a format named name.
func (f Format) ConverterName(name string) string {
	if f.Converter != "" {
		return f.Converter
	}
	return name
}

// EmptyChannel is the built-in channel matching the empty string, used for
// optional trailing groups such as a missing alpha.
const EmptyChannel = "empty"
