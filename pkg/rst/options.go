package rst

// ParseOptions are the configuration flags from spec §6.2. They are
// usually populated from a project's .rst2x.yaml via internal/rconfig,
// or overridden per-invocation from CLI flags.
type ParseOptions struct {
	// SkipPounds strips up to two leading '#' per line, for RST embedded
	// in source-code comments.
	SkipPounds bool
	// SupportSmileys recognizes the smiley table in inline context.
	SupportSmileys bool
	// SupportRawDirective honors the `raw` directive. Disable for
	// untrusted input.
	SupportRawDirective bool
	// SupportMarkdown enables fenced ``` code blocks in inline context.
	SupportMarkdown bool
}

// FindFileFunc resolves a directive file argument to a readable path,
// returning "" when not found. The default implementation
// (internal/rpath.DefaultFindFile) expands a leading ~ and checks
// existence.
type FindFileFunc func(name string) string

// MsgKind enumerates the diagnostic kinds from spec §6.4.
type MsgKind int

const (
	MsgCannotOpenFile MsgKind = iota
	MsgExpected
	MsgGridTableNotImplemented
	MsgNewSectionExpected
	MsgGeneralParseError
	MsgInvalidDirective
	MsgRedefinitionOfLabel
	MsgUnknownSubstitution
	MsgUnsupportedLanguage
	MsgUnsupportedField
	MsgUnsupportedRawHTML
)

// Severity classifies a MsgKind as Error, Warning, or Hint per spec §7.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

var msgSeverity = map[MsgKind]Severity{
	MsgCannotOpenFile:          SeverityError,
	MsgExpected:                SeverityError,
	MsgGridTableNotImplemented: SeverityError,
	MsgNewSectionExpected:      SeverityError,
	MsgGeneralParseError:       SeverityError,
	MsgInvalidDirective:        SeverityError,
	MsgRedefinitionOfLabel:     SeverityWarning,
	MsgUnknownSubstitution:     SeverityWarning,
	MsgUnsupportedLanguage:     SeverityWarning,
	MsgUnsupportedField:        SeverityWarning,
	MsgUnsupportedRawHTML:      SeverityWarning,
}

func (k MsgKind) Severity() Severity {
	return msgSeverity[k]
}

var msgNames = map[MsgKind]string{
	MsgCannotOpenFile:          "meCannotOpenFile",
	MsgExpected:                "meExpected",
	MsgGridTableNotImplemented: "meGridTableNotImplemented",
	MsgNewSectionExpected:      "meNewSectionExpected",
	MsgGeneralParseError:       "meGeneralParseError",
	MsgInvalidDirective:        "meInvalidDirective",
	MsgRedefinitionOfLabel:     "mwRedefinitionOfLabel",
	MsgUnknownSubstitution:     "mwUnknownSubstitution",
	MsgUnsupportedLanguage:     "mwUnsupportedLanguage",
	MsgUnsupportedField:        "mwUnsupportedField",
	MsgUnsupportedRawHTML:      "mwUnsupportedRawHTML",
}

func (k MsgKind) String() string {
	if n, ok := msgNames[k]; ok {
		return n
	}
	return "mw?"
}

// MsgHandlerFunc is the diagnostic-sink callback from spec §6.3. The
// default handler (DefaultMsgHandler) formats
// "<file>(<line>, <col>) <class>: <message>" to an io.Writer; errors
// must abort the parse — DefaultMsgHandler does so by panicking with
// *ParseError, which the public entry point recovers into a returned
// error (see parse.go).
type MsgHandlerFunc func(filename string, line, col int, kind MsgKind, arg string)
