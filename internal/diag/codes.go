package diag

import "fmt"

// Code is a compact, stable diagnostic identifier. Blocks are grouped
// by producing phase: 1xxx lexer, 2xxx parser, 3xxx index, 4xxx
// conversion, 5xxx IO and configuration.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexInfo Code = 1000

	// Syntax.
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnexpectedEOF   Code = 2002

	// Alias index.
	IdxInfo           Code = 3000
	IdxDuplicateAlias Code = 3001

	// Conversion.
	ConvInfo              Code = 4000
	ConvUnknownLifecycle  Code = 4001
	ConvUnresolvedTopic   Code = 4002
	ConvSkippedInternal   Code = 4003
	ConvEmptyDocument     Code = 4004
	ConvBadFigureOptions  Code = 4005
	ConvUnknownMacro      Code = 4006
	ConvMalformedSection  Code = 4007
	ConvMalformedTabular  Code = 4008
	ConvMalformedItemList Code = 4009

	// IO and configuration.
	IOInfo            Code = 5000
	IOReadFailed      Code = 5001
	IOWriteFailed     Code = 5002
	IOCreateDirFailed Code = 5003
	CfgParseFailed    Code = 5100
	CfgBadValue       Code = 5101

	// Observability.
	ObsTimings Code = 6000
)

func (c Code) String() string {
	return fmt.Sprintf("RD%04d", uint16(c))
}
