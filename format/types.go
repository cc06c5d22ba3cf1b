package format

import "strconv"

type (
	CompressionType uint8
	EngineMode      uint8
	FlushMode       uint8
	Status          int8
)

const (
	CompressionZlib CompressionType = 0x1 // CompressionZlib represents DEFLATE in a zlib container.

	ModeDeflate EngineMode = 0x1 // ModeDeflate drives an engine that compresses its input.
	ModeInflate EngineMode = 0x2 // ModeInflate drives an engine that decompresses its input.

	FlushContinue FlushMode = 0x0 // FlushContinue tells the engine more input may follow.
	FlushFinish   FlushMode = 0x1 // FlushFinish tells the engine no further input will arrive.
)

// Engine status codes. The negative values follow the zlib numbering so a
// status printed in an error message means the same thing it would to a zlib user.
const (
	StatusOK          Status = 0
	StatusStreamEnd   Status = 1
	StatusStreamError Status = -2
	StatusDataError   Status = -3
	StatusMemError    Status = -4
	StatusBufError    Status = -5
)

func (c CompressionType) String() string {
	switch c {
	case CompressionZlib:
		return "Zlib"
	default:
		return "Unknown"
	}
}

func (m EngineMode) String() string {
	switch m {
	case ModeDeflate:
		return "deflate"
	case ModeInflate:
		return "inflate"
	default:
		return "unknown"
	}
}

func (f FlushMode) String() string {
	switch f {
	case FlushContinue:
		return "continue"
	case FlushFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// IsError reports whether the status signals an engine failure.
func (s Status) IsError() bool {
	return s != StatusOK && s != StatusStreamEnd
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusStreamEnd:
		return "stream end"
	case StatusStreamError:
		return "stream error"
	case StatusDataError:
		return "data error"
	case StatusMemError:
		return "memory error"
	case StatusBufError:
		return "buffer error"
	default:
		return "status " + strconv.Itoa(int(s))
	}
}
