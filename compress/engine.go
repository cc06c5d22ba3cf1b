package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/bagobytes/format"
)

// BestCompressionLevel is the only quality level the chunked codec uses.
const BestCompressionLevel = zlib.BestCompression

var (
	errFeedAfterFinish   = errors.New("input fed after finish")
	errStreamNotFinished = errors.New("stream not finished after final round")
)

// Engine is the stateful compression or decompression engine driven by the
// chunked codec.
//
// One engine serves exactly one payload: it is created by NewEngine, fed any
// number of chunks with FlushContinue, fed its last chunk with FlushFinish and
// then released. Output becomes available through Drain as the engine
// produces it; a drain that fills less than len(dst) means the output of the
// current round is exhausted.
//
// Engines are not safe for concurrent use.
type Engine interface {
	// Mode reports whether the engine compresses or decompresses.
	Mode() format.EngineMode

	// Feed hands the next input chunk to the engine. The engine may keep a
	// reference to chunk until it is released; callers must not modify it.
	Feed(chunk []byte, flush format.FlushMode) error

	// Drain copies up to len(dst) bytes of pending output into dst.
	// The status is StatusStreamEnd once the finished stream has been fully
	// drained and StatusOK otherwise. A non-nil error is an *EngineError.
	Drain(dst []byte) (int, format.Status, error)

	// Release frees the engine state. Any later call fails with ErrEngineReleased.
	Release() error
}

// NewEngine creates an engine for mode at BestCompressionLevel.
func NewEngine(mode format.EngineMode) (Engine, error) {
	return NewEngineLevel(mode, BestCompressionLevel)
}

// NewEngineLevel creates an engine for mode. The level is only meaningful for
// ModeDeflate; an out-of-range level fails with ErrEngineInit.
func NewEngineLevel(mode format.EngineMode, level int) (Engine, error) {
	switch mode {
	case format.ModeDeflate:
		return newDeflateEngine(level)
	case format.ModeInflate:
		return newInflateEngine(), nil
	default:
		return nil, &EngineError{
			Mode:   mode,
			Kind:   ErrEngineInit,
			Status: format.StatusStreamError,
			Err:    fmt.Errorf("unsupported engine mode %d", mode),
		}
	}
}

// statusOf maps an error from the zlib/flate packages to an engine status.
func statusOf(err error) format.Status {
	var corrupt flate.CorruptInputError

	switch {
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return format.StatusBufError
	case errors.Is(err, zlib.ErrChecksum),
		errors.Is(err, zlib.ErrHeader),
		errors.Is(err, zlib.ErrDictionary),
		errors.As(err, &corrupt):
		return format.StatusDataError
	default:
		return format.StatusStreamError
	}
}

// deflateEngine compresses into an in-memory pending area that Drain empties.
type deflateEngine struct {
	writer   *zlib.Writer
	pending  bytes.Buffer
	finished bool
	released bool
}

var _ Engine = (*deflateEngine)(nil)

func newDeflateEngine(level int) (*deflateEngine, error) {
	e := &deflateEngine{}

	writer, err := zlib.NewWriterLevel(&e.pending, level)
	if err != nil {
		return nil, &EngineError{
			Mode:   format.ModeDeflate,
			Kind:   ErrEngineInit,
			Status: format.StatusStreamError,
			Err:    err,
		}
	}
	e.writer = writer

	return e, nil
}

func (e *deflateEngine) Mode() format.EngineMode {
	return format.ModeDeflate
}

func (e *deflateEngine) Feed(chunk []byte, flush format.FlushMode) error {
	if e.released {
		return ErrEngineReleased
	}

	if e.finished {
		return newStreamError(format.ModeDeflate, format.StatusStreamError, errFeedAfterFinish)
	}

	if len(chunk) > 0 {
		if _, err := e.writer.Write(chunk); err != nil {
			return newStreamError(format.ModeDeflate, statusOf(err), err)
		}
	}

	if flush == format.FlushFinish {
		if err := e.writer.Close(); err != nil {
			return newStreamError(format.ModeDeflate, statusOf(err), err)
		}
		e.finished = true
	}

	return nil
}

func (e *deflateEngine) Drain(dst []byte) (int, format.Status, error) {
	if e.released {
		return 0, format.StatusStreamError, ErrEngineReleased
	}

	// bytes.Buffer only reports io.EOF when it is empty, which is not a failure here.
	n, _ := e.pending.Read(dst)

	if e.finished && e.pending.Len() == 0 {
		return n, format.StatusStreamEnd, nil
	}

	return n, format.StatusOK, nil
}

func (e *deflateEngine) Release() error {
	if e.released {
		return ErrEngineReleased
	}

	e.released = true
	e.writer = nil
	e.pending = bytes.Buffer{}

	return nil
}

// inflateEngine decompresses the fed chunks.
//
// The zlib reader pulls its input, so chunks fed with FlushContinue are only
// queued; the reader is built over all of them once FlushFinish arrives and
// Drain then streams the output.
type inflateEngine struct {
	queued   []io.Reader
	reader   io.ReadCloser
	failure  error
	finished bool
	ended    bool
	released bool
}

var _ Engine = (*inflateEngine)(nil)

func newInflateEngine() *inflateEngine {
	return &inflateEngine{}
}

func (e *inflateEngine) Mode() format.EngineMode {
	return format.ModeInflate
}

func (e *inflateEngine) Feed(chunk []byte, flush format.FlushMode) error {
	if e.released {
		return ErrEngineReleased
	}

	if e.finished {
		return e.fail(newStreamError(format.ModeInflate, format.StatusStreamError, errFeedAfterFinish))
	}

	if len(chunk) > 0 {
		e.queued = append(e.queued, bytes.NewReader(chunk))
	}

	if flush != format.FlushFinish {
		return nil
	}

	e.finished = true

	reader, err := zlib.NewReader(io.MultiReader(e.queued...))
	e.queued = nil
	if err != nil {
		return e.fail(newStreamError(format.ModeInflate, statusOf(err), err))
	}
	e.reader = reader

	return nil
}

func (e *inflateEngine) Drain(dst []byte) (int, format.Status, error) {
	if e.released {
		return 0, format.StatusStreamError, ErrEngineReleased
	}

	if e.failure != nil {
		return 0, format.StatusStreamError, e.failure
	}

	if e.reader == nil {
		return 0, format.StatusOK, nil
	}

	if e.ended {
		return 0, format.StatusStreamEnd, nil
	}

	n := 0
	for n < len(dst) {
		m, err := e.reader.Read(dst[n:])
		n += m

		if errors.Is(err, io.EOF) {
			e.ended = true
			return n, format.StatusStreamEnd, nil
		}

		if err != nil {
			return n, statusOf(err), e.fail(newStreamError(format.ModeInflate, statusOf(err), err))
		}
	}

	return n, format.StatusOK, nil
}

func (e *inflateEngine) Release() error {
	if e.released {
		return ErrEngineReleased
	}

	e.released = true
	e.queued = nil

	if e.reader == nil {
		return nil
	}

	err := e.reader.Close()
	e.reader = nil

	// A failed reader reports its failure again on Close; it was already surfaced.
	if err != nil && e.failure == nil {
		return newStreamError(format.ModeInflate, statusOf(err), err)
	}

	return nil
}

func (e *inflateEngine) fail(err *EngineError) error {
	e.failure = err
	return err
}
