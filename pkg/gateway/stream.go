package gateway

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/orglens/orglens/pkg/logging"
	"github.com/orglens/orglens/pkg/metrics"
)

// doneSentinel is the explicit end-of-stream marker.
const doneSentinel = "[DONE]"

// chatFrame is one decoded stream event.
type chatFrame struct {
	Text string `json:"text"`
}

// Stream is a unidirectional, incrementally delivered chat response.
//
// Events arrive as line-oriented frames: "data: {json}" carrying a text
// increment, or "data: [DONE]" ending the stream. Blank lines, comments,
// and unparseable frames are skipped, never fatal.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	logger  logging.Logger
	metrics *metrics.Registry
	done    bool
}

func newStream(body io.ReadCloser, logger logging.Logger, reg *metrics.Registry) *Stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{
		body:    body,
		scanner: scanner,
		logger:  logger,
		metrics: reg,
	}
}

// Next returns the next text increment. It returns io.EOF after the
// end-of-stream sentinel (or a clean underlying EOF), and the transport
// error if the connection broke. Callers must consume sequentially; Next is
// not safe to call concurrently.
func (s *Stream) Next() (string, error) {
	if s.done {
		return "", ErrStreamClosed
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			// Unrecognized framing; skip rather than abort.
			s.metrics.MalformedFramesTotal.Inc()
			continue
		}
		data = strings.TrimSpace(data)

		if data == doneSentinel {
			s.close()
			return "", io.EOF
		}

		var frame chatFrame
		if err := json.Unmarshal([]byte(data), &frame); err != nil {
			s.metrics.MalformedFramesTotal.Inc()
			s.logger.Debug("skipping malformed frame", logging.Error(err))
			continue
		}
		if frame.Text == "" {
			continue
		}

		s.metrics.StreamChunksTotal.Inc()
		return frame.Text, nil
	}

	err := s.scanner.Err()
	s.close()
	if err != nil {
		s.metrics.StreamFailuresTotal.Inc()
		return "", err
	}
	// Server closed without the sentinel; treat as a normal end.
	return "", io.EOF
}

// Close releases the underlying connection. Safe to call more than once.
func (s *Stream) Close() error {
	return s.close()
}

func (s *Stream) close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.body.Close()
}
