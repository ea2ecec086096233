package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pitchproc/pitchproc/internal/domain"
)

// WriteTraceJSONL writes per-agent trace events one JSON object per
// line, preserving order. Traces exported this way can be re-verified
// offline with identical verdicts.
func WriteTraceJSONL(w io.Writer, trace []domain.TraceEvent) error {
	enc := json.NewEncoder(w)
	for i, ev := range trace {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encoding trace event %d: %w", i, err)
		}
	}
	return nil
}

// ReadTraceJSONL reads trace events written by WriteTraceJSONL.
func ReadTraceJSONL(r io.Reader) ([]domain.TraceEvent, error) {
	var trace []domain.TraceEvent
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev domain.TraceEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trace = append(trace, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return trace, nil
}
