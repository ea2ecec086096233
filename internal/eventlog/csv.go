package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pitchproc/pitchproc/internal/domain"
)

// csvHeader is the exported column set, compatible with process-mining
// tooling that expects case_id/activity/timestamp columns.
var csvHeader = []string{
	"case_id", "process_type", "event_id", "timestamp_ms", "sequence_number",
	"activity", "activity_result", "player_id", "player_role", "team",
	"start_x", "start_y", "end_x", "end_y", "pitch_zone", "sub_zone",
	"pressure_level", "game_state", "time_remaining_ms", "distance_covered",
	"xg_added",
}

// WriteCSV writes events in the research CSV schema.
func WriteCSV(w io.Writer, events []domain.LogEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, ev := range events {
		record := []string{
			ev.CaseID,
			ev.ProcessType,
			ev.EventID,
			strconv.FormatInt(ev.Timestamp.Milliseconds(), 10),
			strconv.Itoa(ev.Sequence),
			string(ev.Activity),
			ev.Result,
			ev.PlayerID,
			string(ev.PlayerRole),
			string(ev.Team),
			formatFloat(ev.StartX),
			formatFloat(ev.StartY),
			formatFloat(ev.EndX),
			formatFloat(ev.EndY),
			ev.PitchZone,
			ev.SubZone,
			string(ev.Pressure),
			ev.GameState,
			strconv.FormatInt(ev.TimeRemaining.Milliseconds(), 10),
			formatFloat(ev.Distance),
			formatFloat(ev.XGAdded),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing event %s: %w", ev.EventID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses events previously written by WriteCSV.
func ReadCSV(r io.Reader) ([]domain.LogEvent, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected column count %d, want %d", len(header), len(csvHeader))
	}

	var events []domain.LogEvent
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line+1, err)
		}
		line++

		ts, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp %q: %w", line, record[3], err)
		}
		seq, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid sequence %q: %w", line, record[4], err)
		}
		remaining, err := strconv.ParseInt(record[18], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid time remaining %q: %w", line, record[18], err)
		}

		ev := domain.LogEvent{
			ID:            uuid.New(),
			CaseID:        record[0],
			ProcessType:   record[1],
			EventID:       record[2],
			Timestamp:     time.Duration(ts) * time.Millisecond,
			Sequence:      seq,
			Activity:      domain.Action(record[5]),
			Result:        record[6],
			PlayerID:      record[7],
			PlayerRole:    domain.Role(record[8]),
			Team:          domain.Team(record[9]),
			PitchZone:     record[14],
			SubZone:       record[15],
			Pressure:      domain.PressureLevel(record[16]),
			GameState:     record[17],
			TimeRemaining: time.Duration(remaining) * time.Millisecond,
		}
		if ev.StartX, err = strconv.ParseFloat(record[10], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid start_x: %w", line, err)
		}
		if ev.StartY, err = strconv.ParseFloat(record[11], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid start_y: %w", line, err)
		}
		if ev.EndX, err = strconv.ParseFloat(record[12], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid end_x: %w", line, err)
		}
		if ev.EndY, err = strconv.ParseFloat(record[13], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid end_y: %w", line, err)
		}
		if ev.Distance, err = strconv.ParseFloat(record[19], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid distance: %w", line, err)
		}
		if ev.XGAdded, err = strconv.ParseFloat(record[20], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid xg: %w", line, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
