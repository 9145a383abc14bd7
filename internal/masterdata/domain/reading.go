package masterdata

import (
	"fmt"
	"time"
)

// MeterReading is one counter sample of a meter. Values are expected to be
// non-decreasing per meter over time; the policy is enforced only when a
// reading is written, never re-verified on read.
type MeterReading struct {
	ID          int64     `json:"id"`
	MeterID     int64     `json:"meter_id"`
	ReadingDate time.Time `json:"reading_date"`
	Value       float64   `json:"value"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks standalone invariants of a reading.
func (r MeterReading) Validate() error {
	if r.MeterID <= 0 {
		return fmt.Errorf("%w: reading requires a meter", ErrInvalid)
	}
	if r.ReadingDate.IsZero() {
		return fmt.Errorf("%w: reading date is required", ErrInvalid)
	}
	if r.Value < 0 {
		return fmt.Errorf("%w: reading value cannot be negative", ErrInvalid)
	}
	return nil
}

// CheckNeighbors enforces the monotonic write policy against the readings
// directly before and after the candidate on the same meter. Either neighbor
// may be nil when the candidate sits at the edge of the sequence.
func (r MeterReading) CheckNeighbors(previous, next *MeterReading) error {
	if previous != nil && r.Value < previous.Value {
		return fmt.Errorf("%w: reading value %.3f is less than the previous reading %.3f from %s",
			ErrInvalid, r.Value, previous.Value, previous.ReadingDate.Format("2006-01-02"))
	}
	if next != nil && next.Value < r.Value {
		return fmt.Errorf("%w: reading value %.3f is greater than the next reading %.3f from %s",
			ErrInvalid, r.Value, next.Value, next.ReadingDate.Format("2006-01-02"))
	}
	return nil
}

// ReadingUpdate carries optional fields for partial updates.
type ReadingUpdate struct {
	ReadingDate *time.Time `json:"reading_date"`
	Value       *float64   `json:"value"`
	Notes       *string    `json:"notes"`
}

// Apply merges the update into an existing reading and validates the result.
func (p ReadingUpdate) Apply(reading MeterReading) (MeterReading, error) {
	if p.ReadingDate != nil {
		reading.ReadingDate = *p.ReadingDate
	}
	if p.Value != nil {
		reading.Value = *p.Value
	}
	if p.Notes != nil {
		reading.Notes = p.Notes
	}
	if err := reading.Validate(); err != nil {
		return MeterReading{}, err
	}
	return reading, nil
}

// ReadingWithConsumption annotates a reading with the delta to its
// predecessor, for the per-meter listing.
type ReadingWithConsumption struct {
	MeterReading
	Consumption *float64 `json:"consumption,omitempty"`
}

// AnnotateConsumption computes per-reading deltas over an ascending list.
// The first reading has no predecessor and stays unannotated.
func AnnotateConsumption(readings []MeterReading) []ReadingWithConsumption {
	out := make([]ReadingWithConsumption, 0, len(readings))
	for i, r := range readings {
		annotated := ReadingWithConsumption{MeterReading: r}
		if i > 0 {
			delta := r.Value - readings[i-1].Value
			annotated.Consumption = &delta
		}
		out = append(out, annotated)
	}
	return out
}
