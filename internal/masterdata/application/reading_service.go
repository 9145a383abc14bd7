package application

import (
	"context"
	"errors"
	"fmt"

	masterdata "nebenkosten/internal/masterdata/domain"
	"nebenkosten/internal/observability/metrics"
)

// ReadingService provides meter reading commands and queries. Writes enforce
// the monotonic counter policy against the neighboring readings of the same
// meter.
type ReadingService struct {
	readings masterdata.ReadingRepository
	meters   masterdata.MeterRepository
}

// NewReadingService constructs a reading service.
func NewReadingService(readings masterdata.ReadingRepository, meters masterdata.MeterRepository) (*ReadingService, error) {
	if readings == nil {
		return nil, errors.New("reading service: nil reading repository")
	}
	if meters == nil {
		return nil, errors.New("reading service: nil meter repository")
	}
	return &ReadingService{readings: readings, meters: meters}, nil
}

// Create validates a new reading against its neighbors and persists it.
func (s *ReadingService) Create(ctx context.Context, reading *masterdata.MeterReading) error {
	result := metrics.ResultSuccess
	defer func() {
		metrics.IncReadingWrite(result)
	}()

	if reading == nil {
		result = metrics.ResultError
		return errors.New("reading service: nil reading")
	}
	if err := reading.Validate(); err != nil {
		result = metrics.ResultError
		return err
	}
	if _, err := s.meters.GetByID(ctx, reading.MeterID); err != nil {
		result = metrics.ResultError
		if errors.Is(err, masterdata.ErrNotFound) {
			return fmt.Errorf("%w: meter %d does not exist", masterdata.ErrInvalid, reading.MeterID)
		}
		return err
	}
	if err := s.checkNeighbors(ctx, *reading, 0); err != nil {
		result = metrics.ResultError
		return err
	}
	if err := s.readings.Create(ctx, reading); err != nil {
		result = metrics.ResultError
		return err
	}
	return nil
}

// Get returns one reading.
func (s *ReadingService) Get(ctx context.Context, id int64) (*masterdata.MeterReading, error) {
	return s.readings.GetByID(ctx, id)
}

// ListByMeter returns a meter's readings in date order, each annotated with
// the consumption since its predecessor.
func (s *ReadingService) ListByMeter(ctx context.Context, meterID int64) ([]masterdata.ReadingWithConsumption, error) {
	if _, err := s.meters.GetByID(ctx, meterID); err != nil {
		return nil, err
	}
	readings, err := s.readings.ListByMeter(ctx, meterID)
	if err != nil {
		return nil, err
	}
	return masterdata.AnnotateConsumption(readings), nil
}

// Update applies a partial update to a reading, re-running the neighbor
// checks with the stored reading excluded from the comparison.
func (s *ReadingService) Update(ctx context.Context, id int64, patch masterdata.ReadingUpdate) (*masterdata.MeterReading, error) {
	result := metrics.ResultSuccess
	defer func() {
		metrics.IncReadingWrite(result)
	}()

	existing, err := s.readings.GetByID(ctx, id)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	updated, err := patch.Apply(*existing)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if err := s.checkNeighbors(ctx, updated, id); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if err := s.readings.Update(ctx, &updated); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return &updated, nil
}

// Delete removes a reading.
func (s *ReadingService) Delete(ctx context.Context, id int64) error {
	return s.readings.Delete(ctx, id)
}

func (s *ReadingService) checkNeighbors(ctx context.Context, reading masterdata.MeterReading, excludeID int64) error {
	previous, err := s.readings.Previous(ctx, reading.MeterID, reading.ReadingDate, excludeID)
	if err != nil {
		return err
	}
	next, err := s.readings.Next(ctx, reading.MeterID, reading.ReadingDate, excludeID)
	if err != nil {
		return err
	}
	return reading.CheckNeighbors(previous, next)
}
