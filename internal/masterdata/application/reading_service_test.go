package application

import (
	"context"
	"errors"
	"testing"
	"time"

	masterdata "nebenkosten/internal/masterdata/domain"
	"nebenkosten/internal/masterdata/infrastructure/memory"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newReadingFixture(t *testing.T) (*ReadingService, int64) {
	t.Helper()
	readings := memory.NewReadingRepository()
	meters := memory.NewMeterRepository()

	unitID := int64(1)
	meter := &masterdata.Meter{
		Name:           "Strom EG",
		MeterType:      "electricity",
		Unit:           "kWh",
		Assignment:     masterdata.AssignmentUnit,
		PropertyUnitID: &unitID,
	}
	if err := meters.Create(context.Background(), meter); err != nil {
		t.Fatalf("create meter: %v", err)
	}

	service, err := NewReadingService(readings, meters)
	if err != nil {
		t.Fatalf("new reading service: %v", err)
	}
	return service, meter.ID
}

func createReading(t *testing.T, service *ReadingService, meterID int64, day time.Time, value float64) *masterdata.MeterReading {
	t.Helper()
	reading := &masterdata.MeterReading{MeterID: meterID, ReadingDate: day, Value: value}
	if err := service.Create(context.Background(), reading); err != nil {
		t.Fatalf("create reading %v=%v: %v", day, value, err)
	}
	return reading
}

func TestReadingServiceCreate(t *testing.T) {
	service, meterID := newReadingFixture(t)
	reading := createReading(t, service, meterID, date(2024, 1, 1), 100)
	if reading.ID == 0 {
		t.Fatal("expected an assigned id")
	}
}

func TestReadingServiceCreateUnknownMeter(t *testing.T) {
	service, _ := newReadingFixture(t)
	reading := &masterdata.MeterReading{MeterID: 99, ReadingDate: date(2024, 1, 1), Value: 100}
	if err := service.Create(context.Background(), reading); !errors.Is(err, masterdata.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a missing meter, got %v", err)
	}
}

func TestReadingServiceCreateRejectsDecreaseAgainstPrevious(t *testing.T) {
	service, meterID := newReadingFixture(t)
	createReading(t, service, meterID, date(2024, 1, 1), 100)

	lower := &masterdata.MeterReading{MeterID: meterID, ReadingDate: date(2024, 2, 1), Value: 90}
	if err := service.Create(context.Background(), lower); !errors.Is(err, masterdata.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a value below the previous reading, got %v", err)
	}
}

func TestReadingServiceCreateRejectsExcessAgainstNext(t *testing.T) {
	service, meterID := newReadingFixture(t)
	createReading(t, service, meterID, date(2024, 1, 1), 100)
	createReading(t, service, meterID, date(2024, 3, 1), 120)

	// Backfilling between the two must stay within their values.
	tooHigh := &masterdata.MeterReading{MeterID: meterID, ReadingDate: date(2024, 2, 1), Value: 130}
	if err := service.Create(context.Background(), tooHigh); !errors.Is(err, masterdata.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a value above the next reading, got %v", err)
	}

	between := &masterdata.MeterReading{MeterID: meterID, ReadingDate: date(2024, 2, 1), Value: 110}
	if err := service.Create(context.Background(), between); err != nil {
		t.Fatalf("expected backfill within bounds to pass, got %v", err)
	}
}

func TestReadingServiceCreateAllowsEqualValues(t *testing.T) {
	service, meterID := newReadingFixture(t)
	createReading(t, service, meterID, date(2024, 1, 1), 100)
	createReading(t, service, meterID, date(2024, 2, 1), 100)
}

func TestReadingServiceUpdateChecksNeighbors(t *testing.T) {
	service, meterID := newReadingFixture(t)
	createReading(t, service, meterID, date(2024, 1, 1), 100)
	middle := createReading(t, service, meterID, date(2024, 2, 1), 110)
	createReading(t, service, meterID, date(2024, 3, 1), 120)
	ctx := context.Background()

	// The updated reading is excluded from its own neighbor lookup.
	value := 115.0
	updated, err := service.Update(ctx, middle.ID, masterdata.ReadingUpdate{Value: &value})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Value != 115 {
		t.Fatalf("expected value 115, got %v", updated.Value)
	}

	tooHigh := 130.0
	if _, err := service.Update(ctx, middle.ID, masterdata.ReadingUpdate{Value: &tooHigh}); !errors.Is(err, masterdata.ErrInvalid) {
		t.Fatalf("expected ErrInvalid above the next reading, got %v", err)
	}
	tooLow := 90.0
	if _, err := service.Update(ctx, middle.ID, masterdata.ReadingUpdate{Value: &tooLow}); !errors.Is(err, masterdata.ErrInvalid) {
		t.Fatalf("expected ErrInvalid below the previous reading, got %v", err)
	}
}

func TestReadingServiceListByMeterAnnotatesConsumption(t *testing.T) {
	service, meterID := newReadingFixture(t)
	createReading(t, service, meterID, date(2024, 1, 1), 100)
	createReading(t, service, meterID, date(2024, 2, 1), 130)
	createReading(t, service, meterID, date(2024, 3, 1), 150)

	listed, err := service.ListByMeter(context.Background(), meterID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(listed))
	}
	if listed[0].Consumption != nil {
		t.Fatal("expected the first reading to stay unannotated")
	}
	if listed[1].Consumption == nil || *listed[1].Consumption != 30 {
		t.Fatalf("expected consumption 30, got %v", listed[1].Consumption)
	}
	if listed[2].Consumption == nil || *listed[2].Consumption != 20 {
		t.Fatalf("expected consumption 20, got %v", listed[2].Consumption)
	}
}

func TestReadingServiceDelete(t *testing.T) {
	service, meterID := newReadingFixture(t)
	reading := createReading(t, service, meterID, date(2024, 1, 1), 100)
	ctx := context.Background()

	if err := service.Delete(ctx, reading.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := service.Get(ctx, reading.ID); !errors.Is(err, masterdata.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
