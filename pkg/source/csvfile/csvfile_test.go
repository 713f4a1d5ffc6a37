package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/matzehuels/stopover/pkg/errors"
	"github.com/matzehuels/stopover/pkg/tz"
)

func resolver(t *testing.T) *tz.Resolver {
	t.Helper()
	r, err := tz.New("America/New_York", map[string]string{"ORD": "America/Chicago"})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

const sample = `departure_airport,arrival_airport,flight_number,departure_time,arrival_time
BOS,ORD,1021,2025-10-02 09:00:00,2025-10-02 11:05:00
ORD,BOS,1022,2025-10-02 13:00:00,2025-10-02 16:10:00
`

func TestRead(t *testing.T) {
	recs, err := NewReader(resolver(t), Options{}).Read(context.Background(), strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	r := recs[0]
	if r.Origin != "BOS" || r.Destination != "ORD" || r.Number != 1021 {
		t.Errorf("record = %+v", r)
	}
	// 09:00 Eastern to 11:05 Central is a 3h05m flight.
	if got := r.Arrival.Sub(r.Departure); got != 3*time.Hour+5*time.Minute {
		t.Errorf("duration = %v, want 3h5m", got)
	}
	if r.Arrival.Location().String() != "America/Chicago" {
		t.Errorf("arrival zone = %s", r.Arrival.Location())
	}
}

func TestReadColumnOrder(t *testing.T) {
	data := "arrival_time,flight_number,carrier,arrival_airport,departure_airport,departure_time\n" +
		"2025-10-02 11:05:00,7,UA,ORD,BOS,2025-10-02 09:00:00\n"

	recs, err := NewReader(resolver(t), Options{}).Read(context.Background(), strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Origin != "BOS" || recs[0].Number != 7 {
		t.Errorf("records = %+v", recs)
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidFormat},
		{"missing column", "departure_airport,arrival_airport\nBOS,ORD\n", errors.ErrCodeInvalidFormat},
		{"arrives before departing", "departure_airport,arrival_airport,flight_number,departure_time,arrival_time\n" +
			"BOS,ORD,1,2025-10-02 09:00:00,2025-10-02 07:00:00\n", errors.ErrCodeInvalidRecord},
		{"bad airport", "departure_airport,arrival_airport,flight_number,departure_time,arrival_time\n" +
			"Boston,ORD,1,2025-10-02 09:00:00,2025-10-02 11:00:00\n", errors.ErrCodeInvalidRecord},
		{"bad number", "departure_airport,arrival_airport,flight_number,departure_time,arrival_time\n" +
			"BOS,ORD,one,2025-10-02 09:00:00,2025-10-02 11:00:00\n", errors.ErrCodeInvalidRecord},
		{"bad time", "departure_airport,arrival_airport,flight_number,departure_time,arrival_time\n" +
			"BOS,ORD,1,10/02/2025 9am,2025-10-02 11:00:00\n", errors.ErrCodeInvalidRecord},
		{"short row", "departure_airport,arrival_airport,flight_number,departure_time,arrival_time\n" +
			"BOS,ORD,1\n", errors.ErrCodeInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(resolver(t), Options{}).Read(context.Background(), strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("Read() error = nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestReadSkipInvalid(t *testing.T) {
	data := sample + "BOS,ORD,3,2025-10-02 09:00:00,2025-10-02 07:00:00\n" +
		"BOS,ORD,4,2025-10-03 09:00:00,2025-10-03 11:00:00\n"

	var skipped []int
	opts := Options{SkipInvalid: true, OnSkip: func(line int, err error) { skipped = append(skipped, line) }}
	recs, err := NewReader(resolver(t), opts).Read(context.Background(), strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("got %d records, want 3", len(recs))
	}
	if len(skipped) != 1 || skipped[0] != 4 {
		t.Errorf("skipped lines = %v, want [4]", skipped)
	}
}

func TestReadFile(t *testing.T) {
	r := NewReader(resolver(t), Options{})

	path := filepath.Join(t.TempDir(), "flights.csv")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := r.ReadFile(context.Background(), path)
	if err != nil || len(recs) != 2 {
		t.Fatalf("ReadFile() = %d records, %v", len(recs), err)
	}

	_, err = r.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
