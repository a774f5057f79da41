package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "valid", in: "2024-06-07", want: NewDate(2024, time.June, 7)},
		{name: "leap day", in: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "not a leap year", in: "2023-02-29", wantErr: true},
		{name: "timestamp", in: "2024-06-07T10:00:00Z", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateArithmetic(t *testing.T) {
	jun28 := NewDate(2024, time.June, 28)
	if got := jun28.AddDays(3); !got.Equal(NewDate(2024, time.July, 1)) {
		t.Errorf("AddDays(3) = %v", got)
	}
	if got := jun28.DaysUntil(NewDate(2024, time.July, 8)); got != 10 {
		t.Errorf("DaysUntil() = %d, want 10", got)
	}
	if got := jun28.DaysUntil(NewDate(2024, time.June, 20)); got != -8 {
		t.Errorf("DaysUntil() = %d, want -8", got)
	}
	if jun28.Weekday() != time.Friday {
		t.Errorf("Weekday() = %v, want Friday", jun28.Weekday())
	}
}

func TestDaysUntilLongRanges(t *testing.T) {
	tests := []struct {
		name     string
		from, to Date
		want     int
	}{
		{"to year 9999", NewDate(2024, time.June, 7), NewDate(9999, time.December, 31), 2913015},
		{"back to year 1", NewDate(2024, time.June, 7), NewDate(1, time.January, 1), -739043},
		{"across leap day", NewDate(2024, time.February, 28), NewDate(2024, time.March, 1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.DaysUntil(tt.to); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	ts := time.Date(2024, time.June, 7, 23, 59, 0, 0, time.UTC)
	if got := DateOf(ts); got.String() != "2024-06-07" {
		t.Errorf("DateOf() = %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Day Date `json:"day"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"day":"2024-06-07"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Day.Equal(NewDate(2024, time.June, 7)) {
		t.Fatalf("Day = %v", p.Day)
	}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"day":"2024-06-07"}` {
		t.Errorf("marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"day":"07/06/2024"}`), &p); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"time", time.Date(2024, time.June, 7, 0, 0, 0, 0, time.UTC), "2024-06-07"},
		{"bytes", []byte("2024-06-07"), "2024-06-07"},
		{"datetime string", "2024-06-07 00:00:00", "2024-06-07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Scan() = %s, want %s", d, tt.want)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected error for int source")
	}
}
