package task

import (
	"errors"
	"strconv"
	"testing"
)

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		period Period
		want   string
	}{
		{name: "midnight", input: "12", period: AM, want: "00:00"},
		{name: "noon", input: "12", period: PM, want: "12:00"},
		{name: "5pm", input: "5", period: PM, want: "17:00"},
		{name: "9am padded", input: "09:15", period: AM, want: "09:15"},
		{name: "9am unpadded", input: "9:15", period: AM, want: "09:15"},
		{name: "12:30am", input: "12:30", period: AM, want: "00:30"},
		{name: "12:45pm", input: "12:45", period: PM, want: "12:45"},
		{name: "11:59pm", input: "11:59", period: PM, want: "23:59"},
		{name: "surrounding spaces", input: " 3:05 ", period: PM, want: "15:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := To24Hour(tt.input, tt.period)
			if err != nil {
				t.Fatalf("To24Hour(%q, %s) error: %v", tt.input, tt.period, err)
			}
			if got != tt.want {
				t.Errorf("To24Hour(%q, %s) = %q, want %q", tt.input, tt.period, got, tt.want)
			}
		})
	}
}

func TestTo24Hour_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		period Period
		want   error
	}{
		{name: "empty", input: "", period: AM, want: ErrInvalidTimeFormat},
		{name: "missing hour", input: ":30", period: AM, want: ErrInvalidTimeFormat},
		{name: "hour zero", input: "0:30", period: AM, want: ErrInvalidTimeFormat},
		{name: "hour 13", input: "13:00", period: PM, want: ErrInvalidTimeFormat},
		{name: "letters", input: "ab:cd", period: AM, want: ErrInvalidTimeFormat},
		{name: "one digit minute", input: "5:3", period: AM, want: ErrInvalidTimeFormat},
		{name: "minute 60", input: "5:60", period: AM, want: ErrInvalidTimeFormat},
		{name: "bad period", input: "5:00", period: "XM", want: ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := To24Hour(tt.input, tt.period)
			if !errors.Is(err, tt.want) {
				t.Errorf("To24Hour(%q, %s) error = %v, want %v", tt.input, tt.period, err, tt.want)
			}
			// Every rejected input, bad period included, is a format error.
			if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Errorf("To24Hour(%q, %s) error = %v, want it to wrap %v", tt.input, tt.period, err, ErrInvalidTimeFormat)
			}
		})
	}
}

func TestTo24Hour_RoundTrip(t *testing.T) {
	seen := make(map[string]bool)
	for _, period := range []Period{AM, PM} {
		for hour := 1; hour <= 12; hour++ {
			in := strconv.Itoa(hour) + ":00"
			h24, err := To24Hour(in, period)
			if err != nil {
				t.Fatalf("To24Hour(%q, %s) error: %v", in, period, err)
			}
			if seen[h24] {
				t.Errorf("To24Hour(%q, %s) = %q collides with another input", in, period, h24)
			}
			seen[h24] = true

			h12, gotPeriod, err := To12Hour(h24)
			if err != nil {
				t.Fatalf("To12Hour(%q) error: %v", h24, err)
			}
			back, err := To24Hour(h12, gotPeriod)
			if err != nil {
				t.Fatalf("To24Hour(%q, %s) error: %v", h12, gotPeriod, err)
			}
			if back != h24 || gotPeriod != period {
				t.Errorf("round trip %q %s -> %q -> %q %s -> %q", in, period, h24, h12, gotPeriod, back)
			}
		}
	}
	if len(seen) != 24 {
		t.Errorf("expected 24 distinct hours, got %d", len(seen))
	}
}

func TestTo12Hour(t *testing.T) {
	tests := []struct {
		input      string
		wantTime   string
		wantPeriod Period
	}{
		{input: "00:00", wantTime: "12:00", wantPeriod: AM},
		{input: "00:30", wantTime: "12:30", wantPeriod: AM},
		{input: "09:05", wantTime: "09:05", wantPeriod: AM},
		{input: "12:00", wantTime: "12:00", wantPeriod: PM},
		{input: "17:45", wantTime: "05:45", wantPeriod: PM},
		{input: "23:59", wantTime: "11:59", wantPeriod: PM},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, period, err := To12Hour(tt.input)
			if err != nil {
				t.Fatalf("To12Hour(%q) error: %v", tt.input, err)
			}
			if got != tt.wantTime || period != tt.wantPeriod {
				t.Errorf("To12Hour(%q) = %q %s, want %q %s", tt.input, got, period, tt.wantTime, tt.wantPeriod)
			}
		})
	}
}

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "9am", input: "09:00", want: 540},
		{name: "noon", input: "12:00", want: 720},
		{name: "5pm", input: "17:00", want: 1020},
		{name: "11:59pm", input: "23:59", want: 1439},
		{name: "with minutes", input: "09:30", want: 570},
		{name: "end of day", input: "24:00", want: 1440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinutes(tt.input)
			if err != nil {
				t.Fatalf("ToMinutes(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestToMinutes_Invalid(t *testing.T) {
	inputs := []string{"", "9:00", "09-00", "ab:cd", "24:01", "25:00", "12:60", "09:000", " 9:00"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, err := ToMinutes(in)
			if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Errorf("ToMinutes(%q) = %d, %v; want ErrInvalidTimeFormat", in, got, err)
			}
		})
	}
}

func TestFromMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{name: "midnight", input: 0, want: "00:00"},
		{name: "9am", input: 540, want: "09:00"},
		{name: "11:59pm", input: 1439, want: "23:59"},
		{name: "wraps at one day", input: 1440, want: "00:00"},
		{name: "wraps past one day", input: 1500, want: "01:00"},
		{name: "negative wraps backwards", input: -10, want: "23:50"},
		{name: "large negative", input: -1450, want: "23:50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromMinutes(tt.input)
			if got != tt.want {
				t.Errorf("FromMinutes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatEnd(t *testing.T) {
	if got := FormatEnd(1440); got != "24:00" {
		t.Errorf("FormatEnd(1440) = %q, want 24:00", got)
	}
	if got := FormatEnd(600); got != "10:00" {
		t.Errorf("FormatEnd(600) = %q, want 10:00", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{input: 45, want: "45m"},
		{input: 60, want: "1h"},
		{input: 150, want: "2h 30m"},
		{input: 0, want: "0m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.input); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Interval
		wantResult bool
	}{
		{name: "touching end to start", a: Interval{540, 600}, b: Interval{600, 660}, wantResult: false},
		{name: "touching start to end", a: Interval{600, 660}, b: Interval{540, 600}, wantResult: false},
		{name: "partial overlap", a: Interval{540, 600}, b: Interval{570, 630}, wantResult: true},
		{name: "contained", a: Interval{540, 720}, b: Interval{600, 630}, wantResult: true},
		{name: "identical", a: Interval{540, 600}, b: Interval{540, 600}, wantResult: true},
		{name: "disjoint", a: Interval{540, 600}, b: Interval{700, 760}, wantResult: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.wantResult {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.wantResult)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.wantResult {
				t.Errorf("overlap is not symmetric for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("09:00", "24:00")
	if err != nil {
		t.Fatalf("ParseInterval error: %v", err)
	}
	if iv.Start != 540 || iv.End != 1440 {
		t.Errorf("got %+v, want {540 1440}", iv)
	}
	if iv.String() != "09:00-24:00" {
		t.Errorf("String() = %q", iv.String())
	}

	if _, err := ParseInterval("24:00", "24:00"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("expected 24:00 start to be rejected, got %v", err)
	}
	if _, err := ParseInterval("09:00", "9:30"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("expected malformed end to be rejected, got %v", err)
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"am": AM, "PM": PM, " pm ": PM} {
		got, err := ParsePeriod(in)
		if err != nil || got != want {
			t.Errorf("ParsePeriod(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePeriod("noon"); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}
