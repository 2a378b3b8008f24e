package date

import "testing"

func TestHistoryAppendKeepsOrder(t *testing.T) {
	var h History[float64]
	h.Append(MustParse("2024-01-05"), 110)
	h.Append(MustParse("2024-01-01"), 100)
	h.Append(MustParse("2024-01-03"), 105)

	var days []string
	for on := range h.Values() {
		days = append(days, on.String())
	}
	want := []string{"2024-01-01", "2024-01-03", "2024-01-05"}
	for i, w := range want {
		if days[i] != w {
			t.Fatalf("order %v, want %v", days, want)
		}
	}
}

func TestHistoryAppendOverwrites(t *testing.T) {
	var h History[float64]
	on := MustParse("2024-01-01")
	h.Append(on, 100)
	h.Append(on, 101)
	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	if v, _ := h.Get(on); v != 101 {
		t.Errorf("Get = %v, want the last write 101", v)
	}
}

func TestHistoryValueAsOf(t *testing.T) {
	var h History[float64]
	h.Append(MustParse("2024-01-01"), 100)
	h.Append(MustParse("2024-01-05"), 110)

	testCases := []struct {
		name  string
		day   string
		want  float64
		found bool
	}{
		{"Exact match", "2024-01-01", 100, true},
		{"Between points carries forward", "2024-01-03", 100, true},
		{"Second exact match", "2024-01-05", 110, true},
		{"After last point", "2024-02-01", 110, true},
		{"Before first point", "2023-12-01", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := h.ValueAsOf(MustParse(tc.day))
			if found != tc.found || got != tc.want {
				t.Errorf("ValueAsOf(%s) = (%v, %v), want (%v, %v)", tc.day, got, found, tc.want, tc.found)
			}
		})
	}
}

func TestHistoryFirstLatest(t *testing.T) {
	var h History[string]
	if _, _, ok := h.First(); ok {
		t.Error("First on empty history should report false")
	}
	if _, _, ok := h.Latest(); ok {
		t.Error("Latest on empty history should report false")
	}
	h.Append(MustParse("2024-01-02"), "b")
	h.Append(MustParse("2024-01-01"), "a")
	if on, v, _ := h.First(); on != MustParse("2024-01-01") || v != "a" {
		t.Errorf("First = (%v, %v)", on, v)
	}
	if on, v, _ := h.Latest(); on != MustParse("2024-01-02") || v != "b" {
		t.Errorf("Latest = (%v, %v)", on, v)
	}
}
