package date

import "testing"

func TestParseSelector(t *testing.T) {
	today := MustParse("2024-06-15")
	first := MustParse("2021-03-01")

	testCases := []struct {
		name      string
		selector  string
		wantFrom  string
		wantTo    string
		expectErr bool
	}{
		{"Last month", "1m", "2024-05-15", "2024-06-15", false},
		{"Last three months", "3m", "2024-03-15", "2024-06-15", false},
		{"Last six months", "6m", "2023-12-15", "2024-06-15", false},
		{"Year to date", "ytd", "2024-01-01", "2024-06-15", false},
		{"Trailing year", "1y", "2023-06-15", "2024-06-15", false},
		{"All time", "all", "2021-03-01", "2024-06-15", false},
		{"Custom", "2024-01-01:2024-02-01", "2024-01-01", "2024-02-01", false},
		{"Custom reversed is swapped", "2024-02-01:2024-01-01", "2024-01-01", "2024-02-01", false},
		{"Uppercase selector", "YTD", "2024-01-01", "2024-06-15", false},
		{"Unknown", "5w", "", "", true},
		{"Bad custom date", "2024-01-01:soon", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ParseSelector(tc.selector, first, today)
			if (err != nil) != tc.expectErr {
				t.Fatalf("ParseSelector(%q) error = %v, want error: %v", tc.selector, err, tc.expectErr)
			}
			if tc.expectErr {
				return
			}
			if r.From.String() != tc.wantFrom || r.To.String() != tc.wantTo {
				t.Errorf("ParseSelector(%q) = %v, want %s..%s", tc.selector, r, tc.wantFrom, tc.wantTo)
			}
		})
	}
}

func TestAllTimeWithoutHistory(t *testing.T) {
	today := MustParse("2024-06-15")
	r := AllTime(Date{}, today)
	if r.From != today || r.To != today {
		t.Errorf("AllTime with zero first = %v, want single day", r)
	}
}

func TestRangeEachAndDays(t *testing.T) {
	r := Between(MustParse("2024-02-27"), MustParse("2024-03-02"))
	if r.Days() != 5 {
		t.Fatalf("Days = %d, want 5 (leap february)", r.Days())
	}
	var got []string
	for d := range r.Each() {
		got = append(got, d.String())
	}
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("Each yielded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Each yielded %v, want %v", got, want)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Between(MustParse("2024-01-01"), MustParse("2024-01-31"))
	if !r.Contains(MustParse("2024-01-01")) || !r.Contains(MustParse("2024-01-31")) {
		t.Error("boundaries must be included")
	}
	if r.Contains(MustParse("2023-12-31")) || r.Contains(MustParse("2024-02-01")) {
		t.Error("days outside the range must be excluded")
	}
}
