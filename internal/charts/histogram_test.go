package charts

import (
	"fmt"
	"strings"
	"testing"
)

func TestHistogramEqualValues(t *testing.T) {
	for _, n := range []int{1, 2, 7, 50} {
		var sb strings.Builder
		sb.WriteString("x,y\n")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&sb, "%d,5\n", i)
		}
		ds := mustLoad(t, sb.String())

		c, err := Render(ds, "x", "y", Histogram)
		if err != nil {
			t.Fatalf("n=%d: Render failed: %v", n, err)
		}

		nonEmpty := 0
		for _, b := range c.Bins {
			if b.Count > 0 {
				nonEmpty++
				if b.Count != n {
					t.Errorf("n=%d: expected count %d, got %d", n, n, b.Count)
				}
				if b.Lo > 5 || b.Hi < 5 {
					t.Errorf("n=%d: bin [%v, %v] does not hold 5", n, b.Lo, b.Hi)
				}
			}
		}
		if nonEmpty != 1 {
			t.Errorf("n=%d: expected 1 non-empty bin, got %d", n, nonEmpty)
		}
		if c.Bins[0].Lo != 4.5 || c.Bins[len(c.Bins)-1].Hi != 5.5 {
			t.Errorf("n=%d: expected range [4.5, 5.5], got [%v, %v]", n, c.Bins[0].Lo, c.Bins[len(c.Bins)-1].Hi)
		}
	}
}

func TestHistogramMaxInLastBin(t *testing.T) {
	values := make([]float64, 0, 21)
	for i := 0; i <= 20; i++ {
		values = append(values, float64(i))
	}
	bins := binValues(values, HistogramBins, false)

	if len(bins) != HistogramBins {
		t.Fatalf("Expected %d bins, got %d", HistogramBins, len(bins))
	}
	total := 0
	for i, b := range bins {
		total += b.Count
		want := 1
		if i == len(bins)-1 {
			want = 2
		}
		if b.Count != want {
			t.Errorf("bin %d [%v, %v] count = %d, want %d", i, b.Lo, b.Hi, b.Count, want)
		}
	}
	if total != len(values) {
		t.Errorf("Expected %d values binned, got %d", len(values), total)
	}
	if bins[0].Lo != 0 || bins[len(bins)-1].Hi != 20 {
		t.Errorf("Unexpected range [%v, %v]", bins[0].Lo, bins[len(bins)-1].Hi)
	}
}

func TestHistogramIgnoresX(t *testing.T) {
	ds := mustLoad(t, "label,depth\nalpha,1\n,2\ngamma,3\n")

	c, err := Render(ds, "label", "depth", Histogram)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	total := 0
	for _, b := range c.Bins {
		total += b.Count
	}
	if total != 3 {
		t.Errorf("Expected all 3 y values binned regardless of x, got %d", total)
	}
	if c.XLabel != "label" || c.YLabel != "depth" {
		t.Errorf("Unexpected labels %s/%s", c.XLabel, c.YLabel)
	}
}

func TestHistogramTimeValues(t *testing.T) {
	ds := mustLoad(t, "n,when\n1,2024-01-01\n2,2024-01-11\n3,2024-01-21\n")

	c, err := Render(ds, "n", "when", Histogram)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c.Bins[0].Count != 1 || c.Bins[len(c.Bins)-1].Count != 1 {
		t.Errorf("Expected first and last bins to hold one date each, got %+v", c.Bins)
	}
}

func TestHistogramFarDates(t *testing.T) {
	ds := mustLoad(t, "n,when\n1,2300-01-01\n2,2300-01-01\n")

	c, err := Render(ds, "n", "when", Histogram)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(c.Bins) != HistogramBins {
		t.Fatalf("Expected %d bins, got %d", HistogramBins, len(c.Bins))
	}
	if got := timeFormatter(c.Bins[0].Lo); got != "2299-12-31 23:30" {
		t.Errorf("Expected bins to start half an hour before the date, got %s", got)
	}
	total := 0
	for _, b := range c.Bins {
		total += b.Count
	}
	if total != 2 {
		t.Errorf("Expected both dates binned, got %d", total)
	}
}
