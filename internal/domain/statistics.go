package domain

// StatTile is one of the summary figures on top of the dashboard.
type StatTile struct {
	Title string
	Value string
	Trend string
	Icon  string
}

// Metric is a key performance indicator. Unit is displayed right after the value.
type Metric struct {
	Label string
	Value int
	Unit  string
	Tone  string
}

// Percentage returns the value clamped to 0..100, used for bar widths.
func (m Metric) Percentage() int {
	switch {
	case m.Value < 0:
		return 0
	case m.Value > 100:
		return 100
	default:
		return m.Value
	}
}

// DailyPerformance holds on-time and delay figures for one weekday.
type DailyPerformance struct {
	Day           string
	OnTimeRate    int // percent
	DelayMinutes  int
	OnTimeTrains  int
	DelayedTrains int
}

// HourlyThroughput is the number of trains passing in a given hour.
type HourlyThroughput struct {
	Hour   string
	Trains int
}

// ZoneShare is the traffic share of a railway zone.
type ZoneShare struct {
	Name       string
	Percentage int
	Trains     int
}

type Analytics struct {
	Metrics    []Metric
	Weekly     []DailyPerformance
	Throughput []HourlyThroughput
	Zones      []ZoneShare
}

// PeakThroughput returns the hour with the most trains.
func (a Analytics) PeakThroughput() HourlyThroughput {
	var peak HourlyThroughput
	for _, t := range a.Throughput {
		if t.Trains > peak.Trains {
			peak = t
		}
	}
	return peak
}

// AverageOnTimeRate returns the mean weekly on-time rate in percent.
func (a Analytics) AverageOnTimeRate() int {
	if len(a.Weekly) == 0 {
		return 0
	}
	sum := 0
	for _, d := range a.Weekly {
		sum += d.OnTimeRate
	}
	return sum / len(a.Weekly)
}

type Dashboard struct {
	Stats  []StatTile
	Trains []Train
}
