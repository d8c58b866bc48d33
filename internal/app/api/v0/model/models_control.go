package model

import (
	"github.com/railflow/railflow-portal/internal/domain"
)

type StatTile struct {
	Title string `json:"Title"`
	Value string `json:"Value"`
	Trend string `json:"Trend"`
}

type Train struct {
	Id       string `json:"Id"`
	Name     string `json:"Name"`
	Status   string `json:"Status"`
	Signal   string `json:"Signal"`
	Delay    int    `json:"Delay"` // minutes
	Route    string `json:"Route"`
	Priority string `json:"Priority"`
}

func NewTrain(src domain.Train) Train {
	return Train{
		Id:       src.Id,
		Name:     src.Name,
		Status:   string(src.Status),
		Signal:   src.Status.Signal(),
		Delay:    src.Delay,
		Route:    src.Route,
		Priority: string(src.Priority),
	}
}

type Dashboard struct {
	Stats  []StatTile `json:"Stats"`
	Trains []Train    `json:"Trains"`
}

func NewDashboard(src domain.Dashboard) Dashboard {
	d := Dashboard{
		Stats:  make([]StatTile, len(src.Stats)),
		Trains: make([]Train, len(src.Trains)),
	}
	for i, s := range src.Stats {
		d.Stats[i] = StatTile{Title: s.Title, Value: s.Value, Trend: s.Trend}
	}
	for i, t := range src.Trains {
		d.Trains[i] = NewTrain(t)
	}
	return d
}

type TrackedTrain struct {
	Train

	CurrentLocation  string   `json:"CurrentLocation"`
	NextStation      string   `json:"NextStation"`
	EstimatedArrival string   `json:"EstimatedArrival"`
	Latitude         float64  `json:"Latitude"`
	Longitude        float64  `json:"Longitude"`
	RouteStations    []string `json:"RouteStations"`
	StationIndex     int      `json:"StationIndex"`
}

func NewTrackedTrain(src domain.TrackedTrain) TrackedTrain {
	return TrackedTrain{
		Train:            NewTrain(src.Train),
		CurrentLocation:  src.CurrentLocation,
		NextStation:      src.NextStation,
		EstimatedArrival: src.EstimatedArrival,
		Latitude:         src.Coordinates.Lat,
		Longitude:        src.Coordinates.Lng,
		RouteStations:    src.RouteStations,
		StationIndex:     src.StationIndex(),
	}
}

func NewTrackedTrains(src []domain.TrackedTrain) []TrackedTrain {
	results := make([]TrackedTrain, len(src))
	for i := range src {
		results[i] = NewTrackedTrain(src[i])
	}
	return results
}

type Analytics struct {
	Metrics    []domain.Metric           `json:"Metrics"`
	Weekly     []domain.DailyPerformance `json:"Weekly"`
	Throughput []domain.HourlyThroughput `json:"Throughput"`
	Zones      []domain.ZoneShare        `json:"Zones"`

	PeakHour          string `json:"PeakHour"`
	AverageOnTimeRate int    `json:"AverageOnTimeRate"`
}

func NewAnalytics(src domain.Analytics) Analytics {
	return Analytics{
		Metrics:           src.Metrics,
		Weekly:            src.Weekly,
		Throughput:        src.Throughput,
		Zones:             src.Zones,
		PeakHour:          src.PeakThroughput().Hour,
		AverageOnTimeRate: src.AverageOnTimeRate(),
	}
}

type SystemInfo struct {
	Version    string `json:"Version"`
	Uptime     string `json:"Uptime"`
	LastUpdate string `json:"LastUpdate"`
	Status     string `json:"Status"`
}

func NewSystemInfo(src domain.SystemInfo) SystemInfo {
	return SystemInfo{
		Version:    src.Version,
		Uptime:     src.Uptime,
		LastUpdate: src.LastUpdate,
		Status:     src.Status,
	}
}

type TrainActionRequest struct {
	Action string `json:"Action" validate:"required"`
}

type ActionResponse struct {
	Notification *Notification `json:"Notification"`
}
