package ui

import (
	"net/http"

	"github.com/railflow/railflow-portal/internal/app/api/core/request"
	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/domain"
)

type refreshOption struct {
	Seconds int
	Label   string
}

var refreshOptions = []refreshOption{
	{Seconds: 15, Label: "15 seconds"},
	{Seconds: 30, Label: "30 seconds"},
	{Seconds: 60, Label: "1 minute"},
	{Seconds: 300, Label: "5 minutes"},
}

// handlePage renders the screen selected by the gate, for any path.
func (f *Frontend) handlePage(w http.ResponseWriter, r *http.Request) {
	current := f.session.GetData(r.Context()).Gate

	switch current.View() {
	case domain.ViewLogin:
		f.render(w, r, http.StatusOK, "login.gohtml", nil)
	case domain.ViewDirectionSelection:
		f.render(w, r, http.StatusOK, "direction.gohtml", nil)
	case domain.ViewConfiguration:
		f.render(w, r, http.StatusOK, "configuration.gohtml", respond.TplData{
			"TrainTypes": domain.TrainTypes,
			"Priorities": domain.ConfigurationPriorities,
		})
	default:
		f.pages.ServeHTTP(w, r)
	}
}

func (f *Frontend) handleDashboardGet(w http.ResponseWriter, r *http.Request) {
	f.render(w, r, http.StatusOK, "dashboard.gohtml", respond.TplData{
		"Active":       "dashboard",
		"Dashboard":    f.control.GetDashboard(r.Context()),
		"QuickActions": domain.QuickActions,
	})
}

// handleTrainControlGet shows all tracked trains, with the details of the selected one.
// Without an id in the path, the first train is selected.
func (f *Frontend) handleTrainControlGet(w http.ResponseWriter, r *http.Request) {
	trains := f.control.GetTrains(r.Context())

	var selected domain.TrackedTrain
	if id := request.Path(r, "id"); id != "" {
		train, err := f.control.GetTrain(r.Context(), id)
		if err != nil {
			f.handleNotFound(w, r)
			return
		}
		selected = train
	} else if len(trains) > 0 {
		selected = trains[0]
	}

	f.render(w, r, http.StatusOK, "train_control.gohtml", respond.TplData{
		"Active":       "train-control",
		"Trains":       trains,
		"Selected":     selected,
		"StationIndex": selected.StationIndex(),
		"Actions":      domain.ControlActions,
	})
}

func (f *Frontend) handleAnalyticsGet(w http.ResponseWriter, r *http.Request) {
	analytics := f.control.GetAnalytics(r.Context())

	f.render(w, r, http.StatusOK, "analytics.gohtml", respond.TplData{
		"Active":     "analytics",
		"Analytics":  analytics,
		"Peak":       analytics.PeakThroughput(),
		"AvgOnTime":  analytics.AverageOnTimeRate(),
		"MaxDelayed": maxDelayedTrains(analytics.Weekly),
	})
}

func (f *Frontend) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	f.render(w, r, http.StatusOK, "settings.gohtml", respond.TplData{
		"Active":         "settings",
		"System":         f.control.GetSystemInfo(r.Context()),
		"PriorityModes":  domain.PriorityModes,
		"RefreshOptions": refreshOptions,
	})
}

func (f *Frontend) handleNotFound(w http.ResponseWriter, r *http.Request) {
	f.render(w, r, http.StatusNotFound, "notfound.gohtml", nil)
}

func maxDelayedTrains(days []domain.DailyPerformance) int {
	m := 0
	for _, d := range days {
		m = max(m, d.OnTimeTrains+d.DelayedTrains)
	}
	return m
}
