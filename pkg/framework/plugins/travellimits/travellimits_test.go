package travellimits_test

import (
	"testing"

	"github.com/vrpsolver/vrp/pkg/framework/plugins/travellimits"
	"github.com/vrpsolver/vrp/pkg/model"
)

type linearTransport struct{}

func (linearTransport) Duration(_ model.Profile, from, to model.Location, _ float64) float64 {
	return distanceOf(from, to)
}

func (linearTransport) Distance(_ model.Profile, from, to model.Location, _ float64) float64 {
	return distanceOf(from, to)
}

func distanceOf(from, to model.Location) float64 {
	d := float64(to - from)
	if d < 0 {
		d = -d
	}
	return d
}

func mustPlace(t *testing.T, loc model.Location) model.Place {
	t.Helper()
	p, err := model.NewPlace(loc, 0, nil)
	if err != nil {
		t.Fatalf("NewPlace: %v", err)
	}
	return p
}

func mustJobActivity(t *testing.T, loc model.Location, arrival float64) *model.Activity {
	t.Helper()
	place := mustPlace(t, loc)
	single, err := model.NewSingle("job", []model.Place{place}, nil)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	return model.NewJobActivity(single, single, place, arrival)
}

func newRouteWithOneJob(t *testing.T, jobLocation model.Location, jobDeparture float64) *model.Route {
	t.Helper()
	start := mustPlace(t, 0)
	vehicle, err := model.NewVehicle("v1", "car", []model.Shift{{Start: start}}, nil)
	if err != nil {
		t.Fatalf("NewVehicle: %v", err)
	}
	route := model.NewRoute(&model.Actor{Vehicle: vehicle, ShiftIndex: 0}, 0)
	job := mustJobActivity(t, jobLocation, jobDeparture)
	route.Tour.InsertAt(len(route.Tour.Activities), job)
	return route
}

func TestCheckActivityAcceptsWhenNoLimitsConfigured(t *testing.T) {
	route := newRouteWithOneJob(t, 10, 10)
	m := travellimits.New(linearTransport{}, func(*model.Vehicle) travellimits.Limits { return travellimits.Limits{} })
	m.AcceptRoute(route)

	prev := route.Tour.JobActivities()[0]
	candidate := mustJobActivity(t, 1000, 0)

	ok, code, _ := m.HardActivityConstraints()[0](route, prev, nil, candidate)
	if !ok || code != 0 {
		t.Fatalf("expected an unbounded module to always accept, got (%v, %v)", ok, code)
	}
}

func TestCheckActivityAcceptsWithinMaxDistance(t *testing.T) {
	route := newRouteWithOneJob(t, 10, 10)
	m := travellimits.New(linearTransport{}, func(*model.Vehicle) travellimits.Limits {
		return travellimits.Limits{MaxDistance: 15}
	})
	m.AcceptRoute(route) // accumulated distance at the job activity: 0->10 = 10

	prev := route.Tour.JobActivities()[0]
	candidate := mustJobActivity(t, 14, 0) // +4 leg, 10+4=14 <= 15

	ok, code, _ := m.HardActivityConstraints()[0](route, prev, nil, candidate)
	if !ok || code != 0 {
		t.Fatalf("expected (true, 0) within the distance cap, got (%v, %v)", ok, code)
	}
}

func TestCheckActivityRejectsExceedingMaxDistance(t *testing.T) {
	route := newRouteWithOneJob(t, 10, 10)
	m := travellimits.New(linearTransport{}, func(*model.Vehicle) travellimits.Limits {
		return travellimits.Limits{MaxDistance: 15}
	})
	m.AcceptRoute(route) // accumulated distance at the job activity: 10

	prev := route.Tour.JobActivities()[0]
	candidate := mustJobActivity(t, 20, 0) // +10 leg, 10+10=20 > 15

	ok, code, _ := m.HardActivityConstraints()[0](route, prev, nil, candidate)
	if ok || code == 0 {
		t.Fatalf("expected a rejection for exceeding max distance, got (%v, %v)", ok, code)
	}
}

func TestCheckActivityAcceptsWithinMaxShiftDuration(t *testing.T) {
	route := newRouteWithOneJob(t, 10, 10)
	m := travellimits.New(linearTransport{}, func(*model.Vehicle) travellimits.Limits {
		return travellimits.Limits{MaxShiftSeconds: 15}
	})
	m.AcceptRoute(route) // accumulated duration at the job activity: 10

	prev := route.Tour.JobActivities()[0]
	candidate := mustJobActivity(t, 10, 10) // departure 10, elapsed = 10 <= 15

	ok, code, _ := m.HardActivityConstraints()[0](route, prev, nil, candidate)
	if !ok || code != 0 {
		t.Fatalf("expected (true, 0) within the shift duration cap, got (%v, %v)", ok, code)
	}
}

func TestCheckActivityRejectsExceedingMaxShiftDuration(t *testing.T) {
	route := newRouteWithOneJob(t, 10, 10)
	m := travellimits.New(linearTransport{}, func(*model.Vehicle) travellimits.Limits {
		return travellimits.Limits{MaxShiftSeconds: 15}
	})
	m.AcceptRoute(route)

	prev := route.Tour.JobActivities()[0]
	candidate := mustJobActivity(t, 10, 20) // departure 20, elapsed = 20 > 15

	ok, code, _ := m.HardActivityConstraints()[0](route, prev, nil, candidate)
	if ok || code == 0 {
		t.Fatalf("expected a rejection for exceeding max shift duration, got (%v, %v)", ok, code)
	}
}

func TestCheckActivityTreatsUncachedAccumulatedAsZero(t *testing.T) {
	route := newRouteWithOneJob(t, 10, 10) // AcceptRoute deliberately not called
	m := travellimits.New(linearTransport{}, func(*model.Vehicle) travellimits.Limits {
		return travellimits.Limits{MaxDistance: 5}
	})

	prev := route.Tour.JobActivities()[0]
	candidate := mustJobActivity(t, 14, 0) // leg 4 from an assumed-zero baseline, within 5

	ok, code, _ := m.HardActivityConstraints()[0](route, prev, nil, candidate)
	if !ok || code != 0 {
		t.Fatalf("expected an uncached baseline to default to 0, got (%v, %v)", ok, code)
	}
}
