package depots_test

import (
	"testing"

	"github.com/vrpsolver/vrp/pkg/framework/plugins/depots"
	"github.com/vrpsolver/vrp/pkg/model"
)

func mustPlace(t *testing.T, loc model.Location) model.Place {
	t.Helper()
	p, err := model.NewPlace(loc, 0, nil)
	if err != nil {
		t.Fatalf("NewPlace: %v", err)
	}
	return p
}

func mustSingle(t *testing.T, id string, affinity string) *model.Single {
	t.Helper()
	s, err := model.NewSingle(id, []model.Place{mustPlace(t, 1)}, nil)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	if affinity != "" {
		s.Dims.Set(model.TagDepotAffinity, affinity)
	}
	return s
}

func newRouteFromDepot(t *testing.T, depotLocation model.Location) *model.Route {
	t.Helper()
	start := mustPlace(t, depotLocation)
	vehicle, err := model.NewVehicle("v1", "car", []model.Shift{{Start: start}}, nil)
	if err != nil {
		t.Fatalf("NewVehicle: %v", err)
	}
	return model.NewRoute(&model.Actor{Vehicle: vehicle, ShiftIndex: 0}, 0)
}

func byLocation(ids map[model.Location]string) depots.PlaceID {
	return func(loc model.Location) string { return ids[loc] }
}

func TestCheckRouteAcceptsJobsWithNoDepotAffinity(t *testing.T) {
	m := depots.New(byLocation(map[model.Location]string{0: "north"}))
	route := newRouteFromDepot(t, 0)
	job := mustSingle(t, "job-1", "")

	ok, code := m.HardRouteConstraints()[0](nil, route, job)
	if !ok || code != 0 {
		t.Fatalf("expected (true, 0) for a job with no affinity, got (%v, %v)", ok, code)
	}
}

func TestCheckRouteAcceptsWhenPlaceIDResolverIsNil(t *testing.T) {
	m := depots.New(nil)
	route := newRouteFromDepot(t, 0)
	job := mustSingle(t, "job-1", "north")

	ok, code := m.HardRouteConstraints()[0](nil, route, job)
	if !ok || code != 0 {
		t.Fatalf("expected (true, 0) with no resolver configured, got (%v, %v)", ok, code)
	}
}

func TestCheckRouteAcceptsMatchingDepotAffinity(t *testing.T) {
	m := depots.New(byLocation(map[model.Location]string{0: "north"}))
	route := newRouteFromDepot(t, 0)
	job := mustSingle(t, "job-1", "north")

	ok, code := m.HardRouteConstraints()[0](nil, route, job)
	if !ok || code != 0 {
		t.Fatalf("expected (true, 0) for a matching depot, got (%v, %v)", ok, code)
	}
}

func TestCheckRouteRejectsMismatchedDepotAffinity(t *testing.T) {
	m := depots.New(byLocation(map[model.Location]string{0: "north"}))
	route := newRouteFromDepot(t, 0)
	job := mustSingle(t, "job-1", "south")

	ok, code := m.HardRouteConstraints()[0](nil, route, job)
	if ok || code == 0 {
		t.Fatalf("expected a rejection for a mismatched depot, got (%v, %v)", ok, code)
	}
}
