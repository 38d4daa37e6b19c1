package capacity_test

import (
	"testing"

	"github.com/vrpsolver/vrp/pkg/framework/plugins/capacity"
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

func pickup(t *testing.T, id string, loc model.Location, demand map[string]int) *model.Single {
	t.Helper()
	s, err := model.NewSingle(id, []model.Place{mustPlace(t, loc)}, nil)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	s.Dims.Set(model.TagDemand, demand)
	s.Dims.Set(model.TagJobType, model.JobPickup)
	return s
}

func delivery(t *testing.T, id string, loc model.Location, demand map[string]int) *model.Single {
	t.Helper()
	s, err := model.NewSingle(id, []model.Place{mustPlace(t, loc)}, nil)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	s.Dims.Set(model.TagDemand, demand)
	s.Dims.Set(model.TagJobType, model.JobDelivery)
	return s
}

func reload(t *testing.T, id string, loc model.Location) *model.Single {
	t.Helper()
	s, err := model.NewSingle(id, []model.Place{mustPlace(t, loc)}, nil)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	s.Dims.Set(model.TagJobType, model.JobReload)
	return s
}

func newCarryingRoute(t *testing.T, capacities map[string]int) *model.Route {
	t.Helper()
	start := mustPlace(t, 0)
	vehicle, err := model.NewVehicle("v1", "car", []model.Shift{{Start: start}}, model.NewDimensions().Set(model.TagCapacity, capacities))
	if err != nil {
		t.Fatalf("NewVehicle: %v", err)
	}
	return model.NewRoute(&model.Actor{Vehicle: vehicle, ShiftIndex: 0}, 0)
}

func TestCheckRouteRejectsDemandExceedingDeclaredCapacity(t *testing.T) {
	route := newCarryingRoute(t, map[string]int{"weight": 5})
	m := capacity.New()
	job := pickup(t, "p1", 1, map[string]int{"weight": 10})

	ok, code := m.HardRouteConstraints()[0](nil, route, job)
	if ok || code == 0 {
		t.Fatalf("expected the oversized pickup to be rejected outright")
	}
}

func TestCheckRouteAcceptsDemandWithinCapacity(t *testing.T) {
	route := newCarryingRoute(t, map[string]int{"weight": 50})
	m := capacity.New()
	job := pickup(t, "p1", 1, map[string]int{"weight": 10})

	ok, code := m.HardRouteConstraints()[0](nil, route, job)
	if !ok || code != 0 {
		t.Fatalf("expected (true, 0), got (%v, %v)", ok, code)
	}
}

func TestCheckRouteIgnoresVehiclesWithNoCapacityDimension(t *testing.T) {
	route := newCarryingRoute(t, nil)
	m := capacity.New()
	job := pickup(t, "p1", 1, map[string]int{"weight": 1000})

	ok, _ := m.HardRouteConstraints()[0](nil, route, job)
	if !ok {
		t.Fatalf("expected no capacity dimension to mean no rejection")
	}
}

func TestAcceptRouteAccumulatesPickupsForward(t *testing.T) {
	route := newCarryingRoute(t, map[string]int{"weight": 10})
	m := capacity.New()

	p1 := pickup(t, "p1", 1, map[string]int{"weight": 3})
	p2 := pickup(t, "p2", 2, map[string]int{"weight": 4})
	a1 := model.NewJobActivity(p1, p1, p1.Places[0], 0)
	a2 := model.NewJobActivity(p2, p2, p2.Places[0], 0)
	route.Tour.InsertAt(len(route.Tour.Activities), a1)
	route.Tour.InsertAt(len(route.Tour.Activities), a2)

	m.AcceptRoute(route)

	// checkActivity at a2, given a1 as prev, should see load 3 (from a1)
	// plus a2's own +4 = 7, which fits within capacity 10.
	ok, code, _ := m.HardActivityConstraints()[0](route, a1, nil, a2)
	if !ok || code != 0 {
		t.Fatalf("expected (true, 0, _), got (%v, %v)", ok, code)
	}
}

func TestCheckActivityRejectsLoadExceedingCapacity(t *testing.T) {
	route := newCarryingRoute(t, map[string]int{"weight": 5})
	m := capacity.New()

	p1 := pickup(t, "p1", 1, map[string]int{"weight": 3})
	a1 := model.NewJobActivity(p1, p1, p1.Places[0], 0)
	route.Tour.InsertAt(len(route.Tour.Activities), a1)
	m.AcceptRoute(route)

	p2 := pickup(t, "p2", 2, map[string]int{"weight": 4})
	a2 := model.NewJobActivity(p2, p2, p2.Places[0], 0)

	// Running load before a2 is 3 (from a1); adding +4 = 7 exceeds capacity 5.
	ok, code, _ := m.HardActivityConstraints()[0](route, a1, nil, a2)
	if ok || code == 0 {
		t.Fatalf("expected inserting a2 to violate capacity, got (%v, %v)", ok, code)
	}
}

func TestCheckActivityRejectsDeliveryDrivingLoadNegative(t *testing.T) {
	route := newCarryingRoute(t, map[string]int{"weight": 5})
	m := capacity.New()

	d1 := delivery(t, "d1", 1, map[string]int{"weight": 3})
	a1 := model.NewJobActivity(d1, d1, d1.Places[0], 0)

	// No prior pickup: delivering before anything was picked up drives the
	// running load negative.
	ok, code, _ := m.HardActivityConstraints()[0](route, nil, nil, a1)
	if ok || code == 0 {
		t.Fatalf("expected a delivery with no prior pickup to be rejected, got (%v, %v)", ok, code)
	}
}

func TestAcceptRouteResetsLoadAtReloadActivity(t *testing.T) {
	route := newCarryingRoute(t, map[string]int{"weight": 5})
	m := capacity.New()

	p1 := pickup(t, "p1", 1, map[string]int{"weight": 5})
	a1 := model.NewJobActivity(p1, p1, p1.Places[0], 0)
	route.Tour.InsertAt(len(route.Tour.Activities), a1)

	rl := reload(t, "r1", 2)
	ar := model.NewJobActivity(rl, rl, rl.Places[0], 0)
	route.Tour.InsertAt(len(route.Tour.Activities), ar)

	p2 := pickup(t, "p2", 3, map[string]int{"weight": 5})
	a2 := model.NewJobActivity(p2, p2, p2.Places[0], 0)
	route.Tour.InsertAt(len(route.Tour.Activities), a2)

	m.AcceptRoute(route)

	// Without the reload resetting the running load, 5 (from a1) + 5 (from
	// a2) would exceed capacity 5; the reload must zero it back out first.
	ok, code, _ := m.HardActivityConstraints()[0](route, ar, nil, a2)
	if !ok || code != 0 {
		t.Fatalf("expected the reload to reset load so a2 alone fits, got (%v, %v)", ok, code)
	}
}
