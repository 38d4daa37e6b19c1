package model

// DimensionTag identifies a typed slot in a Dimensions bag. Tags are small
// integers assigned once at init time by RegisterDimensionTag, giving O(1)
// lookup with no runtime string hashing on the insertion hot path.
type DimensionTag int

var nextDimensionTag DimensionTag

// RegisterDimensionTag allocates a fresh, process-unique tag. Call it from a
// package-level var block so two distinct tags can never alias:
//
//	var TagCapacity = model.RegisterDimensionTag()
func RegisterDimensionTag() DimensionTag {
	t := nextDimensionTag
	nextDimensionTag++
	return t
}

// Well-known dimension tags used by the core constraint modules. Domain
// extensions may register their own tags alongside these.
var (
	TagCapacity       = RegisterDimensionTag() // map[string]int: per-dimension vehicle capacity
	TagDemand         = RegisterDimensionTag() // map[string]int: per-dimension job demand
	TagSkills         = RegisterDimensionTag() // map[string]struct{}: required/available skills
	TagPriority       = RegisterDimensionTag() // int
	TagValue          = RegisterDimensionTag() // float64: job value, used by soft objectives
	TagGroup          = RegisterDimensionTag() // string: grouping key for relation constraints
	TagVehicleBinding = RegisterDimensionTag() // string: vehicle id a job is pinned to
	TagJobType        = RegisterDimensionTag() // JobType: pickup/delivery/break/reload/dispatch
	TagReloadResets    = RegisterDimensionTag() // bool: activity resets capacity accounting
	TagDepotAffinity  = RegisterDimensionTag() // string: required shift-start place id
)

// Dimensions is a typed heterogeneous property bag. Values are stored boxed
// (interface{}) but every access goes through a tag-specific typed accessor,
// so call sites never perform a runtime type assertion against a string key.
type Dimensions map[DimensionTag]interface{}

// NewDimensions returns an empty dimension bag.
func NewDimensions() Dimensions {
	return make(Dimensions)
}

// Set stores value under tag, returning the receiver for chaining.
func (d Dimensions) Set(tag DimensionTag, value interface{}) Dimensions {
	d[tag] = value
	return d
}

// Get returns the raw value stored under tag and whether it was present.
func (d Dimensions) Get(tag DimensionTag) (interface{}, bool) {
	v, ok := d[tag]
	return v, ok
}

// GetCapacity returns the per-dimension vehicle capacity map, or nil.
func (d Dimensions) GetCapacity() map[string]int {
	v, _ := d[TagCapacity].(map[string]int)
	return v
}

// GetDemand returns the per-dimension job demand map, or nil.
func (d Dimensions) GetDemand() map[string]int {
	v, _ := d[TagDemand].(map[string]int)
	return v
}

// GetSkills returns the skill set, or nil if none declared.
func (d Dimensions) GetSkills() map[string]struct{} {
	v, _ := d[TagSkills].(map[string]struct{})
	return v
}

// GetPriority returns the priority value, defaulting to 0.
func (d Dimensions) GetPriority() int {
	v, _ := d[TagPriority].(int)
	return v
}

// GetValue returns the declared job value, defaulting to 0.
func (d Dimensions) GetValue() float64 {
	v, _ := d[TagValue].(float64)
	return v
}

// GetVehicleBinding returns the pinned vehicle id, or "" if unbound.
func (d Dimensions) GetVehicleBinding() string {
	v, _ := d[TagVehicleBinding].(string)
	return v
}

// GetDepotAffinity returns the required shift-start place id, or "" if unset.
func (d Dimensions) GetDepotAffinity() string {
	v, _ := d[TagDepotAffinity].(string)
	return v
}

// JobType classifies a Single for the capacity/breaks/reloads modules.
type JobType int

const (
	JobDelivery JobType = iota
	JobPickup
	JobService
	JobBreak
	JobReload
	JobDispatch
)

// GetJobType returns the declared job type, defaulting to JobService.
func (d Dimensions) GetJobType() JobType {
	v, ok := d[TagJobType].(JobType)
	if !ok {
		return JobService
	}
	return v
}
