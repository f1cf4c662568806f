package domain

// ResolvedStop is a delivery address that has been successfully geocoded.
// It is immutable once created; addresses that fail resolution never
// become a ResolvedStop.
type ResolvedStop struct {
	Address string
	Coords  Coordinates
}

// Represents a single stop in an optimized delivery route.
// A RouteStop carries its position in the visiting order and the tip
// associated with the delivery (0 until tips have been collected).
type RouteStop struct {
	ResolvedStop
	Position int
	Tip      float64
}

// Represents the planned visiting order for a single delivery run.
// The central location is implicit at both ends of the sequence.
// A Route is the output of a routing algorithm and describes the ordered
// stops along with aggregate distance and duration metrics. It is
// immutable planning data and contains no side effects.
//
// Estimated is set when the route was produced by the local fallback
// heuristic: distances are then straight-line approximations rather than
// road-network figures, and callers surface that to the user.
type Route struct {
	Central              ResolvedStop
	Stops                []RouteStop
	TotalDistanceMiles   float64
	TotalDurationMinutes float64
	Estimated            bool
}
