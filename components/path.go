package components

import "math"

// FlightPath is an ordered, player-drawn polyline a bee follows, optionally
// terminating at a hive slot. The cursor only moves forward during a
// lifecycle; Clear starts a new one.
//
// The destination is a weak back-reference: the path records the slot's grid
// coordinates, never a pointer, so either side can die without invalidating
// the other. The grid resolves the reverse direction through the path mapper.
type FlightPath struct {
	Waypoints []Vec2
	Cursor    int

	// Destination slot, valid only while HasDest.
	HasDest          bool
	DestRow, DestCol int

	// Visual state read by the renderer.
	Connected bool // snapped to a slot
	Visible   bool // dash rendering enabled
}

// Len returns the number of waypoints.
func (p *FlightPath) Len() int {
	return len(p.Waypoints)
}

// Last returns the final waypoint, if any.
func (p *FlightPath) Last() (Vec2, bool) {
	if len(p.Waypoints) == 0 {
		return Vec2{}, false
	}
	return p.Waypoints[len(p.Waypoints)-1], true
}

// Append adds one waypoint to the end and enables rendering.
func (p *FlightPath) Append(pt Vec2) {
	p.Waypoints = append(p.Waypoints, pt)
	p.Visible = true
}

// AppendToward resamples the stretch from the last waypoint toward target
// into fixed-length segments and appends them. Dash density stays
// independent of drag speed: a fast drag appends many segments at once, a
// slow one appends them over several frames. No-op on an empty path.
func (p *FlightPath) AppendToward(target Vec2, segLen float32) {
	if len(p.Waypoints) == 0 || segLen <= 0 {
		return
	}
	last := p.Waypoints[len(p.Waypoints)-1]
	for {
		dx := target.X - last.X
		dy := target.Y - last.Y
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if dist < segLen {
			return
		}
		last = Vec2{X: last.X + dx/dist*segLen, Y: last.Y + dy/dist*segLen}
		p.Append(last)
	}
}

// Clear empties the path, resets the cursor, hides rendering, and drops the
// destination. Idempotent and safe mid-advance.
func (p *FlightPath) Clear() {
	p.Waypoints = p.Waypoints[:0]
	p.Cursor = 0
	p.Visible = false
	p.Disconnect()
}

// Disconnect drops the destination reference and reverts the visual state to
// unconnected. Idempotent.
func (p *FlightPath) Disconnect() {
	p.HasDest = false
	p.DestRow = 0
	p.DestCol = 0
	p.Connected = false
}

// EndReached reports whether the cursor has consumed a path of at least two
// waypoints. A single appended point never counts as a traversed path.
func (p *FlightPath) EndReached() bool {
	return len(p.Waypoints) >= 2 && p.Cursor == len(p.Waypoints)
}

// Advance returns the active steering target for an owner at (x, y).
// Waypoints within the given proximity are consumed; the first one farther
// away is the target. When the path is exhausted and EndReached holds, the
// path self-clears and Advance reports no waypoint.
func (p *FlightPath) Advance(x, y, within float32) (Vec2, bool) {
	withinSq := within * within
	for p.Cursor < len(p.Waypoints) {
		wp := p.Waypoints[p.Cursor]
		dx := wp.X - x
		dy := wp.Y - y
		if dx*dx+dy*dy > withinSq {
			return wp, true
		}
		p.Cursor++
	}
	if p.EndReached() {
		p.Clear()
	}
	return Vec2{}, false
}

// ConnectTo binds the path's endpoint to a slot: the last waypoint is
// overwritten with the slot center so the final approach vector points
// exactly at it. Fails on an empty path. Slot-side registration is the
// caller's responsibility.
func (p *FlightPath) ConnectTo(row, col int, center Vec2) bool {
	if len(p.Waypoints) == 0 {
		return false
	}
	p.Waypoints[len(p.Waypoints)-1] = center
	p.HasDest = true
	p.DestRow = row
	p.DestCol = col
	p.Connected = true
	return true
}
