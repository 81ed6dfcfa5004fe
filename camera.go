package spinview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minPolar keeps the orbit away from the poles where look-at degenerates.
const minPolar = 1e-4

// orbitPose is the full state an orbit controller can move.
type orbitPose struct {
	target  mgl64.Vec3
	radius  float64
	azimuth float64 // around +Y, 0 looks down -Z from +Z
	polar   float64 // from +Y
}

// poseTween animates every pose field at once. Fields are written through
// pointers each update, the same way a tween group drives node fields.
type poseTween struct {
	tweens []*gween.Tween
	fields []*float64
}

func (t *poseTween) update(dt float32) bool {
	done := true
	for i, tw := range t.tweens {
		v, finished := tw.Update(dt)
		*t.fields[i] = float64(v)
		if !finished {
			done = false
		}
	}
	return done
}

// Camera is a perspective camera driven by an orbit controller: rotate around
// a target, dolly toward it, and pan the target in the view plane. It never
// touches object orientation.
type Camera struct {
	// FovY is the vertical field of view in radians.
	FovY      float64
	Near, Far float64

	// Orbit limits and sensitivities.
	MinRadius   float64
	MaxRadius   float64
	RotateSpeed float64
	ZoomSpeed   float64
	PanSpeed    float64

	pose  orbitPose
	home  orbitPose
	tween *poseTween
}

// NewCamera creates a camera at eye looking at target. fovYDeg is the
// vertical field of view in degrees. The starting pose becomes the home pose
// used by Reset.
func NewCamera(eye, target mgl64.Vec3, fovYDeg float64) *Camera {
	off := eye.Sub(target)
	r := off.Len()
	if r == 0 {
		r = 1
		off = mgl64.Vec3{0, 0, 1}
	}
	pose := orbitPose{
		target:  target,
		radius:  r,
		azimuth: math.Atan2(off.X(), off.Z()),
		polar:   math.Acos(mgl64.Clamp(off.Y()/r, -1, 1)),
	}
	return &Camera{
		FovY:        mgl64.DegToRad(fovYDeg),
		Near:        0.1,
		Far:         1000,
		MinRadius:   0.5,
		MaxRadius:   100,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		PanSpeed:    1,
		pose:        pose,
		home:        pose,
	}
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() mgl64.Vec3 {
	p := c.pose
	sp, cp := math.Sincos(p.polar)
	sa, ca := math.Sincos(p.azimuth)
	return p.target.Add(mgl64.Vec3{sp * sa, cp, sp * ca}.Mul(p.radius))
}

// Target returns the orbit center.
func (c *Camera) Target() mgl64.Vec3 {
	return c.pose.target
}

// Radius returns the distance from the eye to the target.
func (c *Camera) Radius() float64 {
	return c.pose.radius
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.pose.target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for a viewport aspect ratio.
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Orbit rotates the eye around the target. dx and dy are pointer deltas in
// pixels; viewportH normalizes them so one full viewport height of drag is one
// full turn.
func (c *Camera) Orbit(dx, dy, viewportH float64) {
	if viewportH <= 0 {
		return
	}
	c.tween = nil
	c.pose.azimuth -= 2 * math.Pi * dx / viewportH * c.RotateSpeed
	c.pose.polar -= 2 * math.Pi * dy / viewportH * c.RotateSpeed
	c.pose.polar = mgl64.Clamp(c.pose.polar, minPolar, math.Pi-minPolar)
}

// Zoom dollies toward the target for positive steps and away for negative.
func (c *Camera) Zoom(steps float64) {
	c.tween = nil
	c.pose.radius *= math.Pow(0.95, steps*c.ZoomSpeed)
	c.pose.radius = mgl64.Clamp(c.pose.radius, c.MinRadius, c.MaxRadius)
}

// Pan moves the target in the view plane by a pointer delta in pixels.
func (c *Camera) Pan(dx, dy, viewportH float64) {
	if viewportH <= 0 {
		return
	}
	c.tween = nil
	dist := c.pose.radius * math.Tan(c.FovY/2)
	inv := c.View().Inv()
	right := inv.Col(0).Vec3()
	up := inv.Col(1).Vec3()
	scale := 2 * dist / viewportH * c.PanSpeed
	c.pose.target = c.pose.target.
		Sub(right.Mul(dx * scale)).
		Add(up.Mul(dy * scale))
}

// Reset eases the camera back to its home pose over duration seconds.
// A duration of zero snaps immediately.
func (c *Camera) Reset(duration float32) {
	if duration <= 0 {
		c.pose = c.home
		c.tween = nil
		return
	}
	// Take the short way around.
	c.pose.azimuth = c.home.azimuth + math.Remainder(c.pose.azimuth-c.home.azimuth, 2*math.Pi)

	from, to := &c.pose, c.home
	fields := []*float64{&from.radius, &from.azimuth, &from.polar, &from.target[0], &from.target[1], &from.target[2]}
	ends := []float64{to.radius, to.azimuth, to.polar, to.target[0], to.target[1], to.target[2]}
	t := &poseTween{fields: fields}
	for i, f := range fields {
		t.tweens = append(t.tweens, gween.New(float32(*f), float32(ends[i]), duration, ease.OutCubic))
	}
	c.tween = t
}

// Resetting reports whether a Reset animation is in progress.
func (c *Camera) Resetting() bool {
	return c.tween != nil
}

// update advances the reset animation. Called from Scene.Update.
func (c *Camera) update(dt float32) {
	if c.tween == nil {
		return
	}
	if c.tween.update(dt) {
		c.tween = nil
		c.pose = c.home
	}
}
