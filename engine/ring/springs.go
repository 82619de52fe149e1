package ring

import "github.com/charmbracelet/harmonica"

// scaleSprings smooths each ring's scale channel with a shared damped-spring
// projection, keeping per-ring position/velocity state so the breathing and
// pulsation components settle without popping.
type scaleSprings struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

// newScaleSprings creates spring state for n rings, seeded at the given
// initial value so the first frame does not animate in from zero.
func newScaleSprings(n, fps int, frequency, damping, initial float64) scaleSprings {
	s := scaleSprings{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
	}
	for i := range s.pos {
		s.pos[i] = initial
	}
	return s
}

// step advances ring i's spring toward target and returns the smoothed value.
func (s *scaleSprings) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}
