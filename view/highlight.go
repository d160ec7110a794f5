package view

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pulse is a brightness factor that eases back and forth between lo and hi,
// taking period seconds for each leg. Used to mark the selected render item.
type pulse struct {
	tween  *gween.Tween
	lo, hi float32
	period float32
	rising bool
	value  float32
}

func newPulse(lo, hi, period float32) *pulse {
	return &pulse{
		tween:  gween.New(hi, lo, period, ease.InOutSine),
		lo:     lo,
		hi:     hi,
		period: period,
		value:  hi,
	}
}

// Update advances the pulse by dt seconds and returns the new value.
func (p *pulse) Update(dt float32) float32 {
	val, finished := p.tween.Update(dt)
	p.value = val
	if finished {
		p.rising = !p.rising
		from, to := p.hi, p.lo
		if p.rising {
			from, to = p.lo, p.hi
		}
		p.tween = gween.New(from, to, p.period, ease.InOutSine)
	}
	return p.value
}

// Value returns the current factor.
func (p *pulse) Value() float32 { return p.value }
