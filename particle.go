package marquee

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// EmitterConfig describes the floating notes behind the hero. Emitters are
// decoration only: they loop until stopped, can be restarted at any time and
// nothing else on the page reads their state.
type EmitterConfig struct {
	// MaxParticles caps the pool; spawns beyond it are dropped. Defaults to 128.
	MaxParticles int
	// EmitRate is particles per second.
	EmitRate float64
	// Lifetime, Speed and Size are sampled per particle, in seconds, pixels
	// per second and pixels.
	Lifetime Range
	Speed    Range
	Size     Range
	// Angle is the heading in radians; -Pi/2 drifts straight up.
	Angle Range
	// SpawnArea is the local rectangle particles are born in.
	SpawnArea Rect
	// Sway is the horizontal wobble amplitude in pixels.
	Sway float64
	// StartAlpha fades linearly to EndAlpha over each particle's life.
	StartAlpha Range
	EndAlpha   Range
	Color      Color
	// Seed, when non-zero, makes the particle stream repeatable so tour
	// screenshots match run to run.
	Seed uint64
}

type particle struct {
	x, y, vx, vy float64
	age, ttl     float64
	size         float64
	fadeFrom     float64
	fadeTo       float64
	alpha        float64
	// wobble offsets the sway so neighbours do not move in lockstep.
	wobble float64
}

// ParticleEmitter simulates a fixed pool of particles on the CPU. Live
// particles occupy particles[:alive].
type ParticleEmitter struct {
	config    EmitterConfig
	rng       *rand.Rand
	particles []particle
	alive     int
	owed      float64
	active    bool
	clock     float64
}

const defaultMaxParticles = 128

func newParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	size := cfg.MaxParticles
	if size <= 0 {
		size = defaultMaxParticles
	}
	e := &ParticleEmitter{config: cfg, particles: make([]particle, size)}
	if cfg.Seed != 0 {
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:], cfg.Seed)
		e.rng = rand.New(rand.NewChaCha8(key))
	}
	return e
}

// Start begins spawning.
func (e *ParticleEmitter) Start() { e.active = true }

// Stop halts spawning; live particles finish their lives.
func (e *ParticleEmitter) Stop() { e.active = false }

// Reset stops spawning and clears every live particle.
func (e *ParticleEmitter) Reset() {
	e.active = false
	e.alive = 0
	e.owed = 0
}

// IsActive reports whether the emitter is spawning.
func (e *ParticleEmitter) IsActive() bool { return e.active }

// AliveCount returns the number of live particles.
func (e *ParticleEmitter) AliveCount() int { return e.alive }

// Config returns the live config. Changes apply to the next spawn.
func (e *ParticleEmitter) Config() *EmitterConfig { return &e.config }

func (e *ParticleEmitter) unit() float64 {
	if e.rng != nil {
		return e.rng.Float64()
	}
	return rand.Float64()
}

func (e *ParticleEmitter) sample(r Range) float64 {
	return r.Min + e.unit()*(r.Max-r.Min)
}

// update ages and moves live particles, then spawns the whole particles owed
// for dt at EmitRate.
func (e *ParticleEmitter) update(dt float64) {
	e.clock += dt
	for i := 0; i < e.alive; {
		p := &e.particles[i]
		p.age += dt
		if p.age >= p.ttl {
			// Swap the last live particle into the freed slot.
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}
		p.x += p.vx * dt
		p.y += p.vy * dt
		p.alpha = p.fadeFrom + (p.fadeTo-p.fadeFrom)*(p.age/p.ttl)
		i++
	}

	if !e.active || e.config.EmitRate <= 0 {
		return
	}
	e.owed += e.config.EmitRate * dt
	n := math.Floor(e.owed)
	e.owed -= n
	for ; n > 0 && e.alive < len(e.particles); n-- {
		e.spawnParticle()
	}
}

// spawnParticle fills particles[alive] and makes it live.
func (e *ParticleEmitter) spawnParticle() {
	cfg := &e.config
	heading, speed := e.sample(cfg.Angle), e.sample(cfg.Speed)
	ttl := e.sample(cfg.Lifetime)
	if ttl <= 0 {
		ttl = 1
	}
	sin, cos := math.Sincos(heading)
	fade := e.sample(cfg.StartAlpha)
	e.particles[e.alive] = particle{
		x:        cfg.SpawnArea.X + e.unit()*cfg.SpawnArea.Width,
		y:        cfg.SpawnArea.Y + e.unit()*cfg.SpawnArea.Height,
		vx:       cos * speed,
		vy:       sin * speed,
		ttl:      ttl,
		size:     math.Max(1, e.sample(cfg.Size)),
		fadeFrom: fade,
		fadeTo:   e.sample(cfg.EndAlpha),
		alpha:    fade,
		wobble:   e.unit() * 2 * math.Pi,
	}
	e.alive++
}

// position returns where a particle is drawn, sway included.
func (e *ParticleEmitter) position(p *particle) (x, y float64) {
	return p.x + Sway(e.clock+p.wobble, 3, e.config.Sway), p.y
}

// updateParticles advances every emitter in n's subtree.
func updateParticles(n *Node, dt float64) {
	if n.Emitter != nil {
		n.Emitter.update(dt)
	}
	for _, child := range n.children {
		updateParticles(child, dt)
	}
}

// Random returns a uniformly distributed value in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
