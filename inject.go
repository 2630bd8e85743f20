package marquee

// syntheticPointerEvent is one injected frame of pointer state. Screen
// coordinates are used, matching what a screenshot shows, and are converted
// to a world scroll through the primary camera exactly like real input.
type syntheticPointerEvent struct {
	screenY float64
	pressed bool
	wheel   float64
}

// InjectPress queues a primary-button press at screen y. Events are consumed
// one per frame at the start of UpdateDelta.
func (s *Scene) InjectPress(y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenY: y, pressed: true})
}

// InjectMove queues a pointer move at screen y with the button held down. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenY: y, pressed: true})
}

// InjectRelease queues a button release at screen y.
func (s *Scene) InjectRelease(y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenY: y})
}

// InjectWheel queues one frame of wheel movement. Positive notches scroll
// toward the top of the page.
func (s *Scene) InjectWheel(notches float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{wheel: notches})
}

// InjectDrag queues a full drag: press at fromY, linearly interpolated moves
// over frames-2 intermediate frames, and release at toY. The sequence
// consumes frames frames; the minimum is 2 (press + release).
func (s *Scene) InjectDrag(fromY, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromY + (toY-fromY)*t)
	}
	s.InjectRelease(toY)
}

// processInjectedInput pops one event and scrolls the primary camera by it.
// Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	cam := s.Camera()
	if cam == nil {
		return true
	}
	dy := wheelScroll(evt.wheel, s.ScrollSpeed)
	dy += s.drag.update(evt.screenY, evt.pressed) / cam.Zoom
	if dy != 0 {
		cam.ScrollBy(dy)
	}
	return true
}
