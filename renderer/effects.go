package renderer

// EffectSink turns simulation notifications into short-lived visual
// pulses. It implements the simulation's presentation sink, so the core
// stays free of rendering concerns.
type EffectSink struct {
	slotPulses map[[2]int]float32
	beePulses  map[uint32]float32
}

// NewEffectSink creates an empty effect sink.
func NewEffectSink() *EffectSink {
	return &EffectSink{
		slotPulses: make(map[[2]int]float32),
		beePulses:  make(map[uint32]float32),
	}
}

// Update decays all pulses by dt seconds and drops expired ones.
func (s *EffectSink) Update(dt float32) {
	for k, v := range s.slotPulses {
		v -= dt * 2
		if v <= 0 {
			delete(s.slotPulses, k)
		} else {
			s.slotPulses[k] = v
		}
	}
	for k, v := range s.beePulses {
		v -= dt * 2
		if v <= 0 {
			delete(s.beePulses, k)
		} else {
			s.beePulses[k] = v
		}
	}
}

// SlotPulse returns the pulse intensity in [0,1] for a slot.
func (s *EffectSink) SlotPulse(row, col int) float32 {
	return s.slotPulses[[2]int{row, col}]
}

// BeePulse returns the pulse intensity in [0,1] for a bee.
func (s *EffectSink) BeePulse(id uint32) float32 {
	return s.beePulses[id]
}

func (s *EffectSink) SlotRevealed(row, col int) {
	s.slotPulses[[2]int{row, col}] = 1
}

func (s *EffectSink) SlotOpened(row, col, capacity int) {
	s.slotPulses[[2]int{row, col}] = 1
}

func (s *EffectSink) SlotClosing(row, col int) {
	s.slotPulses[[2]int{row, col}] = 1
}

func (s *EffectSink) SlotClosed(row, col int) {
	s.slotPulses[[2]int{row, col}] = 1
}

func (s *EffectSink) BeeSpawned(id uint32, kind uint8) {
	s.beePulses[id] = 1
}

func (s *EffectSink) BeeStunned(id uint32) {
	s.beePulses[id] = 1
}

func (s *EffectSink) BeeTerminated(id uint32) {
	delete(s.beePulses, id)
}

func (s *EffectSink) PathConnected(beeID uint32, row, col int) {
	s.slotPulses[[2]int{row, col}] = 1
}

func (s *EffectSink) PathDisconnected(beeID uint32) {
	delete(s.beePulses, beeID)
}
