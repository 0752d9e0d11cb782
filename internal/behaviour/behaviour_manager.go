package behaviour

// PlayerBehaviour is updated once per frame while it is registered.
type PlayerBehaviour interface {
	Start()
	Update()
}

type BehaviourWrapper struct {
	Behaviour PlayerBehaviour
	started   bool
}

type endFrameSubscription struct {
	owner   any
	handler func()
}

// BehaviourManager drives one frame: Update on every behaviour, the frame's rendering,
// then the end-of-frame handlers.
type BehaviourManager struct {
	behaviours []BehaviourWrapper
	endFrame   []endFrameSubscription
	frame      uint64
}

var GlobalBehaviourManager = NewBehaviourManager()

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour PlayerBehaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

func (m *BehaviourManager) Remove(behaviour PlayerBehaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

// Clear removes all behaviours and end-of-frame handlers
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
	m.endFrame = m.endFrame[:0]
}

// SubscribeEndFrame registers handler to run after all of the current frame's work.
// An owner has at most one handler; subscribing again replaces it. The handler keeps
// firing every frame until UnsubscribeEndFrame is called for its owner.
func (m *BehaviourManager) SubscribeEndFrame(owner any, handler func()) {
	for i := range m.endFrame {
		if m.endFrame[i].owner == owner {
			m.endFrame[i].handler = handler
			return
		}
	}
	m.endFrame = append(m.endFrame, endFrameSubscription{owner: owner, handler: handler})
}

func (m *BehaviourManager) UnsubscribeEndFrame(owner any) {
	for i := range m.endFrame {
		if m.endFrame[i].owner == owner {
			m.endFrame = append(m.endFrame[:i], m.endFrame[i+1:]...)
			return
		}
	}
}

func (m *BehaviourManager) HasEndFrameSubscription(owner any) bool {
	return m.currentHandler(owner) != nil
}

func (m *BehaviourManager) UpdateAll() {
	for i := 0; i < len(m.behaviours); i++ {
		if !m.behaviours[i].started {
			m.behaviours[i].Behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].Behaviour.Update()
	}
}

// EndFrame fires the end-of-frame handlers registered before the call. Handlers may
// unsubscribe themselves or subscribe new owners; new subscriptions fire next frame.
func (m *BehaviourManager) EndFrame() {
	pending := make([]endFrameSubscription, len(m.endFrame))
	copy(pending, m.endFrame)
	for _, sub := range pending {
		if handler := m.currentHandler(sub.owner); handler != nil {
			handler()
		}
	}
	m.frame++
}

// currentHandler returns owner's handler, or nil once it has been unsubscribed, so a
// handler removed earlier in the same frame does not run.
func (m *BehaviourManager) currentHandler(owner any) func() {
	for i := range m.endFrame {
		if m.endFrame[i].owner == owner {
			return m.endFrame[i].handler
		}
	}
	return nil
}

// RunFrame runs one full frame around render.
func (m *BehaviourManager) RunFrame(render func()) {
	m.UpdateAll()
	if render != nil {
		render()
	}
	m.EndFrame()
}

// Frame returns the number of completed frames.
func (m *BehaviourManager) Frame() uint64 {
	return m.frame
}
