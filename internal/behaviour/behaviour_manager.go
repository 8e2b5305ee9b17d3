package behaviour

type PlayerBehaviour interface {
	Start()
	Update()
	UpdateFixed()
}

// Stopper is implemented by behaviours that own resources to release when the engine
// shuts down.
type Stopper interface {
	Stop()
}

type BehaviourWrapper struct {
	Behaviour PlayerBehaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []BehaviourWrapper
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
			// Remove by swapping with last element and truncating
			m.behaviours[i] = m.behaviours[len(m.behaviours)-1]
			m.behaviours = m.behaviours[:len(m.behaviours)-1]
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

func (m *BehaviourManager) start(i int) {
	if !m.behaviours[i].started {
		m.behaviours[i].Behaviour.Start()
		m.behaviours[i].started = true
	}
}

func (m *BehaviourManager) UpdateAll() {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.Update()
	}
}

func (m *BehaviourManager) UpdateAllFixed() {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.UpdateFixed()
	}
}

// StopAll stops started behaviours in reverse order of registration.
func (m *BehaviourManager) StopAll() {
	for i := len(m.behaviours) - 1; i >= 0; i-- {
		if !m.behaviours[i].started {
			continue
		}
		if s, ok := m.behaviours[i].Behaviour.(Stopper); ok {
			s.Stop()
		}
		m.behaviours[i].started = false
	}
}
