package typing

// State состояние задания набора.
type State int

const (
	StateIdle State = iota
	StateCountingDown
	StateRunning
	StatePaused
	StateCompleted
	StateStopped
	StateFailed
)

// String возвращает имя состояния для логов и интерфейса.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountingDown:
		return "counting_down"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StopReason причина остановки задания. Остановка по сторожевому
// таймеру не считается ошибкой: задание попадает в Stopped, а не в
// Failed.
type StopReason int

const (
	ReasonNone StopReason = iota
	ReasonUser
	ReasonEmergency
	ReasonWatchdog
)

// String возвращает имя причины остановки.
func (r StopReason) String() string {
	switch r {
	case ReasonUser:
		return "user"
	case ReasonEmergency:
		return "emergency"
	case ReasonWatchdog:
		return "watchdog"
	default:
		return "none"
	}
}
