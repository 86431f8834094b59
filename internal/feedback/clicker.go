// Package feedback воспроизводит звуковое сопровождение набора.
package feedback

import (
	"math"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate - частота дискретизации выходного потока.
	SampleRate = 16000
	// Channels - количество каналов (mono).
	Channels = 1
	// FramesPerBuffer - размер буфера. Маленький буфер держит задержку
	// клика ниже порога восприятия.
	FramesPerBuffer = 256

	// clickFreq - основная частота щелчка.
	clickFreq = 2000.0
	// clickDuration - длительность щелчка.
	clickDuration = 30 * time.Millisecond
	// clickAmplitude - пиковая громкость щелчка.
	clickAmplitude = 0.25
)

// Clicker проигрывает короткий щелчок на каждый набранный символ.
type Clicker struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	buffer  []float32
	wave    []float32
	pos     int
	clicks  chan struct{}
	running bool
	enabled bool
	done    chan struct{}
}

// New создаёт новый Clicker.
func New(enabled bool) (*Clicker, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	c := &Clicker{
		buffer:  make([]float32, FramesPerBuffer),
		wave:    clickWave(),
		pos:     math.MaxInt32, // Волна не играет до первого клика
		clicks:  make(chan struct{}, 8),
		enabled: enabled,
	}

	return c, nil
}

// clickWave строит затухающую синусоиду щелчка.
func clickWave() []float32 {
	n := int(SampleRate * clickDuration / time.Second)
	wave := make([]float32, n)
	for i := range wave {
		t := float64(i) / SampleRate
		decay := math.Exp(-3.0 * float64(i) / float64(n))
		wave[i] = float32(clickAmplitude * decay * math.Sin(2*math.Pi*clickFreq*t))
	}
	return wave
}

// Start открывает выходной поток и запускает проигрывание.
func (c *Clicker) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	c.done = make(chan struct{})

	stream, err := portaudio.OpenDefaultStream(
		0,               // input channels
		Channels,        // output channels
		SampleRate,      // sample rate
		FramesPerBuffer, // frames per buffer
		c.buffer,        // buffer
	)
	if err != nil {
		return err
	}

	c.stream = stream
	c.running = true

	if err := stream.Start(); err != nil {
		c.stream.Close()
		c.stream = nil
		c.running = false
		return err
	}

	go c.playLoop()

	return nil
}

// Click ставит щелчок в очередь. Не блокирует: если очередь полна,
// лишние щелчки отбрасываются.
func (c *Clicker) Click() {
	c.mu.Lock()
	enabled := c.enabled && c.running
	c.mu.Unlock()
	if !enabled {
		return
	}

	select {
	case c.clicks <- struct{}{}:
	default:
	}
}

// SetEnabled включает/выключает звук нажатий.
func (c *Clicker) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

func (c *Clicker) playLoop() {
	defer func() {
		close(c.done)
	}()

	for {
		c.mu.Lock()
		if !c.running {
			c.mu.Unlock()
			return
		}
		stream := c.stream
		c.mu.Unlock()

		if stream == nil {
			return
		}

		// Свежий клик перезапускает волну с начала
		select {
		case <-c.clicks:
			c.pos = 0
		default:
		}

		// Заполняем буфер волной или тишиной. Поток пишется непрерывно,
		// чтобы устройство оставалось открытым и клик звучал сразу.
		for i := range c.buffer {
			if c.pos < len(c.wave) {
				c.buffer[i] = c.wave[c.pos]
				c.pos++
			} else {
				c.buffer[i] = 0
			}
		}

		if err := stream.Write(); err != nil {
			c.mu.Lock()
			running := c.running
			c.mu.Unlock()
			if !running {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// Stop останавливает проигрывание и закрывает поток.
func (c *Clicker) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}

	c.running = false
	stream := c.stream
	c.stream = nil
	done := c.done
	c.mu.Unlock()

	// Ждём завершения playLoop (максимум 100ms - каждая итерация
	// занимает около 16ms на запись буфера)
	if done != nil {
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	// Закрываем stream после завершения playLoop
	if stream != nil {
		stream.Stop()
		stream.Close()
	}
}

// Close освобождает ресурсы.
func (c *Clicker) Close() {
	c.Stop()
	portaudio.Terminate()
}

// IsRunning возвращает true если поток открыт.
func (c *Clicker) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
