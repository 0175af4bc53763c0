package debounce

import (
	"sync"
	"time"
)

// Debouncer atrasa a propagação de um valor que muda rapidamente (o termo
// de busca do painel) até que ele fique quieto pelo intervalo configurado.
// Cada novo Input cancela e reinicia o timer; o callback dispara exatamente
// uma vez por período de quiescência, com o último valor recebido.
type Debouncer struct {
	interval time.Duration
	fn       func(string)

	mu    sync.Mutex
	timer *time.Timer
}

// New cria um Debouncer que, após interval sem novas entradas, invoca fn
// com o último valor. fn é executado na goroutine do timer.
func New(interval time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{interval: interval, fn: fn}
}

// Input registra um novo valor, reiniciando o período de quiescência.
func (d *Debouncer) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.fn(value)
	})
}

// Cancel descarta qualquer disparo pendente sem executá-lo.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush dispara imediatamente o valor pendente, se houver timer armado.
// Útil ao encerrar o painel para não perder a última busca digitada.
func (d *Debouncer) Flush(value string) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.fn(value)
}
