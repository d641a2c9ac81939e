package partition

import "log"

// Observer получает уведомления о ходе нарезки.
// При RunParallel методы вызываются из нескольких горутин.
type Observer interface {
	SourceOpened(path string, totalPages, effectivePages int)
	PartWritten(p Part)
}

type NopObserver struct{}

func (NopObserver) SourceOpened(string, int, int) {}
func (NopObserver) PartWritten(Part)              {}

// LogObserver пишет ход нарезки в лог. Logger == nil: стандартный логгер.
type LogObserver struct {
	Logger *log.Logger
}

func (o LogObserver) SourceOpened(path string, totalPages, effectivePages int) {
	if effectivePages < totalPages {
		o.logger().Printf("[INFO] %s: %d pages, limited to %d", path, totalPages, effectivePages)
		return
	}
	o.logger().Printf("[INFO] %s: %d pages", path, totalPages)
}

func (o LogObserver) PartWritten(p Part) {
	o.logger().Printf("[INFO] part %v written: %s", p.Range, p.Path)
}

func (o LogObserver) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// MultiObserver рассылает уведомления всем наблюдателям по порядку.
type MultiObserver []Observer

func (m MultiObserver) SourceOpened(path string, totalPages, effectivePages int) {
	for _, o := range m {
		o.SourceOpened(path, totalPages, effectivePages)
	}
}

func (m MultiObserver) PartWritten(p Part) {
	for _, o := range m {
		o.PartWritten(p)
	}
}
