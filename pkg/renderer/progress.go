package renderer

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// progressStep is the percentage between progress log lines
const progressStep = 5

// progressReporter logs each time another progressStep percent of rows is done
type progressReporter struct {
	mu           sync.Mutex
	total        int
	done         int
	lastReported int
	start        time.Time
	logger       zerolog.Logger
}

func newProgressReporter(total int, logger zerolog.Logger) *progressReporter {
	return &progressReporter{
		total:  total,
		start:  time.Now(),
		logger: logger,
	}
}

// rowDone records a finished row
func (p *progressReporter) rowDone() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	percent := p.done * 100 / p.total / progressStep * progressStep
	if percent <= p.lastReported {
		return
	}
	p.lastReported = percent

	p.logger.Info().
		Int("percent", percent).
		Int64("elapsed_seconds", int64(time.Since(p.start).Seconds())).
		Msg("Progress")
}
