package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/attendance"
)

type AttendanceProvider struct {
	mu   sync.RWMutex
	days map[string][]attendance.Day
}

func NewAttendanceProvider() *AttendanceProvider {
	return &AttendanceProvider{days: make(map[string][]attendance.Day)}
}

// Seed registers attendance facts for an employee. Test helper.
func (p *AttendanceProvider) Seed(employeeID string, days ...attendance.Day) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.days[employeeID] = append(p.days[employeeID], days...)
}

func (p *AttendanceProvider) GetRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Day, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var matched []attendance.Day
	for _, d := range p.days[employeeID] {
		if d.Date.Before(start) || d.Date.After(end) {
			continue
		}
		matched = append(matched, d)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	return matched, nil
}
