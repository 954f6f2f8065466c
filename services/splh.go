package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/events"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// SPLHSnapshot is one computed sales-per-labor-hour figure.
type SPLHSnapshot struct {
	SPLH        float64   `json:"splh"`
	SalesTotal  float64   `json:"sales_total"`
	HoursWorked float64   `json:"hours_worked"`
	ComputedAt  time.Time `json:"computed_at"`
}

// SPLHMonitor recomputes the live SPLH figure on a fixed interval and
// broadcasts it to connected terminals. It only ever reads shift and
// order data.
type SPLHMonitor struct {
	DB            *gorm.DB
	Interval      time.Duration
	EligibleRoles []models.Role
	StopChan      chan struct{}
}

func NewSPLHMonitor(db *gorm.DB, interval time.Duration, roles []models.Role) *SPLHMonitor {
	return &SPLHMonitor{
		DB:            db,
		Interval:      interval,
		EligibleRoles: roles,
		StopChan:      make(chan struct{}),
	}
}

func (m *SPLHMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.tick()
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *SPLHMonitor) Stop() {
	close(m.StopChan)
}

func (m *SPLHMonitor) tick() {
	snapshot, err := m.Compute(time.Now())
	if err != nil {
		utils.ErrorLogger.Printf("SPLH compute failed: %v", err)
		return
	}
	events.BroadcastSPLHUpdate(snapshot)
}

// Compute derives today's SPLH: eligible-role labor hours against
// today's sales. Open shifts count up to now. With zero hours the
// figure is exactly zero, never a division by zero.
func (m *SPLHMonitor) Compute(now time.Time) (SPLHSnapshot, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var shifts []models.Shift
	if err := m.DB.
		Joins("JOIN employees ON employees.id = shifts.employee_id").
		Where("employees.role IN ?", m.roleStrings()).
		Where("shifts.clock_in >= ?", startOfDay).
		Find(&shifts).Error; err != nil {
		return SPLHSnapshot{}, err
	}

	var hoursWorked float64
	for _, shift := range shifts {
		end := now
		if shift.ClockOut != nil {
			end = *shift.ClockOut
		}
		if hours := end.Sub(shift.ClockIn).Hours(); hours > 0 {
			hoursWorked += hours
		}
	}

	var salesTotal float64
	if err := m.DB.Model(&models.Order{}).
		Where("timestamp >= ?", startOfDay).
		Select("COALESCE(SUM(total), 0)").
		Row().Scan(&salesTotal); err != nil {
		return SPLHSnapshot{}, err
	}

	splh := 0.0
	if hoursWorked > 0 {
		splh = salesTotal / hoursWorked
	}

	return SPLHSnapshot{
		SPLH:        splh,
		SalesTotal:  salesTotal,
		HoursWorked: hoursWorked,
		ComputedAt:  now,
	}, nil
}

func (m *SPLHMonitor) roleStrings() []string {
	out := make([]string, len(m.EligibleRoles))
	for i, r := range m.EligibleRoles {
		out[i] = r.String()
	}
	return out
}
