package cron

import (
	"time"

	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
)

// RegisterPayrollJobs wires the payroll automation sweep into the
// scheduler. The sweep itself decides per company whether today is a
// calculation, approval or payment day.
func RegisterPayrollJobs(s *Scheduler, automationService automation.AutomationService, interval time.Duration) {
	s.AddJob("payroll-automation-sweep", interval, automationService.RunSweep)
}
