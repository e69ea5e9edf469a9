// Package timecalc turns time entries into per-jobsite billable hour totals.
//
// Drive time is overhead shared by every jobsite visited on a timesheet, so
// each timesheet's drive hours are split equally across the distinct jobsites
// it touches, regardless of how long was spent at each. Work hours are summed
// per jobsite across all timesheets.
package timecalc

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/skilledgarden/lmn2qbo/internal/parser"
)

// JobsiteHours is the billable hours breakdown for a single jobsite.
type JobsiteHours struct {
	JobsiteID          string
	JobsiteName        string
	CustomerName       string
	WorkHours          decimal.Decimal
	AllocatedDriveTime decimal.Decimal
	TotalBillableHours decimal.Decimal
	BillableRate       decimal.Decimal
	Dates              []string
	TimesheetIDs       []string
}

// IsDriveTime reports whether a cost code marks unbillable drive/overhead time.
func IsDriveTime(costCode string) bool {
	return strings.Contains(costCode, "900")
}

// IsBillableWork reports whether a cost code marks billable on-site work.
func IsBillableWork(costCode string) bool {
	return strings.Contains(costCode, "200")
}

// DriveTimeAllocation computes each jobsite's share of drive time per
// timesheet: total drive hours on the timesheet divided by the number of
// distinct jobsites appearing on it.
//
// Returns {timesheetID: {jobsiteID: allocatedHours}}.
func DriveTimeAllocation(entries []parser.TimeEntry) map[string]map[string]decimal.Decimal {
	type group struct {
		driveHours decimal.Decimal
		jobsites   []string
		seen       map[string]bool
	}

	groups := make(map[string]*group)
	for _, e := range entries {
		g := groups[e.TimesheetID]
		if g == nil {
			g = &group{seen: make(map[string]bool)}
			groups[e.TimesheetID] = g
		}
		if IsDriveTime(e.CostCode) {
			g.driveHours = g.driveHours.Add(e.ManHours)
		}
		if !g.seen[e.JobsiteID] {
			g.seen[e.JobsiteID] = true
			g.jobsites = append(g.jobsites, e.JobsiteID)
		}
	}

	allocation := make(map[string]map[string]decimal.Decimal, len(groups))
	for timesheetID, g := range groups {
		if len(g.jobsites) == 0 {
			continue
		}
		perJobsite := g.driveHours.Div(decimal.NewFromInt(int64(len(g.jobsites))))
		shares := make(map[string]decimal.Decimal, len(g.jobsites))
		for _, jobsiteID := range g.jobsites {
			shares[jobsiteID] = perJobsite
		}
		allocation[timesheetID] = shares
	}

	return allocation
}

// WorkHoursByJobsite sums billable work hours per jobsite across all
// timesheets. Drive time rows are excluded by cost code.
func WorkHoursByJobsite(entries []parser.TimeEntry) map[string]decimal.Decimal {
	hours := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if !IsBillableWork(e.CostCode) {
			continue
		}
		hours[e.JobsiteID] = hours[e.JobsiteID].Add(e.ManHours)
	}
	return hours
}

// CalculateBillableHours produces one JobsiteHours per jobsite referenced by
// the time entries, combining work hours with allocated drive time. A jobsite
// with only drive time (or only work) is still included, the missing side
// defaulting to zero. Results are sorted by jobsite ID.
func CalculateBillableHours(entries []parser.TimeEntry) []JobsiteHours {
	allocation := DriveTimeAllocation(entries)
	workHours := WorkHoursByJobsite(entries)

	driveTime := make(map[string]decimal.Decimal)
	for _, shares := range allocation {
		for jobsiteID, hours := range shares {
			driveTime[jobsiteID] = driveTime[jobsiteID].Add(hours)
		}
	}

	meta := jobsiteMetadata(entries)

	jobsiteIDs := make([]string, 0, len(workHours))
	seen := make(map[string]bool, len(workHours))
	for id := range workHours {
		seen[id] = true
		jobsiteIDs = append(jobsiteIDs, id)
	}
	for id := range driveTime {
		if !seen[id] {
			jobsiteIDs = append(jobsiteIDs, id)
		}
	}
	sort.Strings(jobsiteIDs)

	results := make([]JobsiteHours, 0, len(jobsiteIDs))
	for _, jobsiteID := range jobsiteIDs {
		work := workHours[jobsiteID]
		drive := driveTime[jobsiteID]
		m := meta[jobsiteID]

		results = append(results, JobsiteHours{
			JobsiteID:          jobsiteID,
			JobsiteName:        m.jobsiteName,
			CustomerName:       m.customerName,
			WorkHours:          work.Round(2),
			AllocatedDriveTime: drive.Round(2),
			TotalBillableHours: work.Add(drive).Round(2),
			BillableRate:       m.billableRate,
			Dates:              m.dates,
			TimesheetIDs:       m.timesheetIDs,
		})
	}

	return results
}

type jobsiteMeta struct {
	jobsiteName  string
	customerName string
	billableRate decimal.Decimal
	dates        []string
	timesheetIDs []string
}

// jobsiteMetadata extracts per-jobsite display info from the time entries.
// Name and customer come from the first row seen for the jobsite. The rate
// comes from the first billable-work row when one exists; drive time rows may
// carry a different or zero rate and are only a fallback.
func jobsiteMetadata(entries []parser.TimeEntry) map[string]*jobsiteMeta {
	meta := make(map[string]*jobsiteMeta)
	dateSeen := make(map[string]map[string]bool)
	timesheetSeen := make(map[string]map[string]bool)
	rateFromWork := make(map[string]bool)

	for _, e := range entries {
		m := meta[e.JobsiteID]
		if m == nil {
			m = &jobsiteMeta{
				jobsiteName:  e.JobsiteName,
				customerName: e.CustomerName,
				billableRate: e.BillableRate,
			}
			meta[e.JobsiteID] = m
			dateSeen[e.JobsiteID] = make(map[string]bool)
			timesheetSeen[e.JobsiteID] = make(map[string]bool)
		}

		if !rateFromWork[e.JobsiteID] && IsBillableWork(e.CostCode) {
			m.billableRate = e.BillableRate
			rateFromWork[e.JobsiteID] = true
		}

		if e.EndDate != "" && !dateSeen[e.JobsiteID][e.EndDate] {
			dateSeen[e.JobsiteID][e.EndDate] = true
			m.dates = append(m.dates, e.EndDate)
		}
		if e.TimesheetID != "" && !timesheetSeen[e.JobsiteID][e.TimesheetID] {
			timesheetSeen[e.JobsiteID][e.TimesheetID] = true
			m.timesheetIDs = append(m.timesheetIDs, e.TimesheetID)
		}
	}

	for _, m := range meta {
		sort.Strings(m.dates)
	}

	return meta
}
