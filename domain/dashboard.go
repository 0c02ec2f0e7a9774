package domain

import "time"

// DashboardStats holds the headline counters shown on the dashboard.
type DashboardStats struct {
	TotalTasks     int64 `json:"totalTasks"`
	TodoTasks      int64 `json:"todoTasks"`
	CompletedTasks int64 `json:"completedTasks"`
	OverdueTasks   int64 `json:"overdueTasks"`
}

// DashboardCharts carries the distribution maps. Both are zero-filled:
// a status or priority with no tasks still appears with count 0.
type DashboardCharts struct {
	TaskDistribution   map[string]int64 `json:"taskDistribution"`
	TaskPriorityLevels map[string]int64 `json:"taskPriorityLevels"`
}

// RecentTask is the trimmed projection used for the recent-tasks panel.
type RecentTask struct {
	Title     string    `json:"title"`
	Status    Status    `json:"status"`
	Priority  Priority  `json:"priority"`
	DueDate   time.Time `json:"dueDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardData is the full aggregator result for one scope.
type DashboardData struct {
	Statistics  DashboardStats  `json:"statistics"`
	Charts      DashboardCharts `json:"charts"`
	RecentTasks []RecentTask    `json:"recentTasks"`
}

// FillStatusDistribution maps raw per-status counts onto chart keys,
// zero-filling absent statuses and adding the "All" total.
func FillStatusDistribution(raw map[Status]int64, total int64) map[string]int64 {
	dist := make(map[string]int64, len(Statuses)+1)
	for _, status := range Statuses {
		dist[StatusKey(status)] = raw[status]
	}
	dist["All"] = total
	return dist
}

// FillPriorityDistribution zero-fills absent priorities.
func FillPriorityDistribution(raw map[Priority]int64) map[string]int64 {
	dist := make(map[string]int64, len(Priorities))
	for _, priority := range Priorities {
		dist[string(priority)] = raw[priority]
	}
	return dist
}
