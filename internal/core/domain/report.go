package domain

import "time"

// UserStatistics is the per-user entry of a UserReport.
type UserStatistics struct {
	TotalTasks      int    `json:"total_tasks"`
	PendingTasks    int    `json:"pending_tasks"`
	InProgressTasks int    `json:"in_progress_tasks"`
	CompletedTasks  int    `json:"completed_tasks"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
}

// UserReport aggregates user and task counts across the whole store.
type UserReport struct {
	TotalUsers             int64                     `json:"total_users"`
	TotalTasks             int64                     `json:"total_tasks"`
	UserStatistics         map[string]UserStatistics `json:"user_statistics"`
	TaskStatusDistribution map[TaskStatus]int64      `json:"task_status_distribution"`
}

// UserInfo is the user summary shown in the detailed report.
type UserInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Info summarises u for reports.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		CreatedAt: u.CreatedAt,
	}
}

// UserTaskEntry lists one user together with their tasks.
type UserTaskEntry struct {
	UserInfo        UserInfo `json:"user_info"`
	Tasks           []Task   `json:"tasks"`
	TaskCount       int      `json:"task_count"`
	PendingTasks    int      `json:"pending_tasks"`
	InProgressTasks int      `json:"in_progress_tasks"`
	CompletedTasks  int      `json:"completed_tasks"`
}

// UserTaskReport is the detailed per-user task listing.
type UserTaskReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Users       []UserTaskEntry `json:"users"`
}
