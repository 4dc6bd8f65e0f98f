// internal/models/plan.go
package models

// LinkType values follow the dhtmlx gantt convention used by the dashboard
// widget: "0" is finish-to-start, "1" start-to-start, "2" finish-to-finish,
// "3" start-to-finish.
const (
	LinkFinishToStart  = "0"
	LinkStartToStart   = "1"
	LinkFinishToFinish = "2"
	LinkStartToFinish  = "3"
)

// DateLayout is the wire format for Gantt task start dates.
const DateLayout = "2006-01-02"

// TechnologyStackItem is one recommended technology choice.
type TechnologyStackItem struct {
	Component  string `json:"component"`
	Technology string `json:"technology"`
	Rationale  string `json:"rationale"`
}

// GanttTask is a single schedulable unit of work.
type GanttTask struct {
	ID        int     `json:"id"`
	Text      string  `json:"text"`
	StartDate string  `json:"start_date"` // DateLayout
	Duration  int     `json:"duration"`   // days, >= 1
	Progress  float64 `json:"progress"`   // 0..1
	Owner     string  `json:"owner"`
}

// GanttLink is a directed dependency between two tasks.
type GanttLink struct {
	ID     int    `json:"id"`
	Source int    `json:"source"`
	Target int    `json:"target"`
	Type   string `json:"type"`
}

// GanttData is the task/link graph rendered by the Gantt widget.
type GanttData struct {
	Data  []GanttTask `json:"data"`
	Links []GanttLink `json:"links"`
}

// ProjectPlan is the full structured plan returned to the caller.
type ProjectPlan struct {
	ProjectName         string                `json:"projectName"`
	ExecutiveSummary    string                `json:"executiveSummary"`
	KeyMilestones       []string              `json:"keyMilestones"`
	TechnologyStack     []TechnologyStackItem `json:"technologyStack"`
	ResourceSuggestions []string              `json:"resourceSuggestions"`
	GanttData           GanttData             `json:"ganttData"`
}
