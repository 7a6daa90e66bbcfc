package models

import "time"

// DashboardContent is the editorial snapshot for one calendar day.
type DashboardContent struct {
	Date                string         `json:"date"`
	IPOSchedules        []ScheduleItem `json:"ipoSchedules"`
	RealEstateSchedules []ScheduleItem `json:"realEstateSchedules"`
	NewsPicks           []NewsPick     `json:"newsPicks"`
	Todos               []TodoItem     `json:"todos"`
	Thoughts            string         `json:"thoughts"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

type ScheduleItem struct {
	Name   string `json:"name" yaml:"name"`
	Date   string `json:"date" yaml:"date"`
	Status string `json:"status,omitempty" yaml:"status"`
	Note   string `json:"note,omitempty" yaml:"note"`
}

type NewsPick struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Source  string `json:"source,omitempty" yaml:"source"`
	Comment string `json:"comment,omitempty" yaml:"comment"`
}

type TodoItem struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

// Clone deep-copies the slices so callers can't reach stored state.
func (d DashboardContent) Clone() DashboardContent {
	d.IPOSchedules = append([]ScheduleItem(nil), d.IPOSchedules...)
	d.RealEstateSchedules = append([]ScheduleItem(nil), d.RealEstateSchedules...)
	d.NewsPicks = append([]NewsPick(nil), d.NewsPicks...)
	d.Todos = append([]TodoItem(nil), d.Todos...)
	return d
}

type RoutineArticle struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Author      string    `json:"author,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PageArticle struct {
	ID          string    `json:"id"`
	PageType    PageType  `json:"pageType"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Tags        []string  `json:"tags"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	IsPinned    bool      `json:"isPinned"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (a PageArticle) Clone() PageArticle {
	a.Tags = append([]string(nil), a.Tags...)
	return a
}

type Subscriber struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// RoutineArticlePatch carries the fields of a partial update. Nil means unchanged.
type RoutineArticlePatch struct {
	Title    *string
	Summary  *string
	Content  *string
	Category *string
	Date     *string
	Author   *string
}

// Apply merges the patch into a and reports whether anything changed.
func (p RoutineArticlePatch) Apply(a *RoutineArticle) bool {
	changed := false
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
			changed = true
		}
	}
	set(&a.Title, p.Title)
	set(&a.Summary, p.Summary)
	set(&a.Content, p.Content)
	set(&a.Category, p.Category)
	set(&a.Date, p.Date)
	set(&a.Author, p.Author)
	return changed
}

type PageArticlePatch struct {
	PageType  *PageType
	Title     *string
	Summary   *string
	Content   *string
	Category  *string
	Date      *string
	Tags      *[]string
	Thumbnail *string
	IsPinned  *bool
}

func (p PageArticlePatch) Apply(a *PageArticle) bool {
	changed := false
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
			changed = true
		}
	}
	if p.PageType != nil {
		a.PageType = *p.PageType
		changed = true
	}
	set(&a.Title, p.Title)
	set(&a.Summary, p.Summary)
	set(&a.Content, p.Content)
	set(&a.Category, p.Category)
	set(&a.Date, p.Date)
	set(&a.Thumbnail, p.Thumbnail)
	if p.Tags != nil {
		a.Tags = append([]string(nil), (*p.Tags)...)
		changed = true
	}
	if p.IsPinned != nil {
		a.IsPinned = *p.IsPinned
		changed = true
	}
	return changed
}
