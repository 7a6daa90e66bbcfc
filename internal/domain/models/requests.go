package models

// Requests for the content and market HTTP endpoints.

type CreateRoutineArticleRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Summary  string `json:"summary" validate:"max=500"`
	Content  string `json:"content"`
	Category string `json:"category" default:"general" validate:"max=50"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Author   string `json:"author" validate:"max=100"`
}

func (r CreateRoutineArticleRequest) Article() RoutineArticle {
	return RoutineArticle{
		Title:    r.Title,
		Summary:  r.Summary,
		Content:  r.Content,
		Category: r.Category,
		Date:     r.Date,
		Author:   r.Author,
	}
}

type UpdateRoutineArticleRequest struct {
	ID       string  `param:"id" json:"-"`
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	Summary  *string `json:"summary" validate:"omitempty,max=500"`
	Content  *string `json:"content"`
	Category *string `json:"category" validate:"omitempty,min=1,max=50"`
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Author   *string `json:"author" validate:"omitempty,max=100"`
}

func (r UpdateRoutineArticleRequest) Patch() RoutineArticlePatch {
	return RoutineArticlePatch{
		Title:    r.Title,
		Summary:  r.Summary,
		Content:  r.Content,
		Category: r.Category,
		Date:     r.Date,
		Author:   r.Author,
	}
}

type CreatePageArticleRequest struct {
	PageType  string   `json:"pageType" validate:"required,oneof=routine real-estate invest"`
	Title     string   `json:"title" validate:"required,max=200"`
	Summary   string   `json:"summary" validate:"max=500"`
	Content   string   `json:"content"`
	Category  string   `json:"category" default:"general" validate:"max=50"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	Tags      []string `json:"tags" validate:"max=20,dive,max=30"`
	Thumbnail string   `json:"thumbnail" validate:"omitempty,url"`
	IsPinned  bool     `json:"isPinned"`
}

func (r CreatePageArticleRequest) Article() PageArticle {
	return PageArticle{
		PageType:  PageType(r.PageType),
		Title:     r.Title,
		Summary:   r.Summary,
		Content:   r.Content,
		Category:  r.Category,
		Date:      r.Date,
		Tags:      append([]string{}, r.Tags...),
		Thumbnail: r.Thumbnail,
		IsPinned:  r.IsPinned,
	}
}

type UpdatePageArticleRequest struct {
	ID        string    `param:"id" json:"-"`
	PageType  *string   `json:"pageType" validate:"omitempty,oneof=routine real-estate invest"`
	Title     *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Summary   *string   `json:"summary" validate:"omitempty,max=500"`
	Content   *string   `json:"content"`
	Category  *string   `json:"category" validate:"omitempty,min=1,max=50"`
	Date      *string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Tags      *[]string `json:"tags" validate:"omitempty,max=20,dive,max=30"`
	Thumbnail *string   `json:"thumbnail" validate:"omitempty,url"`
	IsPinned  *bool     `json:"isPinned"`
}

func (r UpdatePageArticleRequest) Patch() PageArticlePatch {
	p := PageArticlePatch{
		Title:     r.Title,
		Summary:   r.Summary,
		Content:   r.Content,
		Category:  r.Category,
		Date:      r.Date,
		Tags:      r.Tags,
		Thumbnail: r.Thumbnail,
		IsPinned:  r.IsPinned,
	}
	if r.PageType != nil {
		pt := PageType(*r.PageType)
		p.PageType = &pt
	}
	return p
}

type ListArticlesRequest struct {
	PageType string `param:"pageType" json:"-" validate:"required,oneof=routine real-estate invest"`
	Category string `query:"category" json:"-"`
}

type SubscribeRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"required,email"`
}

type AdminVerifyRequest struct {
	Password string `json:"password"`
}

type HistoryRequest struct {
	Slot  string `query:"slot" json:"-" validate:"required,oneof=usdkrw gold sp500 bitcoin nasdaq kospi fearGreed scfi"`
	Limit int    `query:"limit" json:"-" default:"30" validate:"gte=1,lte=500"`
}
