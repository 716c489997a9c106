package domain

import "time"

// LocationInput - локация из запроса. Все четыре поля обязательны.
type LocationInput struct {
	Latitude         *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude        *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Name             *string  `json:"name" validate:"required,min=1,max=200"`
	RemindByLocation *bool    `json:"remindByLocation" validate:"required"`
}

// ToLocation вызывается только после валидации.
func (in LocationInput) ToLocation() Location {
	var loc Location
	if in.Latitude != nil {
		loc.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		loc.Longitude = *in.Longitude
	}
	if in.Name != nil {
		loc.Name = *in.Name
	}
	if in.RemindByLocation != nil {
		loc.RemindByLocation = *in.RemindByLocation
	}
	return loc
}

// DeadlineInput - срок из запроса. remindByTime по умолчанию false.
type DeadlineInput struct {
	Time         *time.Time `json:"time" validate:"required"`
	RemindByTime *bool      `json:"remindByTime"`
}

func (in DeadlineInput) ToDeadline() Deadline {
	var d Deadline
	if in.Time != nil {
		d.Time = in.Time.UTC()
	}
	if in.RemindByTime != nil {
		d.RemindByTime = *in.RemindByTime
	}
	return d
}

// RecordPatch - изменяемые поля, общие для задачи и заметки.
type RecordPatch struct {
	Title       Optional[string]        `json:"title"`
	Description Optional[string]        `json:"description"`
	GroupID     Optional[int64]         `json:"groupId"`
	Location    Optional[LocationInput] `json:"location"`
}

func (p RecordPatch) collect(set map[string]any) {
	putField(set, "title", p.Title)
	putField(set, "description", p.Description)
	putField(set, "groupId", p.GroupID)
	putField(set, "location", p.Location)
}

// TaskPatch - частичное обновление задачи. Отсутствующие поля не меняются.
type TaskPatch struct {
	RecordPatch
	DoerID   Optional[int64]         `json:"doerId"`
	Status   Optional[Status]        `json:"status"`
	Priority Optional[Priority]      `json:"priority"`
	Deadline Optional[DeadlineInput] `json:"deadline"`
}

// Fields возвращает набор переданных полей по их JSON-именам.
func (p TaskPatch) Fields() map[string]any {
	set := make(map[string]any)
	p.collect(set)
	putField(set, "doerId", p.DoerID)
	putField(set, "status", p.Status)
	putField(set, "priority", p.Priority)
	putField(set, "deadline", p.Deadline)
	return set
}

// TaskInput - тело запроса на создание задачи.
type TaskInput struct {
	TaskPatch
	AuthorID Optional[int64] `json:"authorId"`
}

func (in TaskInput) Fields() map[string]any {
	set := in.TaskPatch.Fields()
	putField(set, "authorId", in.AuthorID)
	return set
}

// NotePatch - частичное обновление заметки.
type NotePatch struct {
	RecordPatch
}

func (p NotePatch) Fields() map[string]any {
	set := make(map[string]any)
	p.collect(set)
	return set
}

// NoteInput - тело запроса на создание заметки.
type NoteInput struct {
	NotePatch
	AuthorID Optional[int64] `json:"authorId"`
}

func (in NoteInput) Fields() map[string]any {
	set := in.NotePatch.Fields()
	putField(set, "authorId", in.AuthorID)
	return set
}

// CommentInput - тело запроса на добавление комментария.
type CommentInput struct {
	AuthorID Optional[int64]  `json:"authorId"`
	Text     Optional[string] `json:"text"`
}

func (in CommentInput) Fields() map[string]any {
	set := make(map[string]any)
	putField(set, "authorId", in.AuthorID)
	putField(set, "text", in.Text)
	return set
}

// SubtaskInput - тело запроса на добавление подзадачи.
type SubtaskInput struct {
	Text Optional[string] `json:"text"`
}

func (in SubtaskInput) Fields() map[string]any {
	set := make(map[string]any)
	putField(set, "text", in.Text)
	return set
}

// SubtaskStatusInput - тело запроса на смену статуса подзадачи.
type SubtaskStatusInput struct {
	Status Optional[Status] `json:"status"`
}

func (in SubtaskStatusInput) Fields() map[string]any {
	set := make(map[string]any)
	putField(set, "status", in.Status)
	return set
}
