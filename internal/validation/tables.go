package validation

import "github.com/UkralStul/task-notes-service/internal/domain"

// Id пользователей и групп положительные: такие же принимают маршруты выборок.
var recordTable = Table{
	"title":       {Tag: "min=1,max=200", Required: true},
	"description": {Tag: "min=1,max=1000", Required: true},
	"authorId":    {Tag: "gt=0", Required: true},
	"groupId":     {Tag: "gt=0", Nullable: true},
	"location":    {Nullable: true},
}

var (
	TaskTable = recordTable.With(Table{
		"doerId":   {Tag: "gt=0", Nullable: true},
		"status":   {Tag: "oneof=UNDONE DONE"},
		"priority": {Tag: "oneof=LOW MIDDLE HIGH"},
		"deadline": {Nullable: true},
	})
	NoteTable = recordTable.With(nil)

	// Пустой текст комментария допустим, отсутствующий - нет.
	CommentTable = Table{
		"authorId": {Tag: "gt=0", Required: true},
		"text":     {Tag: "max=255", Required: true},
	}
	SubtaskTable = Table{
		"text": {Tag: "min=1,max=255", Required: true},
	}
	SubtaskStatusTable = Table{
		"status": {Tag: "oneof=UNDONE DONE", Required: true},
	}
)

func ValidateTaskCreate(in domain.TaskInput) error {
	return TaskTable.Check(in.Fields(), Full)
}

func ValidateTaskPatch(p domain.TaskPatch) error {
	return TaskTable.Check(p.Fields(), Partial)
}

func ValidateNoteCreate(in domain.NoteInput) error {
	return NoteTable.Check(in.Fields(), Full)
}

func ValidateNotePatch(p domain.NotePatch) error {
	return NoteTable.Check(p.Fields(), Partial)
}

func ValidateComment(in domain.CommentInput) error {
	return CommentTable.Check(in.Fields(), Full)
}

func ValidateSubtask(in domain.SubtaskInput) error {
	return SubtaskTable.Check(in.Fields(), Full)
}

func ValidateSubtaskStatus(in domain.SubtaskStatusInput) error {
	return SubtaskStatusTable.Check(in.Fields(), Full)
}
