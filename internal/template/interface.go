package template

import "github.com/mauv0809/scrimsync/internal/weekclock"

// TemplateStore defines the interface for persisting slot templates.
type TemplateStore interface {
	GetTemplate(userID string) (*Template, error)
	SaveTemplate(template *Template) error
	SetRecurringFlag(userID string, recurring bool, lastApplied weekclock.WeekID) error
	GetRecurringTemplates() ([]*Template, error)
	Clear()
}
