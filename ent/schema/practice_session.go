package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// PracticeSession is one run through a list of questions. The score
// columns are written when the session finishes.
type PracticeSession struct {
	ent.Schema
}

func (PracticeSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID; also seeds the word-bank shuffles"),
		field.String("learner").
			Default(""),
		field.String("source").
			Default("").
			Comment("Pack title, file name or generation topic"),
		field.Time("started_at").
			Immutable(),
		field.Time("finished_at").
			Optional().
			Nillable(),
		field.Int("total").
			Default(0),
		field.Int("answered").
			Default(0),
		field.Int("correct").
			Default(0),
		field.Int("stars").
			Default(0),
	}
}

func (PracticeSession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("started_at"),
	}
}
