package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Attempt is a single learner submission. Only first tries count toward
// the session score; retries are kept for review.
type Attempt struct {
	ent.Schema
}

func (Attempt) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.String("session_id"),
		field.String("question_id"),
		field.String("kind").
			Comment("arrange_words, fill_blanks, multiple_choice or true_false"),
		field.String("prompt").
			Default(""),
		field.String("expected").
			Default(""),
		field.String("answer").
			Default(""),
		field.Bool("correct"),
		field.Bool("first_try"),
		field.Int64("time_ms").
			Default(0),
	}
}

func (Attempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("kind"),
	}
}
